package lending

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/solana/token"
)

// EarnAccounts is every account an earn deposit or withdraw needs for a
// (signer, mint) pair
type EarnAccounts struct {
	Programs Programs

	Signer ed25519.PublicKey
	Mint   ed25519.PublicKey

	// Signer's token accounts for the underlying mint and the fToken mint
	UnderlyingTokenAccount ed25519.PublicKey
	FTokenAccount          ed25519.PublicKey

	LendingAdmin     ed25519.PublicKey
	Lending          ed25519.PublicKey
	FTokenMint       ed25519.PublicKey
	RewardsRateModel ed25519.PublicKey

	Liquidity      ed25519.PublicKey
	TokenReserve   ed25519.PublicKey
	SupplyPosition ed25519.PublicKey
	RateModel      ed25519.PublicKey
	ClaimAccount   ed25519.PublicKey
	Vault          ed25519.PublicKey
	TokenProgram   ed25519.PublicKey
}

// ResolveEarnAccounts derives the earn accounts from the signer and mint. The
// signer's token accounts are their associated token accounts.
func ResolveEarnAccounts(programs Programs, signer, mint ed25519.PublicKey) (*EarnAccounts, error) {
	res := &EarnAccounts{
		Programs:     programs,
		Signer:       signer,
		Mint:         mint,
		TokenProgram: token.ProgramKey,
	}

	var err error
	if res.LendingAdmin, _, err = GetLendingAdminAddress(programs); err != nil {
		return nil, errors.Wrap(err, "error deriving lending admin")
	}
	if res.FTokenMint, _, err = GetFTokenMintAddress(programs, &GetFTokenMintAddressArgs{Mint: mint}); err != nil {
		return nil, errors.Wrap(err, "error deriving f token mint")
	}
	if res.Lending, _, err = GetLendingAddress(programs, &GetLendingAddressArgs{Mint: mint, FTokenMint: res.FTokenMint}); err != nil {
		return nil, errors.Wrap(err, "error deriving lending")
	}
	if res.RewardsRateModel, _, err = GetRewardsRateModelAddress(programs, &GetRewardsRateModelAddressArgs{Mint: mint}); err != nil {
		return nil, errors.Wrap(err, "error deriving rewards rate model")
	}
	if res.Liquidity, _, err = GetLiquidityAddress(programs); err != nil {
		return nil, errors.Wrap(err, "error deriving liquidity")
	}
	if res.TokenReserve, _, err = GetTokenReserveAddress(programs, &GetTokenReserveAddressArgs{Mint: mint}); err != nil {
		return nil, errors.Wrap(err, "error deriving token reserve")
	}
	if res.SupplyPosition, _, err = GetSupplyPositionAddress(programs, &GetSupplyPositionAddressArgs{Mint: mint, Lending: res.Lending}); err != nil {
		return nil, errors.Wrap(err, "error deriving supply position")
	}
	if res.RateModel, _, err = GetRateModelAddress(programs, &GetRateModelAddressArgs{Mint: mint}); err != nil {
		return nil, errors.Wrap(err, "error deriving rate model")
	}
	if res.ClaimAccount, _, err = GetClaimAccountAddress(programs, &GetClaimAccountAddressArgs{User: signer, Mint: mint}); err != nil {
		return nil, errors.Wrap(err, "error deriving claim account")
	}
	if res.Vault, err = GetVaultAddress(&GetVaultAddressArgs{Liquidity: res.Liquidity, Mint: mint}); err != nil {
		return nil, errors.Wrap(err, "error deriving vault")
	}
	if res.UnderlyingTokenAccount, err = token.GetAssociatedAccount(signer, mint); err != nil {
		return nil, errors.Wrap(err, "error deriving underlying token account")
	}
	if res.FTokenAccount, err = token.GetAssociatedAccount(signer, res.FTokenMint); err != nil {
		return nil, errors.Wrap(err, "error deriving f token account")
	}

	return res, nil
}

// DepositAccounts moves the signer's underlying tokens into the vault and
// mints fTokens to the signer
func (a *EarnAccounts) DepositAccounts() *DepositInstructionAccounts {
	return &DepositInstructionAccounts{
		Signer:                           a.Signer,
		DepositorTokenAccount:            a.UnderlyingTokenAccount,
		RecipientTokenAccount:            a.FTokenAccount,
		Mint:                             a.Mint,
		LendingAdmin:                     a.LendingAdmin,
		Lending:                          a.Lending,
		FTokenMint:                       a.FTokenMint,
		SupplyTokenReservesLiquidity:     a.TokenReserve,
		LendingSupplyPositionOnLiquidity: a.SupplyPosition,
		RateModel:                        a.RateModel,
		Vault:                            a.Vault,
		Liquidity:                        a.Liquidity,
		LiquidityProgram:                 a.Programs.Liquidity,
		RewardsRateModel:                 a.RewardsRateModel,
		TokenProgram:                     a.TokenProgram,
	}
}

// WithdrawAccounts burns the signer's fTokens and returns the underlying
// tokens to the signer
func (a *EarnAccounts) WithdrawAccounts() *WithdrawInstructionAccounts {
	return &WithdrawInstructionAccounts{
		Signer:                           a.Signer,
		OwnerTokenAccount:                a.FTokenAccount,
		RecipientTokenAccount:            a.UnderlyingTokenAccount,
		LendingAdmin:                     a.LendingAdmin,
		Lending:                          a.Lending,
		Mint:                             a.Mint,
		FTokenMint:                       a.FTokenMint,
		SupplyTokenReservesLiquidity:     a.TokenReserve,
		LendingSupplyPositionOnLiquidity: a.SupplyPosition,
		RateModel:                        a.RateModel,
		Vault:                            a.Vault,
		ClaimAccount:                     a.ClaimAccount,
		Liquidity:                        a.Liquidity,
		LiquidityProgram:                 a.Programs.Liquidity,
		RewardsRateModel:                 a.RewardsRateModel,
		TokenProgram:                     a.TokenProgram,
	}
}
