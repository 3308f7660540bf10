package lending

import (
	"crypto/ed25519"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/token"
)

var (
	LendingAdminPrefix            = []byte("lending_admin")
	FTokenMintPrefix              = []byte("f_token_mint")
	LendingPrefix                 = []byte("lending")
	LendingRewardsRateModelPrefix = []byte("lending_rewards_rate_model")

	LiquidityPrefix          = []byte("liquidity")
	ReservePrefix            = []byte("reserve")
	UserSupplyPositionPrefix = []byte("user_supply_position")
	RateModelPrefix          = []byte("rate_model")
	UserClaimPrefix          = []byte("user_claim")
)

func GetLendingAdminAddress(programs Programs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programs.Lending,
		LendingAdminPrefix,
	)
}

type GetFTokenMintAddressArgs struct {
	Mint ed25519.PublicKey
}

func GetFTokenMintAddress(programs Programs, args *GetFTokenMintAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programs.Lending,
		FTokenMintPrefix,
		args.Mint,
	)
}

type GetLendingAddressArgs struct {
	Mint       ed25519.PublicKey
	FTokenMint ed25519.PublicKey
}

func GetLendingAddress(programs Programs, args *GetLendingAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programs.Lending,
		LendingPrefix,
		args.Mint,
		args.FTokenMint,
	)
}

type GetRewardsRateModelAddressArgs struct {
	Mint ed25519.PublicKey
}

func GetRewardsRateModelAddress(programs Programs, args *GetRewardsRateModelAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programs.Lending,
		LendingRewardsRateModelPrefix,
		args.Mint,
	)
}

func GetLiquidityAddress(programs Programs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programs.Liquidity,
		LiquidityPrefix,
	)
}

type GetTokenReserveAddressArgs struct {
	Mint ed25519.PublicKey
}

func GetTokenReserveAddress(programs Programs, args *GetTokenReserveAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programs.Liquidity,
		ReservePrefix,
		args.Mint,
	)
}

type GetSupplyPositionAddressArgs struct {
	Mint    ed25519.PublicKey
	Lending ed25519.PublicKey
}

func GetSupplyPositionAddress(programs Programs, args *GetSupplyPositionAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programs.Liquidity,
		UserSupplyPositionPrefix,
		args.Mint,
		args.Lending,
	)
}

type GetRateModelAddressArgs struct {
	Mint ed25519.PublicKey
}

func GetRateModelAddress(programs Programs, args *GetRateModelAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programs.Liquidity,
		RateModelPrefix,
		args.Mint,
	)
}

type GetClaimAccountAddressArgs struct {
	User ed25519.PublicKey
	Mint ed25519.PublicKey
}

func GetClaimAccountAddress(programs Programs, args *GetClaimAccountAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programs.Liquidity,
		UserClaimPrefix,
		args.User,
		args.Mint,
	)
}

type GetVaultAddressArgs struct {
	Liquidity ed25519.PublicKey
	Mint      ed25519.PublicKey
}

// GetVaultAddress returns the liquidity program's token account for the mint
func GetVaultAddress(args *GetVaultAddressArgs) (ed25519.PublicKey, error) {
	return token.GetAssociatedAccount(args.Liquidity, args.Mint)
}
