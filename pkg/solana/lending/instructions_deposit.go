package lending

import (
	"crypto/ed25519"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/binary"
)

const (
	DepositInstructionArgsSize = 8 // amount
)

type DepositInstructionArgs struct {
	Amount uint64
}

type DepositInstructionAccounts struct {
	Signer                           ed25519.PublicKey
	DepositorTokenAccount            ed25519.PublicKey
	RecipientTokenAccount            ed25519.PublicKey
	Mint                             ed25519.PublicKey
	LendingAdmin                     ed25519.PublicKey
	Lending                          ed25519.PublicKey
	FTokenMint                       ed25519.PublicKey
	SupplyTokenReservesLiquidity     ed25519.PublicKey
	LendingSupplyPositionOnLiquidity ed25519.PublicKey
	RateModel                        ed25519.PublicKey
	Vault                            ed25519.PublicKey
	Liquidity                        ed25519.PublicKey
	LiquidityProgram                 ed25519.PublicKey
	RewardsRateModel                 ed25519.PublicKey
	TokenProgram                     ed25519.PublicKey
}

func NewDepositInstruction(
	program ed25519.PublicKey,
	accounts *DepositInstructionAccounts,
	args *DepositInstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: DepositInstructionData(args),

		// Instruction accounts
		Accounts: accounts.AccountMetas(),
	}
}

// DepositInstructionData is the serialized deposit call
func DepositInstructionData(args *DepositInstructionArgs) []byte {
	var offset int

	data := make([]byte, len(depositInstructionDiscriminator)+DepositInstructionArgsSize)

	putDiscriminator(data, depositInstructionDiscriminator, &offset)
	binary.PutUint64(data[offset:], args.Amount, &offset)

	return data
}

// AccountMetas returns the accounts in the order the lending program expects
func (a *DepositInstructionAccounts) AccountMetas() []solana.AccountMeta {
	return []solana.AccountMeta{
		{
			PublicKey:  a.Signer,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  a.DepositorTokenAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.RecipientTokenAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.Mint,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  a.LendingAdmin,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  a.Lending,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.FTokenMint,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.SupplyTokenReservesLiquidity,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.LendingSupplyPositionOnLiquidity,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.RateModel,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  a.Vault,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.Liquidity,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.LiquidityProgram,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.RewardsRateModel,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  tokenProgramOrDefault(a.TokenProgram),
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  ASSOCIATED_TOKEN_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  SYSTEM_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
	}
}
