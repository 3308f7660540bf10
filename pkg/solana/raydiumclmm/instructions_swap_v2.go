package raydiumclmm

import (
	"crypto/ed25519"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/binary"
)

const (
	SwapV2InstructionArgsSize = (8 + // amount
		8 + // other_amount_threshold
		16 + // sqrt_price_limit_x64
		1) // is_base_input
)

type SwapV2InstructionArgs struct {
	Amount               uint64
	OtherAmountThreshold uint64
	SqrtPriceLimitX64    binary.Uint128
	IsBaseInput          bool
}

type SwapV2InstructionAccounts struct {
	Payer              ed25519.PublicKey
	AmmConfig          ed25519.PublicKey
	PoolState          ed25519.PublicKey
	InputTokenAccount  ed25519.PublicKey
	OutputTokenAccount ed25519.PublicKey
	InputVault         ed25519.PublicKey
	OutputVault        ed25519.PublicKey
	ObservationState   ed25519.PublicKey
	InputVaultMint     ed25519.PublicKey
	OutputVaultMint    ed25519.PublicKey

	// Traversed in swap direction, starting with the array holding the
	// current tick
	TickArrays []ed25519.PublicKey
}

func NewSwapV2Instruction(
	program ed25519.PublicKey,
	accounts *SwapV2InstructionAccounts,
	args *SwapV2InstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: SwapV2InstructionData(args),

		// Instruction accounts
		Accounts: accounts.AccountMetas(),
	}
}

// SwapV2InstructionData is the serialized swap_v2 call
func SwapV2InstructionData(args *SwapV2InstructionArgs) []byte {
	var offset int

	data := make([]byte, len(swapV2InstructionDiscriminator)+SwapV2InstructionArgsSize)

	copy(data, swapV2InstructionDiscriminator[:])
	offset += len(swapV2InstructionDiscriminator)

	binary.PutUint64(data[offset:], args.Amount, &offset)
	binary.PutUint64(data[offset:], args.OtherAmountThreshold, &offset)
	binary.PutUint128(data[offset:], args.SqrtPriceLimitX64, &offset)
	binary.PutBool(data[offset:], args.IsBaseInput, &offset)

	return data
}

// AccountMetas returns the fixed swap accounts followed by the tick arrays
func (a *SwapV2InstructionAccounts) AccountMetas() []solana.AccountMeta {
	metas := []solana.AccountMeta{
		{
			PublicKey:  a.Payer,
			IsWritable: false,
			IsSigner:   true,
		},
		{
			PublicKey:  a.AmmConfig,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  a.PoolState,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.InputTokenAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.OutputTokenAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.InputVault,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.OutputVault,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  a.ObservationState,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  SPL_TOKEN_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  SPL_TOKEN_2022_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  MEMO_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  a.InputVaultMint,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  a.OutputVaultMint,
			IsWritable: false,
			IsSigner:   false,
		},
	}

	for _, tickArray := range a.TickArrays {
		metas = append(metas, solana.AccountMeta{
			PublicKey:  tickArray,
			IsWritable: true,
		})
	}

	return metas
}
