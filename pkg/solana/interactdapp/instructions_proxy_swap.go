package interactdapp

import (
	"crypto/ed25519"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/raydiumclmm"
)

type ProxySwapInstructionArgs raydiumclmm.SwapV2InstructionArgs

type ProxySwapInstructionAccounts struct {
	ClmmProgram ed25519.PublicKey

	raydiumclmm.SwapV2InstructionAccounts
}

// NewProxySwapInstruction builds a proxy_swap call. The CLMM program comes
// first, followed by the swap_v2 accounts and tick arrays.
func NewProxySwapInstruction(
	accounts *ProxySwapInstructionAccounts,
	args *ProxySwapInstructionArgs,
) solana.Instruction {
	swapArgs := raydiumclmm.SwapV2InstructionArgs(*args)
	data := raydiumclmm.SwapV2InstructionData(&swapArgs)
	copy(data, proxySwapInstructionDiscriminator[:])

	metas := []solana.AccountMeta{
		{
			PublicKey:  accounts.ClmmProgram,
			IsWritable: false,
			IsSigner:   false,
		},
	}
	metas = append(metas, accounts.SwapV2InstructionAccounts.AccountMetas()...)

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: metas,
	}
}
