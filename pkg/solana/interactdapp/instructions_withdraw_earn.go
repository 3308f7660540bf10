package interactdapp

import (
	"crypto/ed25519"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/lending"
)

type WithdrawEarnInstructionArgs struct {
	Assets uint64
}

type WithdrawEarnInstructionAccounts struct {
	lending.WithdrawInstructionAccounts

	LendingProgram ed25519.PublicKey
}

// NewWithdrawEarnInstruction builds a withdraw_earn call, which forwards the
// earn withdrawal to the lending program
func NewWithdrawEarnInstruction(
	accounts *WithdrawEarnInstructionAccounts,
	args *WithdrawEarnInstructionArgs,
) solana.Instruction {
	data := lending.WithdrawInstructionData(&lending.WithdrawInstructionArgs{Assets: args.Assets})
	copy(data, withdrawEarnInstructionDiscriminator[:])

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: append(
			accounts.WithdrawInstructionAccounts.AccountMetas(),
			solana.AccountMeta{
				PublicKey:  accounts.LendingProgram,
				IsWritable: false,
				IsSigner:   false,
			},
		),
	}
}
