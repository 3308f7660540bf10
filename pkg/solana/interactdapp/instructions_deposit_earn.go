package interactdapp

import (
	"crypto/ed25519"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/lending"
)

type DepositEarnInstructionArgs struct {
	Amount uint64
}

type DepositEarnInstructionAccounts struct {
	lending.DepositInstructionAccounts

	LendingProgram ed25519.PublicKey
}

// NewDepositEarnInstruction builds a deposit_earn call, which forwards the
// earn deposit to the lending program
func NewDepositEarnInstruction(
	accounts *DepositEarnInstructionAccounts,
	args *DepositEarnInstructionArgs,
) solana.Instruction {
	// deposit_earn shares the lending deposit's argument layout
	data := lending.DepositInstructionData(&lending.DepositInstructionArgs{Amount: args.Amount})
	copy(data, depositEarnInstructionDiscriminator[:])

	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: append(
			accounts.DepositInstructionAccounts.AccountMetas(),
			solana.AccountMeta{
				PublicKey:  accounts.LendingProgram,
				IsWritable: false,
				IsSigner:   false,
			},
		),
	}
}
