package interact

import (
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/interactdapp"
	"github.com/code-payments/interact-dapp/pkg/solana/lending"
)

// DepositEarn deposits amount base units of mint into Jupiter Earn, minting
// fTokens to the payer
func (i *Invoker) DepositEarn(ctx context.Context, mint ed25519.PublicKey, amount uint64) (*Invocation, error) {
	fields := logrus.Fields{
		"mint":   base58.Encode(mint),
		"amount": amount,
	}

	return i.invokeWrapped(ctx, protocolLending, "DepositEarn", i.mode(ctx), ErrCpiToLendingProgramFailed, fields, func(mode Mode) ([]solana.Instruction, error) {
		if amount == 0 {
			return nil, errors.Wrap(ErrInvalidAmount, "amount must be positive")
		}

		accounts, err := lending.ResolveEarnAccounts(i.lendingPrograms, i.Payer(), mint)
		if err != nil {
			return nil, err
		}

		return []solana.Instruction{
			i.newDepositEarnInstruction(mode, accounts, amount),
		}, nil
	})
}

// WithdrawEarn redeems assets base units of mint from Jupiter Earn, burning
// the payer's fTokens
func (i *Invoker) WithdrawEarn(ctx context.Context, mint ed25519.PublicKey, assets uint64) (*Invocation, error) {
	fields := logrus.Fields{
		"mint":   base58.Encode(mint),
		"assets": assets,
	}

	return i.invokeWrapped(ctx, protocolLending, "WithdrawEarn", i.mode(ctx), ErrCpiToLendingProgramFailed, fields, func(mode Mode) ([]solana.Instruction, error) {
		if assets == 0 {
			return nil, errors.Wrap(ErrInvalidAmount, "assets must be positive")
		}

		accounts, err := lending.ResolveEarnAccounts(i.lendingPrograms, i.Payer(), mint)
		if err != nil {
			return nil, err
		}

		return []solana.Instruction{
			i.newWithdrawEarnInstruction(mode, accounts, assets),
		}, nil
	})
}

func (i *Invoker) newDepositEarnInstruction(mode Mode, accounts *lending.EarnAccounts, amount uint64) solana.Instruction {
	if mode == ModeProxy {
		return interactdapp.NewDepositEarnInstruction(
			&interactdapp.DepositEarnInstructionAccounts{
				DepositInstructionAccounts: *accounts.DepositAccounts(),
				LendingProgram:             i.lendingPrograms.Lending,
			},
			&interactdapp.DepositEarnInstructionArgs{
				Amount: amount,
			},
		)
	}

	return lending.NewDepositInstruction(
		i.lendingPrograms.Lending,
		accounts.DepositAccounts(),
		&lending.DepositInstructionArgs{
			Amount: amount,
		},
	)
}

func (i *Invoker) newWithdrawEarnInstruction(mode Mode, accounts *lending.EarnAccounts, assets uint64) solana.Instruction {
	if mode == ModeProxy {
		return interactdapp.NewWithdrawEarnInstruction(
			&interactdapp.WithdrawEarnInstructionAccounts{
				WithdrawInstructionAccounts: *accounts.WithdrawAccounts(),
				LendingProgram:              i.lendingPrograms.Lending,
			},
			&interactdapp.WithdrawEarnInstructionArgs{
				Assets: assets,
			},
		)
	}

	return lending.NewWithdrawInstruction(
		i.lendingPrograms.Lending,
		accounts.WithdrawAccounts(),
		&lending.WithdrawInstructionArgs{
			Assets: assets,
		},
	)
}
