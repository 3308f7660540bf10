package interact

import (
	"context"
	"crypto/ed25519"

	"github.com/sirupsen/logrus"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/vaults"
)

// The proxy program has no vaults entrypoint, so vault operations are
// always direct.

// InitPosition opens the account set's next position in its vault for the payer
func (i *Invoker) InitPosition(ctx context.Context, set *vaults.AccountSet) (*Invocation, error) {
	fields := logrus.Fields{
		"vault_id":    set.VaultID,
		"position_id": set.NextPositionID,
	}

	return i.invokeWrapped(ctx, protocolVaults, "InitPosition", ModeDirect, ErrCpiToVaultsProgramFailed, fields, func(_ Mode) ([]solana.Instruction, error) {
		program, err := i.getVaultsProgram()
		if err != nil {
			return nil, err
		}

		accounts, err := set.InitPositionAccounts(i.Payer())
		if err != nil {
			return nil, err
		}

		return []solana.Instruction{
			vaults.NewInitPositionInstruction(program, accounts, &vaults.InitPositionInstructionArgs{
				VaultID:        set.VaultID,
				NextPositionID: set.NextPositionID,
			}),
		}, nil
	})
}

// Operate changes the collateral and debt of a position
func (i *Invoker) Operate(ctx context.Context, accounts *vaults.OperateInstructionAccounts, args *vaults.OperateInstructionArgs) (*Invocation, error) {
	return i.operate(ctx, "Operate", accounts, args)
}

// Deposit adds amount of the supply token as collateral
func (i *Invoker) Deposit(ctx context.Context, set *vaults.AccountSet, amount uint64) (*Invocation, error) {
	return i.operateWithSet(ctx, "Deposit", set, vaults.DepositArgs(amount, set.RemainingAccountsIndices))
}

// Withdraw removes amount of collateral. vaults.MaxAmount withdraws everything.
func (i *Invoker) Withdraw(ctx context.Context, set *vaults.AccountSet, amount uint64, transferType *vaults.TransferType) (*Invocation, error) {
	return i.operateWithSet(ctx, "Withdraw", set, vaults.WithdrawArgs(amount, transferType, set.RemainingAccountsIndices))
}

// Borrow takes on amount of debt in the borrow token
func (i *Invoker) Borrow(ctx context.Context, set *vaults.AccountSet, amount uint64, transferType *vaults.TransferType) (*Invocation, error) {
	return i.operateWithSet(ctx, "Borrow", set, vaults.BorrowArgs(amount, transferType, set.RemainingAccountsIndices))
}

// Payback repays amount of debt. vaults.MaxAmount repays everything.
func (i *Invoker) Payback(ctx context.Context, set *vaults.AccountSet, amount uint64) (*Invocation, error) {
	return i.operateWithSet(ctx, "Payback", set, vaults.PaybackArgs(amount, set.RemainingAccountsIndices))
}

func (i *Invoker) DepositAndBorrow(ctx context.Context, set *vaults.AccountSet, depositAmount, borrowAmount uint64, transferType *vaults.TransferType) (*Invocation, error) {
	return i.operateWithSet(ctx, "DepositAndBorrow", set, vaults.DepositAndBorrowArgs(depositAmount, borrowAmount, transferType, set.RemainingAccountsIndices))
}

func (i *Invoker) PaybackAndWithdraw(ctx context.Context, set *vaults.AccountSet, paybackAmount, withdrawAmount uint64, transferType *vaults.TransferType) (*Invocation, error) {
	return i.operateWithSet(ctx, "PaybackAndWithdraw", set, vaults.PaybackAndWithdrawArgs(paybackAmount, withdrawAmount, transferType, set.RemainingAccountsIndices))
}

func (i *Invoker) operateWithSet(ctx context.Context, operation string, set *vaults.AccountSet, args *vaults.OperateInstructionArgs) (*Invocation, error) {
	accounts, err := set.OperateAccounts(i.Payer())
	if err != nil {
		return nil, wrapInvocationError(err, ErrCpiToVaultsProgramFailed, -1)
	}
	return i.operate(ctx, operation, accounts, args)
}

func (i *Invoker) operate(ctx context.Context, operation string, accounts *vaults.OperateInstructionAccounts, args *vaults.OperateInstructionArgs) (*Invocation, error) {
	fields := logrus.Fields{
		"new_col":  args.NewCol.String(),
		"new_debt": args.NewDebt.String(),
	}
	if args.TransferType != nil {
		fields["transfer_type"] = args.TransferType.String()
	}

	return i.invokeWrapped(ctx, protocolVaults, operation, ModeDirect, ErrCpiToVaultsProgramFailed, fields, func(_ Mode) ([]solana.Instruction, error) {
		program, err := i.getVaultsProgram()
		if err != nil {
			return nil, err
		}

		ixn, err := vaults.NewOperateInstruction(program, accounts, args)
		if err != nil {
			return nil, err
		}
		return []solana.Instruction{ixn}, nil
	})
}

func (i *Invoker) getVaultsProgram() (ed25519.PublicKey, error) {
	if i.vaultsErr != nil {
		return nil, i.vaultsErr
	}
	return i.vaultsProgram, nil
}
