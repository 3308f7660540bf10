package vaults

import (
	"math"

	"github.com/code-payments/interact-dapp/pkg/solana/binary"
)

// MaxAmount withdraws or pays back the entire position
const MaxAmount uint64 = math.MaxUint64

func DepositArgs(amount uint64, indices []uint8) *OperateInstructionArgs {
	return &OperateInstructionArgs{
		NewCol:                   binary.Int128FromUint64(amount),
		RemainingAccountsIndices: indices,
	}
}

func WithdrawArgs(amount uint64, transferType *TransferType, indices []uint8) *OperateInstructionArgs {
	return &OperateInstructionArgs{
		NewCol:                   negateAmount(amount),
		TransferType:             transferType,
		RemainingAccountsIndices: indices,
	}
}

func BorrowArgs(amount uint64, transferType *TransferType, indices []uint8) *OperateInstructionArgs {
	return &OperateInstructionArgs{
		NewDebt:                  binary.Int128FromUint64(amount),
		TransferType:             transferType,
		RemainingAccountsIndices: indices,
	}
}

func PaybackArgs(amount uint64, indices []uint8) *OperateInstructionArgs {
	return &OperateInstructionArgs{
		NewDebt:                  negateAmount(amount),
		RemainingAccountsIndices: indices,
	}
}

func DepositAndBorrowArgs(depositAmount, borrowAmount uint64, transferType *TransferType, indices []uint8) *OperateInstructionArgs {
	return &OperateInstructionArgs{
		NewCol:                   binary.Int128FromUint64(depositAmount),
		NewDebt:                  binary.Int128FromUint64(borrowAmount),
		TransferType:             transferType,
		RemainingAccountsIndices: indices,
	}
}

func PaybackAndWithdrawArgs(paybackAmount, withdrawAmount uint64, transferType *TransferType, indices []uint8) *OperateInstructionArgs {
	return &OperateInstructionArgs{
		NewCol:                   negateAmount(withdrawAmount),
		NewDebt:                  negateAmount(paybackAmount),
		TransferType:             transferType,
		RemainingAccountsIndices: indices,
	}
}

// negateAmount maps MaxAmount to the i128 minimum, which the program reads as
// "everything"
func negateAmount(amount uint64) binary.Int128 {
	if amount == MaxAmount {
		return binary.MinInt128
	}
	return binary.NegUint64(amount)
}
