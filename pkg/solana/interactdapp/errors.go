package interactdapp

import (
	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/solana/anchor"
)

const (
	ErrorCodeCpiToVaultsProgramFailed  uint32 = anchor.ErrorCodeOffset + 0
	ErrorCodeSwapFailed                uint32 = anchor.ErrorCodeOffset + 1
	ErrorCodeCpiToLendingProgramFailed uint32 = anchor.ErrorCodeOffset + 2
)

var (
	ErrCpiToVaultsProgramFailed  = errors.New("cpi to vaults failed")
	ErrSwapFailed                = errors.New("swap failed")
	ErrCpiToLendingProgramFailed = errors.New("cpi to lending program failed")
)

// ErrorFromCode maps a custom program error code to its sentinel
func ErrorFromCode(code uint32) (error, bool) {
	switch code {
	case ErrorCodeCpiToVaultsProgramFailed:
		return ErrCpiToVaultsProgramFailed, true
	case ErrorCodeSwapFailed:
		return ErrSwapFailed, true
	case ErrorCodeCpiToLendingProgramFailed:
		return ErrCpiToLendingProgramFailed, true
	default:
		return nil, false
	}
}
