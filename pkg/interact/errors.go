package interact

import (
	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/anchor"
	"github.com/code-payments/interact-dapp/pkg/solana/interactdapp"
)

var (
	ErrCpiToLendingProgramFailed = interactdapp.ErrCpiToLendingProgramFailed
	ErrCpiToVaultsProgramFailed  = interactdapp.ErrCpiToVaultsProgramFailed
	ErrSwapFailed                = interactdapp.ErrSwapFailed

	ErrConfirmationTimeout = errors.New("timed out waiting for confirmation")
)

// invocationError is returned by every wrapper. Cause is the failure
// sentinel for the protocol, Err is what actually went wrong.
type invocationError struct {
	sentinel error
	err      error
}

func (e *invocationError) Error() string {
	return e.sentinel.Error() + ": " + e.err.Error()
}

// Cause returns the protocol sentinel so errors.Cause comparisons work
func (e *invocationError) Cause() error {
	return e.sentinel
}

// Is allows errors.Is to match both the sentinel and the underlying error
func (e *invocationError) Is(target error) bool {
	return target == e.sentinel
}

func (e *invocationError) Unwrap() error {
	return e.err
}

// wrapInvocationError maps a failed invocation onto the protocol sentinel.
// An error code raised by the proxy instruction at proxyIndex takes
// precedence over the default sentinel. A negative proxyIndex disables the
// mapping, since the protocol programs share the proxy's code range.
func wrapInvocationError(err error, sentinel error, proxyIndex int) error {
	if err == nil {
		return nil
	}

	if proxyIndex >= 0 {
		if code, ok := anchor.CustomErrorCodeAt(err, proxyIndex); ok {
			if proxyErr, ok := interactdapp.ErrorFromCode(code); ok {
				sentinel = proxyErr
			}
		}
	}

	return &invocationError{sentinel: sentinel, err: err}
}

// CustomErrorCode returns the program error code carried by err, if any
func CustomErrorCode(err error) (uint32, bool) {
	return anchor.CustomErrorCode(err)
}

// TransactionError returns the on-chain transaction error carried by err
func TransactionError(err error) (*solana.TransactionError, bool) {
	var txErr solana.TransactionError
	if errors.As(err, &txErr) {
		return &txErr, true
	}

	var txErrPtr *solana.TransactionError
	if errors.As(err, &txErrPtr) {
		return txErrPtr, true
	}
	return nil, false
}
