package anchor

import (
	"crypto/sha256"

	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/solana"
)

const (
	DiscriminatorSize = 8

	// ErrorCodeOffset is where program defined error codes start
	ErrorCodeOffset = 6000
)

var (
	ErrInvalidDiscriminator = errors.New("invalid discriminator")
)

// Discriminator returns the instruction selector for a global method
func Discriminator(name string) [DiscriminatorSize]byte {
	return hashPrefix("global:" + name)
}

// AccountDiscriminator returns the header written at the start of a program
// owned account of the given type
func AccountDiscriminator(name string) [DiscriminatorSize]byte {
	return hashPrefix("account:" + name)
}

func hashPrefix(preimage string) [DiscriminatorSize]byte {
	var disc [DiscriminatorSize]byte
	h := sha256.Sum256([]byte(preimage))
	copy(disc[:], h[:DiscriminatorSize])
	return disc
}

// CheckAccountDiscriminator validates the header of raw account data
func CheckAccountDiscriminator(data []byte, expected [DiscriminatorSize]byte) error {
	if len(data) < DiscriminatorSize {
		return errors.Wrap(ErrInvalidDiscriminator, "data too short")
	}

	var actual [DiscriminatorSize]byte
	copy(actual[:], data)
	if actual != expected {
		return errors.Wrapf(ErrInvalidDiscriminator, "got %v, expected %v", actual, expected)
	}
	return nil
}

// CustomErrorCode extracts a program defined error code from an error chain
func CustomErrorCode(err error) (uint32, bool) {
	var custom solana.CustomError
	if !errors.As(err, &custom) {
		return 0, false
	}
	if custom < ErrorCodeOffset {
		return 0, false
	}
	return uint32(custom), true
}

// CustomErrorCodeAt is CustomErrorCode restricted to a specific instruction
// in the transaction
func CustomErrorCodeAt(err error, instructionIndex int) (uint32, bool) {
	var ixnErr solana.InstructionError
	if !errors.As(err, &ixnErr) || ixnErr.Index != instructionIndex {
		return 0, false
	}
	return CustomErrorCode(ixnErr)
}
