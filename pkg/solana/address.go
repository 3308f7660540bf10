package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"math"

	"github.com/jdgcs/ed25519/edwards25519"
	"github.com/pkg/errors"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32

	pdaMarker = "ProgramDerivedAddress"
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")

	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrNoValidBump      = errors.New("no valid bump seed found")
)

// CreateProgramAddress hashes seeds and program into a program derived
// address. Hashes that land on the ed25519 curve have a private key and are
// rejected with ErrInvalidPublicKey.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L158
func CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	if len(seeds) > maxSeeds {
		return nil, ErrTooManySeeds
	}

	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > maxSeedLength {
			return nil, ErrMaxSeedLengthExceeded
		}
		h.Write(seed)
	}
	h.Write(program)
	h.Write([]byte(pdaMarker))

	var candidate [32]byte
	copy(candidate[:], h.Sum(nil))

	if isOnCurve(candidate) {
		return nil, ErrInvalidPublicKey
	}
	return candidate[:], nil
}

// isOnCurve reports whether key decompresses to a valid edwards25519 point.
// The standard library keeps its point type internal, so the decoding from
// jdgcs/ed25519 is used.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L182-L187
func isOnCurve(key [32]byte) bool {
	var point edwards25519.ExtendedGroupElement
	return point.FromBytes(&key)
}

// FindProgramAddressAndBump searches bumps from 255 down and returns the first
// off-curve address along with its bump.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L234
func FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)

	for bump := math.MaxUint8; bump > 0; bump-- {
		withBump[len(seeds)] = []byte{byte(bump)}

		address, err := CreateProgramAddress(program, withBump...)
		switch err {
		case nil:
			return address, uint8(bump), nil
		case ErrInvalidPublicKey:
			continue
		default:
			return nil, 0, err
		}
	}

	return nil, 0, ErrNoValidBump
}

// FindProgramAddress is FindProgramAddressAndBump without the bump
func FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	address, _, err := FindProgramAddressAndBump(program, seeds...)
	return address, err
}
