package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
)

// GenerateSolanaKeypair returns a random signer
func GenerateSolanaKeypair(t testing.TB) ed25519.PrivateKey {
	_, private, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return private
}

// GenerateSolanaKeys returns n random account addresses
func GenerateSolanaKeys(t testing.TB, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, 0, n)
	for range n {
		keys = append(keys, GenerateSolanaKeypair(t).Public().(ed25519.PublicKey))
	}
	return keys
}

func GenerateSolanaKey(t testing.TB) ed25519.PublicKey {
	return GenerateSolanaKeys(t, 1)[0]
}
