package solana

import (
	"crypto/ed25519"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Vectors from the Solana SDK's create_program_address tests
func TestCreateProgramAddress_KnownVectors(t *testing.T) {
	program := MustPublicKeyFromBase58("BPFLoader1111111111111111111111111111111111")
	seedKey := MustPublicKeyFromBase58("SeedPubey1111111111111111111111111111111111")

	vectors := map[string][][]byte{
		"3gF2KMe9KiC6FNVBmfg9i267aMPvK37FewCip4eGBFcT": {{}, {1}},
		"7ytmC1nT1xY4RfxCV2ZgyA7UakC93do5ZdyhdF3EtPj7": {[]byte("☉")},
		"HwRVBufQ4haG5XSgpspwKtNd3PC9GM9m1196uJW36vds": {[]byte("Talking"), []byte("Squirrels")},
		"GUs5qLUfsEHkcMB9T38vjr18ypEhRuNWiePW2LoK4E3K": {seedKey},
	}
	for expected, seeds := range vectors {
		address, err := CreateProgramAddress(program, seeds...)
		require.NoError(t, err)
		assert.Equal(t, expected, base58.Encode(address))
	}

	_, err := CreateProgramAddress(program, make([]byte, maxSeedLength))
	assert.NoError(t, err)

	for _, seeds := range [][][]byte{
		{make([]byte, maxSeedLength+1)},
		{[]byte("short seed"), make([]byte, maxSeedLength+1)},
	} {
		_, err := CreateProgramAddress(program, seeds...)
		assert.Equal(t, ErrMaxSeedLengthExceeded, err)
	}
}

func TestCreateProgramAddress_Invalid(t *testing.T) {
	programID := make([]byte, ed25519.PublicKeySize)

	seeds := make([][]byte, maxSeeds+1)
	_, err := CreateProgramAddress(programID, seeds...)
	assert.Equal(t, ErrTooManySeeds, err)

	_, _, err = FindProgramAddressAndBump(programID, make([]byte, maxSeedLength+1))
	assert.Equal(t, ErrMaxSeedLengthExceeded, err)
}

func TestIsOnCurve(t *testing.T) {
	for range 16 {
		pub := randomKey(t)

		var key [32]byte
		copy(key[:], pub)
		assert.True(t, isOnCurve(key))

		pda, err := FindProgramAddress(pub, []byte("seed"))
		require.NoError(t, err)
		copy(key[:], pda)
		assert.False(t, isOnCurve(key))
	}
}

func TestFindProgramAddressAndBump_MatchesSolanaGo(t *testing.T) {
	for range 256 {
		programID, mint := randomKey(t), randomKey(t)

		seeds := [][]byte{[]byte("f_token_mint"), mint}

		actual, bump, err := FindProgramAddressAndBump(programID, seeds...)
		require.NoError(t, err)

		expected, expectedBump, err := solanago.FindProgramAddress(seeds, solanago.PublicKeyFromBytes(programID))
		require.NoError(t, err)

		assert.EqualValues(t, expected.Bytes(), actual)
		assert.Equal(t, expectedBump, bump)
	}
}

func randomKey(t *testing.T) ed25519.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}
