package system

import (
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	from, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	to, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	instruction := Transfer(from, to, 1_000_000)
	assert.EqualValues(t, ProgramKey[:], instruction.Program)
	assert.EqualValues(t, ProgramID, instruction.Program)

	require.Len(t, instruction.Data, 12)
	assert.EqualValues(t, commandTransfer, binary.LittleEndian.Uint32(instruction.Data))
	assert.EqualValues(t, 1_000_000, binary.LittleEndian.Uint64(instruction.Data[4:]))

	require.Len(t, instruction.Accounts, 2)
	assert.Equal(t, from, instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.Equal(t, to, instruction.Accounts[1].PublicKey)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)
}
