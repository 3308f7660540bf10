package interact

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/interact-dapp/pkg/solana"
	address_lookup_table "github.com/code-payments/interact-dapp/pkg/solana/addresslookuptable"
	"github.com/code-payments/interact-dapp/pkg/testutil"
)

func lookupTableInstructions(txn solana.Transaction) []solana.CompiledInstruction {
	var res []solana.CompiledInstruction
	for _, ixn := range txn.Message.Instructions {
		if bytes.Equal(txn.Message.Accounts[ixn.ProgramIndex], address_lookup_table.ProgramKey) {
			res = append(res, ixn)
		}
	}
	return res
}

func TestCreateLookupTable(t *testing.T) {
	env := setup(t, &Overrides{})

	var addresses []ed25519.PublicKey
	for i := 0; i < 44; i++ {
		addresses = append(addresses, testutil.GenerateSolanaKey(t))
	}
	addresses = append(addresses, addresses[0])

	table, err := env.invoker.CreateLookupTable(env.ctx, addresses)
	require.NoError(t, err)

	expected, bump, err := address_lookup_table.GetAddress(env.invoker.Payer(), 100)
	require.NoError(t, err)
	assert.EqualValues(t, expected, table.Address)
	assert.Equal(t, base58.Encode(expected), table.AddressString())

	require.Len(t, table.Invocations, 3)
	require.Len(t, env.client.submitted, 3)

	create := lookupTableInstructions(env.client.submitted[0])
	require.Len(t, create, 2)
	assert.EqualValues(t, 0, binary.LittleEndian.Uint32(create[0].Data))
	assert.EqualValues(t, 100, binary.LittleEndian.Uint64(create[0].Data[4:]))
	assert.Equal(t, bump, create[0].Data[12])

	var extended []ed25519.PublicKey
	for i, txn := range env.client.submitted {
		ixns := lookupTableInstructions(txn)
		extend := ixns[len(ixns)-1]

		assert.EqualValues(t, 2, binary.LittleEndian.Uint32(extend.Data))
		count := binary.LittleEndian.Uint64(extend.Data[4:])
		if i < 2 {
			assert.EqualValues(t, maxLookupTableExtendBatch, count)
		} else {
			assert.EqualValues(t, 4, count)
		}

		accounts := instructionAccounts(txn, extend)
		assert.EqualValues(t, expected, accounts[0])

		for j := 0; j < int(count); j++ {
			offset := 12 + j*ed25519.PublicKeySize
			extended = append(extended, ed25519.PublicKey(extend.Data[offset:offset+ed25519.PublicKeySize]))
		}
	}
	assert.Equal(t, addresses[:44], extended)

	for _, txn := range env.client.submitted[1:] {
		assert.Len(t, lookupTableInstructions(txn), 1)
	}
}

func TestCreateLookupTable_Errors(t *testing.T) {
	env := setup(t, &Overrides{})

	_, err := env.invoker.CreateLookupTable(env.ctx, nil)
	assert.True(t, errors.Is(err, ErrLookupTableFailed))

	env.client.simulationErr = customTransactionError(t, 1, 0)
	table, err := env.invoker.CreateLookupTable(env.ctx, []ed25519.PublicKey{testutil.GenerateSolanaKey(t)})
	assert.True(t, errors.Is(err, ErrLookupTableFailed))
	require.NotNil(t, table)
	assert.Empty(t, table.Invocations)
	assert.Empty(t, env.client.submitted)
}

func TestVaultLookupTableAddresses(t *testing.T) {
	program := testutil.GenerateSolanaKey(t)
	env := setup(t, &Overrides{VaultsProgram: base58.Encode(program)})
	set := generateAccountSet(t)

	addresses, err := env.invoker.VaultLookupTableAddresses(set)
	require.NoError(t, err)
	require.NotEmpty(t, addresses)

	seen := make(map[string]struct{})
	for _, address := range addresses {
		assert.False(t, bytes.Equal(address, program))
		assert.False(t, bytes.Equal(address, env.invoker.Payer()))

		_, ok := seen[string(address)]
		assert.False(t, ok)
		seen[string(address)] = struct{}{}
	}

	noProgram := setup(t, &Overrides{})
	_, err = noProgram.invoker.VaultLookupTableAddresses(set)
	assert.Error(t, err)
}
