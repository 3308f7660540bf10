package raydiumclmm

import (
	"encoding/binary"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/interact-dapp/pkg/solana/anchor"
	solbinary "github.com/code-payments/interact-dapp/pkg/solana/binary"
	"github.com/code-payments/interact-dapp/pkg/testutil"
)

func TestDiscriminators(t *testing.T) {
	assert.Equal(t, anchor.Discriminator("swap_v2"), swapV2InstructionDiscriminator)
	assert.Equal(t, anchor.AccountDiscriminator("PoolState"), poolStateAccountDiscriminator)
}

func TestPoolState_Unmarshal(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 7)

	data := make([]byte, PoolStateAccountSize)
	copy(data, poolStateAccountDiscriminator[:])
	data[8] = 254
	copy(data[9:], keys[0])
	copy(data[73:], keys[1])
	copy(data[105:], keys[2])
	copy(data[137:], keys[3])
	copy(data[169:], keys[4])
	copy(data[201:], keys[5])
	data[233] = 9
	data[234] = 6
	binary.LittleEndian.PutUint16(data[235:], 10)
	binary.LittleEndian.PutUint64(data[237:], 12345)
	binary.LittleEndian.PutUint64(data[253:], 1)
	binary.LittleEndian.PutUint64(data[261:], 2)
	tickCurrent := int32(-1234)
	binary.LittleEndian.PutUint32(data[269:], uint32(tickCurrent))
	data[389] = 1

	var state PoolState
	require.NoError(t, state.Unmarshal(data))

	assert.EqualValues(t, 254, state.Bump)
	assert.EqualValues(t, keys[0], state.AmmConfig)
	assert.EqualValues(t, keys[1], state.TokenMint0)
	assert.EqualValues(t, keys[2], state.TokenMint1)
	assert.EqualValues(t, keys[3], state.TokenVault0)
	assert.EqualValues(t, keys[4], state.TokenVault1)
	assert.EqualValues(t, keys[5], state.ObservationKey)
	assert.EqualValues(t, 9, state.MintDecimals0)
	assert.EqualValues(t, 6, state.MintDecimals1)
	assert.EqualValues(t, 10, state.TickSpacing)
	assert.Equal(t, solbinary.Uint128{Lo: 12345}, state.Liquidity)
	assert.Equal(t, solbinary.Uint128{Hi: 2, Lo: 1}, state.SqrtPriceX64)
	assert.EqualValues(t, -1234, state.TickCurrent)
	assert.EqualValues(t, 1, state.Status)

	assert.Equal(t, data, state.Marshal())
}

func TestPoolState_UnmarshalInvalid(t *testing.T) {
	var state PoolState
	assert.Equal(t, ErrInvalidAccountData, state.Unmarshal(make([]byte, 100)))

	data := make([]byte, PoolStateAccountSize)
	assert.Equal(t, ErrInvalidAccountData, state.Unmarshal(data))
}

func TestGetTickArrayStartIndex(t *testing.T) {
	for _, tc := range []struct {
		tick     int32
		spacing  uint16
		expected int32
	}{
		{0, 1, 0},
		{59, 1, 0},
		{60, 1, 60},
		{-1, 1, -60},
		{-60, 1, -60},
		{-61, 1, -120},
		{1234, 10, 1200},
		{-1234, 10, -1800},
		{-600, 10, -600},
	} {
		assert.Equal(t, tc.expected, GetTickArrayStartIndex(tc.tick, tc.spacing), "tick=%d spacing=%d", tc.tick, tc.spacing)
	}
}

func TestGetTickArrayStartIndices(t *testing.T) {
	assert.Equal(t, []int32{1200, 600, 0}, GetTickArrayStartIndices(1234, 10, true, 3))
	assert.Equal(t, []int32{1200, 1800, 2400}, GetTickArrayStartIndices(1234, 10, false, 3))

	// Stops at the upper bound of the tick range
	starts := GetTickArrayStartIndices(MaxTick, 60, false, 3)
	assert.Len(t, starts, 1)
}

func TestAddresses_MatchSolanaGo(t *testing.T) {
	pool := testutil.GenerateSolanaKey(t)
	mint := testutil.GenerateSolanaKey(t)
	program := solanago.PublicKeyFromBytes(MAINNET_PROGRAM_ID)

	find := func(seeds ...[]byte) []byte {
		addr, _, err := solanago.FindProgramAddress(seeds, program)
		require.NoError(t, err)
		return addr.Bytes()
	}

	tickArray, _, err := GetTickArrayAddress(MAINNET_PROGRAM_ID, &GetTickArrayAddressArgs{Pool: pool, StartIndex: -600})
	require.NoError(t, err)
	var start [4]byte
	startIndex := int32(-600)
	binary.BigEndian.PutUint32(start[:], uint32(startIndex))
	assert.EqualValues(t, find([]byte("tick_array"), pool, start[:]), tickArray)

	observation, _, err := GetObservationAddress(MAINNET_PROGRAM_ID, &GetObservationAddressArgs{Pool: pool})
	require.NoError(t, err)
	assert.EqualValues(t, find([]byte("observation"), pool), observation)

	vault, _, err := GetPoolVaultAddress(MAINNET_PROGRAM_ID, &GetPoolVaultAddressArgs{Pool: pool, Mint: mint})
	require.NoError(t, err)
	assert.EqualValues(t, find([]byte("pool_vault"), pool, mint), vault)

	ammConfig, _, err := GetAmmConfigAddress(MAINNET_PROGRAM_ID, &GetAmmConfigAddressArgs{Index: 4})
	require.NoError(t, err)
	assert.EqualValues(t, find([]byte("amm_config"), []byte{0, 4}), ammConfig)

	extension, _, err := GetTickArrayBitmapExtensionAddress(MAINNET_PROGRAM_ID, &GetTickArrayBitmapExtensionAddressArgs{Pool: pool})
	require.NoError(t, err)
	assert.EqualValues(t, find([]byte("pool_tick_array_bitmap_extension"), pool), extension)
}

func TestNewSwapV2Instruction(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 12)
	accounts := &SwapV2InstructionAccounts{
		Payer:              keys[0],
		AmmConfig:          keys[1],
		PoolState:          keys[2],
		InputTokenAccount:  keys[3],
		OutputTokenAccount: keys[4],
		InputVault:         keys[5],
		OutputVault:        keys[6],
		ObservationState:   keys[7],
		InputVaultMint:     keys[8],
		OutputVaultMint:    keys[9],
		TickArrays:         keys[10:],
	}

	ixn := NewSwapV2Instruction(MAINNET_PROGRAM_ID, accounts, &SwapV2InstructionArgs{
		Amount:               1000,
		OtherAmountThreshold: 990,
		SqrtPriceLimitX64:    solbinary.Uint128{Hi: 1, Lo: 2},
		IsBaseInput:          true,
	})
	assert.EqualValues(t, MAINNET_PROGRAM_ID, ixn.Program)

	require.Len(t, ixn.Data, 8+SwapV2InstructionArgsSize)
	assert.Equal(t, []byte{43, 4, 237, 11, 26, 201, 30, 98}, ixn.Data[:8])
	assert.EqualValues(t, 1000, binary.LittleEndian.Uint64(ixn.Data[8:]))
	assert.EqualValues(t, 990, binary.LittleEndian.Uint64(ixn.Data[16:]))
	assert.EqualValues(t, 2, binary.LittleEndian.Uint64(ixn.Data[24:]))
	assert.EqualValues(t, 1, binary.LittleEndian.Uint64(ixn.Data[32:]))
	assert.EqualValues(t, 1, ixn.Data[40])

	require.Len(t, ixn.Accounts, 15)
	expected := []struct {
		key      []byte
		writable bool
	}{
		{keys[0], false},
		{keys[1], false},
		{keys[2], true},
		{keys[3], true},
		{keys[4], true},
		{keys[5], true},
		{keys[6], true},
		{keys[7], true},
		{SPL_TOKEN_PROGRAM_ID, false},
		{SPL_TOKEN_2022_PROGRAM_ID, false},
		{MEMO_PROGRAM_ID, false},
		{keys[8], false},
		{keys[9], false},
		{keys[10], true},
		{keys[11], true},
	}
	for i, e := range expected {
		assert.EqualValues(t, e.key, ixn.Accounts[i].PublicKey, "account %d", i)
		assert.Equal(t, e.writable, ixn.Accounts[i].IsWritable, "account %d", i)
		assert.Equal(t, i == 0, ixn.Accounts[i].IsSigner, "account %d", i)
	}
}

func TestSwapAccountsFromPool(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 10)
	pool := keys[0]
	state := &PoolState{
		AmmConfig:      keys[1],
		TokenMint0:     keys[2],
		TokenMint1:     keys[3],
		TokenVault0:    keys[4],
		TokenVault1:    keys[5],
		ObservationKey: keys[6],
		TickSpacing:    10,
		TickCurrent:    1234,
	}

	args := &SwapAccountsFromPoolArgs{
		Pool:               pool,
		Payer:              keys[7],
		InputMint:          state.TokenMint1,
		InputTokenAccount:  keys[8],
		OutputTokenAccount: keys[9],
	}

	res, err := SwapAccountsFromPool(MAINNET_PROGRAM_ID, state, args)
	require.NoError(t, err)
	assert.False(t, res.ZeroForOne)
	assert.EqualValues(t, state.TokenVault1, res.Instruction.InputVault)
	assert.EqualValues(t, state.TokenVault0, res.Instruction.OutputVault)
	assert.EqualValues(t, state.TokenMint1, res.Instruction.InputVaultMint)
	assert.EqualValues(t, state.TokenMint0, res.Instruction.OutputVaultMint)
	assert.EqualValues(t, state.AmmConfig, res.Instruction.AmmConfig)
	assert.EqualValues(t, state.ObservationKey, res.Instruction.ObservationState)
	require.Len(t, res.Instruction.TickArrays, DefaultTickArrayCount)

	expectedFirst, _, err := GetTickArrayAddress(MAINNET_PROGRAM_ID, &GetTickArrayAddressArgs{Pool: pool, StartIndex: 1200})
	require.NoError(t, err)
	assert.EqualValues(t, expectedFirst, res.Instruction.TickArrays[0])
	expectedSecond, _, err := GetTickArrayAddress(MAINNET_PROGRAM_ID, &GetTickArrayAddressArgs{Pool: pool, StartIndex: 1800})
	require.NoError(t, err)
	assert.EqualValues(t, expectedSecond, res.Instruction.TickArrays[1])

	args.InputMint = state.TokenMint0
	args.TickArrayCount = 1
	res, err = SwapAccountsFromPool(MAINNET_PROGRAM_ID, state, args)
	require.NoError(t, err)
	assert.True(t, res.ZeroForOne)
	assert.EqualValues(t, state.TokenVault0, res.Instruction.InputVault)
	assert.Len(t, res.Instruction.TickArrays, 1)

	args.InputMint = testutil.GenerateSolanaKey(t)
	_, err = SwapAccountsFromPool(MAINNET_PROGRAM_ID, state, args)
	assert.Equal(t, ErrMintNotInPool, err)
}

func TestDefaultSqrtPriceLimit(t *testing.T) {
	assert.Equal(t, "4295048017", DefaultSqrtPriceLimit(solbinary.Uint128{}, true).String())
	assert.Equal(t, "79226673521066979257578248090", DefaultSqrtPriceLimit(solbinary.Uint128{}, false).String())

	custom := solbinary.Uint128{Lo: 42}
	assert.Equal(t, custom, DefaultSqrtPriceLimit(custom, true))
	assert.Equal(t, custom, DefaultSqrtPriceLimit(custom, false))
}
