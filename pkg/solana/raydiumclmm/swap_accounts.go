package raydiumclmm

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/solana/binary"
)

const DefaultTickArrayCount = 3

var (
	// 4295048016
	MinSqrtPriceX64 = binary.Uint128{Lo: 4295048016}

	// 79226673521066979257578248091
	MaxSqrtPriceX64 = binary.Uint128{Hi: 4294886577, Lo: 9537527425331189659}
)

// SwapAccounts is everything needed to route a swap through a single pool
type SwapAccounts struct {
	Instruction *SwapV2InstructionAccounts

	// ZeroForOne is set when the input mint is token_mint_0
	ZeroForOne bool
}

type SwapAccountsFromPoolArgs struct {
	Pool               ed25519.PublicKey
	Payer              ed25519.PublicKey
	InputMint          ed25519.PublicKey
	InputTokenAccount  ed25519.PublicKey
	OutputTokenAccount ed25519.PublicKey

	// Number of tick arrays to include, DefaultTickArrayCount when zero
	TickArrayCount int
}

// SwapAccountsFromPool derives the swap direction from the input mint and
// fills in the pool's vaults, mints and the tick arrays the swap will cross
func SwapAccountsFromPool(program ed25519.PublicKey, state *PoolState, args *SwapAccountsFromPoolArgs) (*SwapAccounts, error) {
	var zeroForOne bool
	switch {
	case bytes.Equal(args.InputMint, state.TokenMint0):
		zeroForOne = true
	case bytes.Equal(args.InputMint, state.TokenMint1):
		zeroForOne = false
	default:
		return nil, ErrMintNotInPool
	}

	n := args.TickArrayCount
	if n <= 0 {
		n = DefaultTickArrayCount
	}

	tickArrays, err := GetTickArrayAddresses(program, args.Pool, state.TickCurrent, state.TickSpacing, zeroForOne, n)
	if err != nil {
		return nil, err
	}
	if len(tickArrays) == 0 {
		return nil, errors.Errorf("no tick arrays for tick %d", state.TickCurrent)
	}

	accounts := &SwapV2InstructionAccounts{
		Payer:              args.Payer,
		AmmConfig:          state.AmmConfig,
		PoolState:          args.Pool,
		InputTokenAccount:  args.InputTokenAccount,
		OutputTokenAccount: args.OutputTokenAccount,
		ObservationState:   state.ObservationKey,
		TickArrays:         tickArrays,
	}
	if zeroForOne {
		accounts.InputVault, accounts.OutputVault = state.TokenVault0, state.TokenVault1
		accounts.InputVaultMint, accounts.OutputVaultMint = state.TokenMint0, state.TokenMint1
	} else {
		accounts.InputVault, accounts.OutputVault = state.TokenVault1, state.TokenVault0
		accounts.InputVaultMint, accounts.OutputVaultMint = state.TokenMint1, state.TokenMint0
	}

	return &SwapAccounts{
		Instruction: accounts,
		ZeroForOne:  zeroForOne,
	}, nil
}

// DefaultSqrtPriceLimit returns limit unless it's zero, in which case the
// widest limit for the swap direction is used
func DefaultSqrtPriceLimit(limit binary.Uint128, zeroForOne bool) binary.Uint128 {
	if !limit.IsZero() {
		return limit
	}

	if zeroForOne {
		v := MinSqrtPriceX64
		v.Lo++
		return v
	}

	v := MaxSqrtPriceX64
	if v.Lo == 0 {
		v.Hi--
	}
	v.Lo--
	return v
}
