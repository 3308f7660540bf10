package raydiumclmm

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/code-payments/interact-dapp/pkg/solana"
)

var (
	AmmConfigPrefix                    = []byte("amm_config")
	PoolPrefix                         = []byte("pool")
	PoolVaultPrefix                    = []byte("pool_vault")
	ObservationPrefix                  = []byte("observation")
	TickArrayPrefix                    = []byte("tick_array")
	PoolTickArrayBitmapExtensionPrefix = []byte("pool_tick_array_bitmap_extension")
)

type GetAmmConfigAddressArgs struct {
	Index uint16
}

func GetAmmConfigAddress(program ed25519.PublicKey, args *GetAmmConfigAddressArgs) (ed25519.PublicKey, uint8, error) {
	var index [2]byte
	binary.BigEndian.PutUint16(index[:], args.Index)

	return solana.FindProgramAddressAndBump(
		program,
		AmmConfigPrefix,
		index[:],
	)
}

type GetPoolAddressArgs struct {
	AmmConfig  ed25519.PublicKey
	TokenMint0 ed25519.PublicKey
	TokenMint1 ed25519.PublicKey
}

func GetPoolAddress(program ed25519.PublicKey, args *GetPoolAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		PoolPrefix,
		args.AmmConfig,
		args.TokenMint0,
		args.TokenMint1,
	)
}

type GetPoolVaultAddressArgs struct {
	Pool ed25519.PublicKey
	Mint ed25519.PublicKey
}

func GetPoolVaultAddress(program ed25519.PublicKey, args *GetPoolVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		PoolVaultPrefix,
		args.Pool,
		args.Mint,
	)
}

type GetObservationAddressArgs struct {
	Pool ed25519.PublicKey
}

func GetObservationAddress(program ed25519.PublicKey, args *GetObservationAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		ObservationPrefix,
		args.Pool,
	)
}

type GetTickArrayAddressArgs struct {
	Pool       ed25519.PublicKey
	StartIndex int32
}

// GetTickArrayAddress derives a tick array account. The start index seed is
// big endian, unlike the rest of the program's encoding.
func GetTickArrayAddress(program ed25519.PublicKey, args *GetTickArrayAddressArgs) (ed25519.PublicKey, uint8, error) {
	var startIndex [4]byte
	binary.BigEndian.PutUint32(startIndex[:], uint32(args.StartIndex))

	return solana.FindProgramAddressAndBump(
		program,
		TickArrayPrefix,
		args.Pool,
		startIndex[:],
	)
}

type GetTickArrayBitmapExtensionAddressArgs struct {
	Pool ed25519.PublicKey
}

func GetTickArrayBitmapExtensionAddress(program ed25519.PublicKey, args *GetTickArrayBitmapExtensionAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		program,
		PoolTickArrayBitmapExtensionPrefix,
		args.Pool,
	)
}
