package vaults

import (
	"crypto/ed25519"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/binary"
)

func putDiscriminator(dst []byte, v [8]byte, offset *int) {
	copy(dst[*offset:], v[:])
	*offset += len(v)
}

func putTransferType(dst []byte, v *TransferType, offset *int) {
	var raw *uint8
	if v != nil {
		b := uint8(*v)
		raw = &b
	}
	binary.PutOptionalUint8(dst[*offset:], raw, offset)
}

func writable(key ed25519.PublicKey) solana.AccountMeta {
	return solana.AccountMeta{PublicKey: key, IsWritable: true}
}

func readonly(key ed25519.PublicKey) solana.AccountMeta {
	return solana.AccountMeta{PublicKey: key}
}

func orDefault(v, fallback ed25519.PublicKey) ed25519.PublicKey {
	if len(v) == 0 {
		return fallback
	}
	return v
}
