package raydiumclmm

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/token"
)

var (
	ErrInvalidAccountData = errors.New("raydiumclmm: unexpected account data")
	ErrMintNotInPool      = errors.New("raydiumclmm: mint is not part of the pool")
	ErrUnsupportedCluster = errors.New("raydiumclmm: unsupported cluster")
)

var (
	MAINNET_PROGRAM_ID = solana.MustPublicKeyFromBase58("CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK")
	DEVNET_PROGRAM_ID  = solana.MustPublicKeyFromBase58("DRayAUgENGQBKVaX8owNhgzkEDyoHTGVEGHVJT1E9pfH")

	SPL_TOKEN_PROGRAM_ID      = token.ProgramKey
	SPL_TOKEN_2022_PROGRAM_ID = token.Token2022ProgramKey
	MEMO_PROGRAM_ID           = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")
)

func ProgramForCluster(cluster solana.Cluster) (ed25519.PublicKey, error) {
	switch cluster {
	case solana.ClusterMainnet:
		return MAINNET_PROGRAM_ID, nil
	case solana.ClusterDevnet:
		return DEVNET_PROGRAM_ID, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedCluster, "cluster=%s", cluster)
	}
}

var (
	swapV2InstructionDiscriminator = [8]byte{43, 4, 237, 11, 26, 201, 30, 98}
	poolStateAccountDiscriminator  = [8]byte{247, 237, 227, 245, 215, 195, 222, 70}
)
