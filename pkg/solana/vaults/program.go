package vaults

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/solana"
	"github.com/code-payments/interact-dapp/pkg/solana/system"
	"github.com/code-payments/interact-dapp/pkg/solana/token"
)

var (
	ErrInvalidRemainingAccountsIndices = errors.New("vaults: remaining accounts indices must have exactly 3 entries")
	ErrMissingClaimAccount             = errors.New("vaults: claim transfer requires a claim account")
	ErrUnsupportedCluster              = errors.New("vaults: unsupported cluster")
)

var (
	MAINNET_PROGRAM_ID = solana.MustPublicKeyFromBase58("jupr81YtYssSyPt8jbnGuiWon5f6x9TcDEFxYe3Bdzi")

	SYSTEM_PROGRAM_ID           = system.ProgramID
	SPL_TOKEN_PROGRAM_ID        = token.ProgramKey
	ASSOCIATED_TOKEN_PROGRAM_ID = token.AssociatedTokenAccountProgramKey
)

// ProgramForCluster returns the vaults program deployment. There is no
// canonical devnet deployment, so devnet requires an explicit override.
func ProgramForCluster(cluster solana.Cluster, override ed25519.PublicKey) (ed25519.PublicKey, error) {
	if len(override) > 0 {
		return override, nil
	}

	switch cluster {
	case solana.ClusterMainnet:
		return MAINNET_PROGRAM_ID, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedCluster, "cluster=%s", cluster)
	}
}

var (
	initPositionInstructionDiscriminator = [8]byte{197, 20, 10, 1, 97, 160, 177, 91}
	operateInstructionDiscriminator      = [8]byte{217, 106, 208, 99, 116, 151, 42, 135}
)

// TransferType selects how withdrawn or borrowed tokens reach the recipient
type TransferType uint8

const (
	TransferTypeNormal TransferType = iota
	TransferTypeClaim
)

func (t TransferType) String() string {
	switch t {
	case TransferTypeNormal:
		return "normal"
	case TransferTypeClaim:
		return "claim"
	}
	return "unknown"
}

// Ptr is a convenience for building an optional transfer type
func (t TransferType) Ptr() *TransferType {
	return &t
}
