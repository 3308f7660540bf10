package lending

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/solana"
)

var (
	ErrUnsupportedCluster = errors.New("lending: unsupported cluster")
)

// Programs is the pair of deployed programs an earn instruction touches
type Programs struct {
	Lending   ed25519.PublicKey
	Liquidity ed25519.PublicKey
}

var (
	MainnetPrograms = Programs{
		Lending:   solana.MustPublicKeyFromBase58("jup3YeL8QhtSx1e253b2FDvsMNC87fDrgQZivbrndc9"),
		Liquidity: solana.MustPublicKeyFromBase58("jupeiUmn818Jg1ekPURTpr4mFo29p46vygyykFJ3wZC"),
	}

	DevnetPrograms = Programs{
		Lending:   solana.MustPublicKeyFromBase58("7tjE28izRUjzmxC1QNXnNwcc4N82CNYCexf3k8mw67s3"),
		Liquidity: solana.MustPublicKeyFromBase58("5uDkCoM96pwGYhAUucvCzLfm5UcjVRuxz6gH81RnRBmL"),
	}
)

func ProgramsForCluster(cluster solana.Cluster) (Programs, error) {
	switch cluster {
	case solana.ClusterMainnet:
		return MainnetPrograms, nil
	case solana.ClusterDevnet:
		return DevnetPrograms, nil
	default:
		return Programs{}, errors.Wrapf(ErrUnsupportedCluster, "cluster=%s", cluster)
	}
}

var (
	depositInstructionDiscriminator  = [8]byte{242, 35, 198, 137, 82, 225, 242, 182}
	withdrawInstructionDiscriminator = [8]byte{183, 18, 70, 156, 148, 109, 161, 34}
)
