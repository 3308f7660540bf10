package solana

import (
	"github.com/pkg/errors"
)

type Environment string

const (
	EnvironmentDev  Environment = "https://api.devnet.solana.com"
	EnvironmentTest Environment = "https://api.testnet.solana.com"
	EnvironmentProd Environment = "https://api.mainnet-beta.solana.com"
)

// Cluster selects which deployment of a program is targeted
type Cluster string

const (
	ClusterMainnet Cluster = "mainnet-beta"
	ClusterDevnet  Cluster = "devnet"
)

func ParseCluster(name string) (Cluster, error) {
	switch Cluster(name) {
	case ClusterMainnet, "mainnet":
		return ClusterMainnet, nil
	case ClusterDevnet:
		return ClusterDevnet, nil
	}
	return "", errors.Errorf("unknown cluster: %s", name)
}

// Environment returns the public RPC endpoint for the cluster
func (c Cluster) Environment() Environment {
	if c == ClusterDevnet {
		return EnvironmentDev
	}
	return EnvironmentProd
}
