package interact

import (
	"context"
	"time"

	"github.com/code-payments/interact-dapp/pkg/config"
	"github.com/code-payments/interact-dapp/pkg/config/env"
	"github.com/code-payments/interact-dapp/pkg/config/memory"
	"github.com/code-payments/interact-dapp/pkg/config/wrapper"
)

const (
	envConfigPrefix = "INTERACT_"

	RpcEndpointConfigEnvName = envConfigPrefix + "RPC_ENDPOINT"
	defaultRpcEndpoint       = "https://api.devnet.solana.com"

	ClusterConfigEnvName = envConfigPrefix + "CLUSTER"
	defaultCluster       = "devnet"

	CommitmentConfigEnvName = envConfigPrefix + "COMMITMENT"
	defaultCommitment       = "confirmed"

	ComputeUnitLimitConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_LIMIT"
	defaultComputeUnitLimit       = 400_000

	ComputeUnitPriceConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_PRICE"
	defaultComputeUnitPrice       = 0

	SimulateBeforeSubmitConfigEnvName = envConfigPrefix + "SIMULATE_BEFORE_SUBMIT"
	defaultSimulateBeforeSubmit       = true

	UseProxyConfigEnvName = envConfigPrefix + "USE_PROXY"
	defaultUseProxy       = false

	LookupTablesConfigEnvName = envConfigPrefix + "LOOKUP_TABLES"
	defaultLookupTables       = ""

	SubmitRateConfigEnvName = envConfigPrefix + "SUBMIT_RATE"
	defaultSubmitRate       = 5.0

	VaultsProgramConfigEnvName = envConfigPrefix + "VAULTS_PROGRAM"
	defaultVaultsProgram       = ""

	ConfirmationTimeoutConfigEnvName = envConfigPrefix + "CONFIRMATION_TIMEOUT"
	defaultConfirmationTimeout       = time.Minute
)

type conf struct {
	rpcEndpoint          config.String
	cluster              config.String
	commitment           config.String
	computeUnitLimit     config.Uint64
	computeUnitPrice     config.Uint64
	simulateBeforeSubmit config.Bool
	useProxy             config.Bool
	lookupTables         config.String // comma separated base58 addresses
	submitRate           config.Float64
	vaultsProgram        config.String
	confirmationTimeout  config.Duration
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			rpcEndpoint:          env.NewStringConfig(RpcEndpointConfigEnvName, defaultRpcEndpoint),
			cluster:              env.NewStringConfig(ClusterConfigEnvName, defaultCluster),
			commitment:           env.NewStringConfig(CommitmentConfigEnvName, defaultCommitment),
			computeUnitLimit:     env.NewUint64Config(ComputeUnitLimitConfigEnvName, defaultComputeUnitLimit),
			computeUnitPrice:     env.NewUint64Config(ComputeUnitPriceConfigEnvName, defaultComputeUnitPrice),
			simulateBeforeSubmit: env.NewBoolConfig(SimulateBeforeSubmitConfigEnvName, defaultSimulateBeforeSubmit),
			useProxy:             env.NewBoolConfig(UseProxyConfigEnvName, defaultUseProxy),
			lookupTables:         env.NewStringConfig(LookupTablesConfigEnvName, defaultLookupTables),
			submitRate:           env.NewFloat64Config(SubmitRateConfigEnvName, defaultSubmitRate),
			vaultsProgram:        env.NewStringConfig(VaultsProgramConfigEnvName, defaultVaultsProgram),
			confirmationTimeout:  env.NewDurationConfig(ConfirmationTimeoutConfigEnvName, defaultConfirmationTimeout),
		}
	}
}

// Overrides are explicit values, typically sourced from CLI flags or a
// config file. Zero values fall back to defaults.
type Overrides struct {
	RpcEndpoint          string
	Cluster              string
	Commitment           string
	ComputeUnitLimit     uint64
	ComputeUnitPrice     uint64
	SimulateBeforeSubmit *bool
	UseProxy             bool
	LookupTables         string
	SubmitRate           float64
	VaultsProgram        string
	ConfirmationTimeout  time.Duration
}

// WithOverrides returns configuration backed by in-memory values
func WithOverrides(overrides *Overrides) ConfigProvider {
	return func() *conf {
		simulateBeforeSubmit := defaultSimulateBeforeSubmit
		if overrides.SimulateBeforeSubmit != nil {
			simulateBeforeSubmit = *overrides.SimulateBeforeSubmit
		}

		return &conf{
			rpcEndpoint:          wrapper.NewStringConfig(memoryOrNoop(overrides.RpcEndpoint), defaultRpcEndpoint),
			cluster:              wrapper.NewStringConfig(memoryOrNoop(overrides.Cluster), defaultCluster),
			commitment:           wrapper.NewStringConfig(memoryOrNoop(overrides.Commitment), defaultCommitment),
			computeUnitLimit:     wrapper.NewUint64Config(memoryOrNoop(overrides.ComputeUnitLimit), defaultComputeUnitLimit),
			computeUnitPrice:     wrapper.NewUint64Config(memory.NewConfig(overrides.ComputeUnitPrice), defaultComputeUnitPrice),
			simulateBeforeSubmit: wrapper.NewBoolConfig(memory.NewConfig(simulateBeforeSubmit), defaultSimulateBeforeSubmit),
			useProxy:             wrapper.NewBoolConfig(memory.NewConfig(overrides.UseProxy), defaultUseProxy),
			lookupTables:         wrapper.NewStringConfig(memory.NewConfig(overrides.LookupTables), defaultLookupTables),
			submitRate:           wrapper.NewFloat64Config(memoryOrNoop(overrides.SubmitRate), defaultSubmitRate),
			vaultsProgram:        wrapper.NewStringConfig(memory.NewConfig(overrides.VaultsProgram), defaultVaultsProgram),
			confirmationTimeout:  wrapper.NewDurationConfig(memoryOrNoop(overrides.ConfirmationTimeout), defaultConfirmationTimeout),
		}
	}
}

// RpcEndpoint resolves the RPC endpoint the provider is configured with
func RpcEndpoint(ctx context.Context, configProvider ConfigProvider) string {
	return configProvider().rpcEndpoint.Get(ctx)
}

func memoryOrNoop[T comparable](v T) config.Config {
	var zero T
	if v == zero {
		return config.NoopConfig
	}
	return memory.NewConfig(v)
}
