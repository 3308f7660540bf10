package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/code-payments/interact-dapp/pkg/interact"
)

// Config is the CLI configuration. Values come from flags, then INTERACT_*
// environment variables, then the config file.
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	AppName string `mapstructure:"app_name"`

	// Path to a solana-keygen JSON keypair. A leading ~ expands to the home
	// directory.
	Keypair string `mapstructure:"keypair"`

	RpcEndpoint          string        `mapstructure:"rpc_endpoint"`
	Cluster              string        `mapstructure:"cluster"`
	Commitment           string        `mapstructure:"commitment"`
	ComputeUnitLimit     uint64        `mapstructure:"compute_unit_limit"`
	ComputeUnitPrice     uint64        `mapstructure:"compute_unit_price"`
	SimulateBeforeSubmit bool          `mapstructure:"simulate_before_submit"`
	UseProxy             bool          `mapstructure:"use_proxy"`
	LookupTables         []string      `mapstructure:"lookup_tables"`
	SubmitRate           float64       `mapstructure:"submit_rate"`
	VaultsProgram        string        `mapstructure:"vaults_program"`
	ConfirmationTimeout  time.Duration `mapstructure:"confirmation_timeout"`

	// Metrics and log forwarding are disabled without a key
	NewRelicLicenseKey string `mapstructure:"new_relic_license_key"`
}

// Defaults are registered with viper rather than pre-populated, since bound
// flags would otherwise clobber them with their own zero defaults
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("app_name", "interact")
	v.SetDefault("keypair", "~/.config/solana/id.json")
	v.SetDefault("simulate_before_submit", true)
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	_ = v.BindEnv("keypair", "INTERACT_KEYPAIR")

	_ = v.BindEnv("rpc_endpoint", interact.RpcEndpointConfigEnvName)
	_ = v.BindEnv("cluster", interact.ClusterConfigEnvName)
	_ = v.BindEnv("commitment", interact.CommitmentConfigEnvName)
	_ = v.BindEnv("compute_unit_limit", interact.ComputeUnitLimitConfigEnvName)
	_ = v.BindEnv("compute_unit_price", interact.ComputeUnitPriceConfigEnvName)
	_ = v.BindEnv("simulate_before_submit", interact.SimulateBeforeSubmitConfigEnvName)
	_ = v.BindEnv("use_proxy", interact.UseProxyConfigEnvName)
	_ = v.BindEnv("lookup_tables", interact.LookupTablesConfigEnvName)
	_ = v.BindEnv("submit_rate", interact.SubmitRateConfigEnvName)
	_ = v.BindEnv("vaults_program", interact.VaultsProgramConfigEnvName)
	_ = v.BindEnv("confirmation_timeout", interact.ConfirmationTimeoutConfigEnvName)

	_ = v.BindEnv("new_relic_license_key", "NEW_RELIC_LICENSE_KEY")
}

// loadConfig reads the optional config file at path and merges it with the
// environment and any flags already bound to v
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)
	bindEnv(v)

	// viper.ReadInConfig only returns ConfigFileNotFoundError if it has to search
	// for a default config file, so a missing explicit file is handled here.
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to check if config exists")
	} else {
		v.SetConfigName("interact")
		v.AddConfigPath(".")
	}

	err := v.ReadInConfig()
	_, isConfigNotFound := err.(viper.ConfigFileNotFoundError)
	if err != nil && !isConfigNotFound {
		return nil, errors.Wrap(err, "failed to load config")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &config, nil
}

// Overrides maps the CLI configuration onto the invoker's
func (c *Config) Overrides() *interact.Overrides {
	simulateBeforeSubmit := c.SimulateBeforeSubmit

	var lookupTables []string
	for _, table := range c.LookupTables {
		if table = strings.TrimSpace(table); len(table) > 0 {
			lookupTables = append(lookupTables, table)
		}
	}

	return &interact.Overrides{
		RpcEndpoint:          c.RpcEndpoint,
		Cluster:              c.Cluster,
		Commitment:           c.Commitment,
		ComputeUnitLimit:     c.ComputeUnitLimit,
		ComputeUnitPrice:     c.ComputeUnitPrice,
		SimulateBeforeSubmit: &simulateBeforeSubmit,
		UseProxy:             c.UseProxy,
		LookupTables:         strings.Join(lookupTables, ","),
		SubmitRate:           c.SubmitRate,
		VaultsProgram:        c.VaultsProgram,
		ConfirmationTimeout:  c.ConfirmationTimeout,
	}
}

// KeypairPath resolves the configured keypair path
func (c *Config) KeypairPath() (string, error) {
	path := c.Keypair
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "error resolving home directory")
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path, nil
}
