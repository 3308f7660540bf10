package cli

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/code-payments/interact-dapp/pkg/interact"
	metrics_util "github.com/code-payments/interact-dapp/pkg/metrics"
	"github.com/code-payments/interact-dapp/pkg/solana"
)

// app is the state shared by every command of a single execution
type app struct {
	log *logrus.Entry

	v          *viper.Viper
	configPath string
	config     *Config

	metricsProvider *newrelic.Application
	txn             *newrelic.Transaction

	invoker *interact.Invoker
}

// Execute runs the interact CLI against os.Args
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a := &app{
		log: logrus.StandardLogger().WithField("type", "cli"),
		v:   viper.New(),
	}
	defer a.shutdown()

	return newRootCommand(a).ExecuteContext(ctx)
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "interact",
		Short:        "Invoke Jupiter Lend, Jupiter Vaults and Raydium CLMM on Solana",
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "interact.yaml", "configuration file path")
	flags.StringP("keypair", "k", "", "payer keypair file")
	flags.String("log-level", "", "log level")
	flags.StringP("url", "u", "", "RPC endpoint")
	flags.String("cluster", "", "cluster the RPC endpoint serves (mainnet or devnet)")
	flags.String("commitment", "", "commitment level for reads and confirmation")
	flags.Uint64("compute-unit-limit", 0, "compute unit limit")
	flags.Uint64("compute-unit-price", 0, "compute unit price in micro-lamports")
	flags.Bool("simulate", true, "simulate before submitting")
	flags.Bool("proxy", false, "route supported calls through the interact_dapp program")
	flags.StringSlice("lookup-table", nil, "address lookup table to compile against (repeatable)")
	flags.String("vaults-program", "", "vaults program override")
	flags.Duration("confirmation-timeout", 0, "how long to wait for confirmation")

	for key, flag := range map[string]string{
		"keypair":                "keypair",
		"log_level":              "log-level",
		"rpc_endpoint":           "url",
		"cluster":                "cluster",
		"commitment":             "commitment",
		"compute_unit_limit":     "compute-unit-limit",
		"compute_unit_price":     "compute-unit-price",
		"simulate_before_submit": "simulate",
		"use_proxy":              "proxy",
		"lookup_tables":          "lookup-table",
		"vaults_program":         "vaults-program",
		"confirmation_timeout":   "confirmation-timeout",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		newEarnCommand(a),
		newVaultCommand(a),
		newSwapCommand(a),
		newPoolCommand(a),
		newLookupTableCommand(a),
		newBalanceCommand(a),
		newAirdropCommand(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	config, err := loadConfig(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.config = config

	if len(config.NewRelicLicenseKey) > 0 {
		nr, err := newrelic.NewApplication(
			newrelic.ConfigFromEnvironment(),
			newrelic.ConfigAppName(config.AppName),
			newrelic.ConfigLicense(config.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			return errors.Wrap(err, "error connecting to new relic")
		}
		a.metricsProvider = nr
	}

	configureLogger(config, a.metricsProvider, cmd.ErrOrStderr())

	ctx := cmd.Context()
	if a.metricsProvider != nil {
		a.txn = a.metricsProvider.StartTransaction(cmd.CommandPath())
		ctx = newrelic.NewContext(ctx, a.txn)
		ctx = metrics_util.NewContext(ctx, a.metricsProvider)
	}
	cmd.SetContext(ctx)

	payer, err := loadKeypair(config)
	if err != nil {
		return err
	}

	configProvider := interact.WithOverrides(config.Overrides())
	endpoint := interact.RpcEndpoint(ctx, configProvider)

	a.invoker, err = interact.NewInvoker(solana.New(endpoint), payer, configProvider)
	if err != nil {
		return err
	}

	a.log.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"cluster":  a.invoker.Cluster(),
		"payer":    base58.Encode(a.invoker.Payer()),
	}).Debug("initialized invoker")
	return nil
}

func (a *app) shutdown() {
	if a.txn != nil {
		a.txn.End()
	}
	if a.metricsProvider != nil {
		a.metricsProvider.Shutdown(5 * time.Second)
	}
}

func configureLogger(config *Config, metricsProvider *newrelic.Application, out io.Writer) {
	if metricsProvider != nil {
		logrus.SetFormatter(metrics_util.NewCustomNewRelicLogFormatter(metricsProvider, &logrus.JSONFormatter{}))
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		logrus.StandardLogger().WithField("log_level", config.LogLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}

	logrus.SetOutput(out)
}

func loadKeypair(config *Config) (ed25519.PrivateKey, error) {
	path, err := config.KeypairPath()
	if err != nil {
		return nil, err
	}

	key, err := solanago.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading keypair from %s", path)
	}
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("keypair at %s is not an ed25519 private key", path)
	}
	return ed25519.PrivateKey(key), nil
}

// invoke runs a single on-chain call and reports its outcome
func (a *app) invoke(cmd *cobra.Command, call func(ctx context.Context) (*interact.Invocation, error)) error {
	invocation, err := call(cmd.Context())
	if err != nil {
		printError(cmd, err)
		return err
	}

	printInvocation(cmd, invocation)
	return nil
}

func printInvocation(cmd *cobra.Command, invocation *interact.Invocation) {
	fmt.Fprintf(cmd.OutOrStdout(), "signature: %s\n", invocation.SignatureString())
	fmt.Fprintf(cmd.OutOrStdout(), "slot:      %d\n", invocation.Slot)
	if invocation.UnitsConsumed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "units:     %d\n", invocation.UnitsConsumed)
	}
}

// printError surfaces program logs for failed simulations, which is most of
// what a user needs to debug a rejected call
func printError(cmd *cobra.Command, err error) {
	var simErr *interact.SimulationError
	if errors.As(err, &simErr) {
		for _, line := range simErr.Logs {
			fmt.Fprintln(cmd.ErrOrStderr(), line)
		}
	}
	if code, ok := interact.CustomErrorCode(err); ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "program error code: %d\n", code)
	}
}
