package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/interact-dapp/pkg/interact"
	"github.com/code-payments/interact-dapp/pkg/solana/vaults"
	"github.com/code-payments/interact-dapp/pkg/testutil"
)

const testConfig = `
log_level: debug
keypair: /tmp/payer.json
rpc_endpoint: https://rpc.example.com
cluster: mainnet
commitment: finalized
compute_unit_limit: 600000
compute_unit_price: 1000
simulate_before_submit: false
use_proxy: true
lookup_tables:
  - 4UJ1wU2bKUDk1BqjnhD5QA2MS3D2ZKEPSAfXK8xdaL2n
  - " "
submit_rate: 2.5
confirmation_timeout: 90s
`

func writeFile(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeFile(t, "interact.yaml", testConfig)

	config, err := loadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "/tmp/payer.json", config.Keypair)
	assert.Equal(t, "mainnet", config.Cluster)
	assert.Equal(t, 90*time.Second, config.ConfirmationTimeout)

	overrides := config.Overrides()
	assert.Equal(t, "https://rpc.example.com", overrides.RpcEndpoint)
	assert.Equal(t, "finalized", overrides.Commitment)
	assert.EqualValues(t, 600_000, overrides.ComputeUnitLimit)
	assert.EqualValues(t, 1_000, overrides.ComputeUnitPrice)
	require.NotNil(t, overrides.SimulateBeforeSubmit)
	assert.False(t, *overrides.SimulateBeforeSubmit)
	assert.True(t, overrides.UseProxy)
	assert.Equal(t, "4UJ1wU2bKUDk1BqjnhD5QA2MS3D2ZKEPSAfXK8xdaL2n", overrides.LookupTables)
	assert.Equal(t, 2.5, overrides.SubmitRate)
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "warn", config.LogLevel)
	assert.Equal(t, "~/.config/solana/id.json", config.Keypair)
	assert.True(t, config.SimulateBeforeSubmit)
	assert.Empty(t, config.Overrides().LookupTables)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv(interact.ClusterConfigEnvName, "mainnet")
	t.Setenv(interact.UseProxyConfigEnvName, "true")

	config, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "mainnet", config.Cluster)
	assert.True(t, config.UseProxy)
}

func TestLoadConfig_FlagsTakePrecedence(t *testing.T) {
	path := writeFile(t, "interact.yaml", testConfig)

	a := &app{
		log: logrus.StandardLogger().WithField("type", "cli"),
		v:   viper.New(),
	}
	root := newRootCommand(a)
	require.NoError(t, root.PersistentFlags().Parse([]string{
		"--cluster", "devnet",
		"--simulate=true",
		"--lookup-table", "2Xj4JNgfbUpTSNMrUyNpyHy2iy6iFZYoNRzTjXmZGrYr",
	}))

	config, err := loadConfig(a.v, path)
	require.NoError(t, err)

	assert.Equal(t, "devnet", config.Cluster)
	assert.True(t, config.SimulateBeforeSubmit)
	assert.Equal(t, []string{"2Xj4JNgfbUpTSNMrUyNpyHy2iy6iFZYoNRzTjXmZGrYr"}, config.LookupTables)

	// Unset flags fall through to the file
	assert.Equal(t, "finalized", config.Commitment)
	assert.Equal(t, "/tmp/payer.json", config.Keypair)
}

func TestKeypairPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	config := &Config{Keypair: "~/keys/id.json"}
	path, err := config.KeypairPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "keys/id.json"), path)

	config = &Config{Keypair: "/abs/id.json"}
	path, err = config.KeypairPath()
	require.NoError(t, err)
	assert.Equal(t, "/abs/id.json", path)
}

func TestLoadKeypair(t *testing.T) {
	key := testutil.GenerateSolanaKeypair(t)

	ints := make([]int, len(key))
	for i, b := range key {
		ints[i] = int(b)
	}
	encoded, err := json.Marshal(ints)
	require.NoError(t, err)

	actual, err := loadKeypair(&Config{Keypair: writeFile(t, "id.json", string(encoded))})
	require.NoError(t, err)
	assert.Equal(t, base58.Encode(key), base58.Encode(actual))

	_, err = loadKeypair(&Config{Keypair: writeFile(t, "bad.json", "not json")})
	assert.Error(t, err)
}

func TestParseVaultAmount(t *testing.T) {
	amount, err := parseVaultAmount("MAX", 6)
	require.NoError(t, err)
	assert.Equal(t, vaults.MaxAmount, amount)

	amount, err = parseVaultAmount("2.5", 6)
	require.NoError(t, err)
	assert.EqualValues(t, 2_500_000, amount)

	_, err = parseVaultAmount("-1", 6)
	assert.Error(t, err)
}

func TestParseTransferType(t *testing.T) {
	transferType, err := parseTransferType("")
	require.NoError(t, err)
	assert.Nil(t, transferType)

	transferType, err = parseTransferType("Claim")
	require.NoError(t, err)
	require.NotNil(t, transferType)
	assert.Equal(t, vaults.TransferTypeClaim, *transferType)

	_, err = parseTransferType("direct")
	assert.Error(t, err)
}

func TestRootCommand_Tree(t *testing.T) {
	root := newRootCommand(&app{v: viper.New()})

	for _, path := range [][]string{
		{"earn", "deposit"},
		{"earn", "withdraw"},
		{"vault", "init-position"},
		{"vault", "deposit"},
		{"vault", "withdraw"},
		{"vault", "borrow"},
		{"vault", "payback"},
		{"vault", "deposit-borrow"},
		{"vault", "payback-withdraw"},
		{"swap"},
		{"pool"},
		{"lookup-table", "create"},
		{"balance"},
		{"airdrop"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
