package env

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/code-payments/interact-dapp/pkg/config"
)

func TestConfig(t *testing.T) {
	const env = "ENV_CONFIG_TEST_VAR"

	t.Setenv(env, "value")
	v, err := NewConfig(env).Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	t.Setenv(env, "")
	v, err = NewConfig(env).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestConfig_ReadsLatestValue(t *testing.T) {
	const env = "ENV_CONFIG_TEST_DURATION"

	c := NewDurationConfig(env, time.Second)
	assert.Equal(t, time.Second, c.Get(context.Background()))

	t.Setenv(env, "90s")
	assert.Equal(t, 90*time.Second, c.Get(context.Background()))
}

func TestTypedConfigs(t *testing.T) {
	ctx := context.Background()

	t.Setenv("ENV_CONFIG_TEST_UINT64", "400000")
	t.Setenv("ENV_CONFIG_TEST_FLOAT64", "2.5")
	t.Setenv("ENV_CONFIG_TEST_BOOL", "false")
	t.Setenv("ENV_CONFIG_TEST_STRING", "devnet")

	assert.EqualValues(t, 400_000, NewUint64Config("env_config_test_uint64", 1).Get(ctx))
	assert.Equal(t, 2.5, NewFloat64Config("ENV_CONFIG_TEST_FLOAT64", 1).Get(ctx))
	assert.False(t, NewBoolConfig("ENV_CONFIG_TEST_BOOL", true).Get(ctx))
	assert.Equal(t, "devnet", NewStringConfig("ENV_CONFIG_TEST_STRING", "mainnet").Get(ctx))
	assert.Equal(t, "mainnet", NewStringConfig("ENV_CONFIG_TEST_MISSING", "mainnet").Get(ctx))
}
