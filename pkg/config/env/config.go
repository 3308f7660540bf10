package env

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/code-payments/interact-dapp/pkg/config"
	"github.com/code-payments/interact-dapp/pkg/config/wrapper"
)

type conf struct {
	key string
}

// NewConfig returns a config backed by the environment variable key. The
// variable is read on every Get.
func NewConfig(key string) config.Config {
	return &conf{
		key: strings.ToUpper(key),
	}
}

// Get implements Config.Get
func (c *conf) Get(_ context.Context) (interface{}, error) {
	val, ok := os.LookupEnv(c.key)
	if !ok || len(val) == 0 {
		return nil, config.ErrNoValue
	}
	return []byte(val), nil
}

// Shutdown implements Config.Shutdown
func (c *conf) Shutdown() {
}

func NewUint64Config(key string, defaultValue uint64) config.Uint64 {
	return wrapper.NewUint64Config(NewConfig(key), defaultValue)
}

func NewFloat64Config(key string, defaultValue float64) config.Float64 {
	return wrapper.NewFloat64Config(NewConfig(key), defaultValue)
}

func NewStringConfig(key string, defaultValue string) config.String {
	return wrapper.NewStringConfig(NewConfig(key), defaultValue)
}

func NewBoolConfig(key string, defaultValue bool) config.Bool {
	return wrapper.NewBoolConfig(NewConfig(key), defaultValue)
}

func NewDurationConfig(key string, defaultValue time.Duration) config.Duration {
	return wrapper.NewDurationConfig(NewConfig(key), defaultValue)
}
