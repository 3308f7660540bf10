package wrapper

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/code-payments/interact-dapp/pkg/config"
)

// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
var ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

// Config wraps an untyped config.Config, converting its values to T. Raw
// bytes are parsed, typed values are passed through.
type Config[T any] struct {
	override     config.Config
	defaultValue T
	parse        func(string) (T, error)

	stateMu   sync.RWMutex
	lastValue T
}

func newConfig[T any](override config.Config, defaultValue T, parse func(string) (T, error)) *Config[T] {
	return &Config[T]{
		override:     override,
		defaultValue: defaultValue,
		parse:        parse,
		lastValue:    defaultValue,
	}
}

// NewBoolConfig returns a new bool config utility wrapper
func NewBoolConfig(override config.Config, defaultValue bool) config.Bool {
	return newConfig(override, defaultValue, strconv.ParseBool)
}

// NewDurationConfig returns a new duration config utility wrapper
func NewDurationConfig(override config.Config, defaultValue time.Duration) config.Duration {
	return newConfig(override, defaultValue, time.ParseDuration)
}

// NewFloat64Config returns a new float64 config utility wrapper
func NewFloat64Config(override config.Config, defaultValue float64) config.Float64 {
	return newConfig(override, defaultValue, func(v string) (float64, error) {
		return strconv.ParseFloat(v, 64)
	})
}

// NewUint64Config returns a new uint64 config utility wrapper
func NewUint64Config(override config.Config, defaultValue uint64) config.Uint64 {
	return newConfig(override, defaultValue, func(v string) (uint64, error) {
		return strconv.ParseUint(v, 10, 64)
	})
}

// NewStringConfig returns a new string config utility wrapper
func NewStringConfig(override config.Config, defaultValue string) config.String {
	return newConfig(override, defaultValue, func(v string) (string, error) {
		return v, nil
	})
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *Config[T]) GetSafe(ctx context.Context) (T, error) {
	override, err := c.override.Get(ctx)

	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()

	if err == config.ErrNoValue {
		c.set(c.defaultValue)
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	var newValue T
	switch override := override.(type) {
	case []byte:
		newValue, err = c.parse(string(override))
		if err != nil {
			return lastValue, err
		}
	case T:
		newValue = override
	default:
		return lastValue, ErrUnsuportedConversion
	}

	c.set(newValue)
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *Config[T]) Get(ctx context.Context) T {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *Config[T]) Shutdown() {
	c.override.Shutdown()
}

func (c *Config[T]) set(v T) {
	c.stateMu.Lock()
	c.lastValue = v
	c.stateMu.Unlock()
}
