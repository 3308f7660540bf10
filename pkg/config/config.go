package config

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrNoValue indicates no value was set for the config
	ErrNoValue = errors.New("config: no value set")

	// ErrShutdown indicates the use of a Config after calling Shutdown
	ErrShutdown = errors.New("config: shutdown")
)

// Config is an untyped source of a configuration value. Sources return either
// the raw bytes of a textual value or an already typed value.
type Config interface {
	// Get returns the latest config value
	Get(ctx context.Context) (interface{}, error)

	// Shutdown signals the config to stop all underlying resources
	Shutdown()
}

// NoopConfig is a config that does not yield any values.
var NoopConfig = &noopConfig{}

type noopConfig struct{}

func (*noopConfig) Get(_ context.Context) (interface{}, error) {
	return nil, ErrNoValue
}

func (*noopConfig) Shutdown() {
}

// Value provides a typed config.Config
type Value[T any] interface {
	// Get returns the latest value, falling back to the last known or default
	// value on error
	Get(ctx context.Context) T

	// GetSafe is Get, but surfaces errors from the underlying source
	GetSafe(ctx context.Context) (T, error)

	Shutdown()
}

type (
	Bool     = Value[bool]
	Duration = Value[time.Duration]
	Float64  = Value[float64]
	Uint64   = Value[uint64]
	String   = Value[string]
)
