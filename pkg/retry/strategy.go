package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/code-payments/interact-dapp/pkg/retry/backoff"
)

// Strategy decides whether an action is retried after its attempts-th
// failure. Strategies may sleep.
type Strategy func(attempts uint, err error) bool

// sleep is swapped out by tests
var sleep = time.Sleep

// Limit allows at most maxAttempts attempts in total, including the first
func Limit(maxAttempts uint) Strategy {
	return func(attempts uint, _ error) bool {
		return attempts < maxAttempts
	}
}

// RetriableErrors only retries errors matching one of retriable via errors.Is
func RetriableErrors(retriable ...error) Strategy {
	return func(_ uint, err error) bool {
		for _, target := range retriable {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// Backoff sleeps for the strategy's delay, capped at maxBackoff
func Backoff(strategy backoff.Strategy, maxBackoff time.Duration) Strategy {
	return func(attempts uint, _ error) bool {
		sleep(cappedDelay(strategy, attempts, maxBackoff))
		return true
	}
}

// BackoffWithJitter is Backoff with the capped delay moved by up to
// +/- jitter of itself. A jitter of 0.1 turns 100ms into 90ms to 110ms.
func BackoffWithJitter(strategy backoff.Strategy, maxBackoff time.Duration, jitter float64) Strategy {
	return func(attempts uint, _ error) bool {
		delay := cappedDelay(strategy, attempts, maxBackoff)
		factor := 1 + jitter*(2*rand.Float64()-1)
		sleep(time.Duration(float64(delay) * factor))
		return true
	}
}

// Context stops retrying once ctx is done
func Context(ctx context.Context) Strategy {
	return func(uint, error) bool {
		return ctx.Err() == nil
	}
}

func cappedDelay(strategy backoff.Strategy, attempts uint, maxBackoff time.Duration) time.Duration {
	if delay := strategy(attempts); delay < maxBackoff {
		return delay
	}
	return maxBackoff
}
