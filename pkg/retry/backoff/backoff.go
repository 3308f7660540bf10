// Package backoff provides delay strategies for retry.
package backoff

import (
	"math"
	"time"
)

// Strategy returns how long to wait before the next attempt. attempts starts at 1.
type Strategy func(attempts uint) time.Duration

// Constant waits interval between every attempt.
func Constant(interval time.Duration) Strategy {
	return func(uint) time.Duration {
		return interval
	}
}

// Exponential waits baseDelay * base^(attempts-1). Overflow saturates at the
// maximum duration.
//
// Ex. Exponential(2*time.Second, 3) = 2s, 6s, 18s, 54s, ...
func Exponential(baseDelay time.Duration, base float64) Strategy {
	return func(attempts uint) time.Duration {
		delay := float64(baseDelay) * math.Pow(base, float64(attempts-1))
		if delay >= math.MaxInt64 {
			return math.MaxInt64
		}
		return time.Duration(delay)
	}
}

// BinaryExponential is Exponential with a base of 2.
func BinaryExponential(baseDelay time.Duration) Strategy {
	return Exponential(baseDelay, 2)
}
