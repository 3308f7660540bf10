package retry

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/code-payments/interact-dapp/pkg/retry/backoff"
)

// sleepRecorder replaces sleep for the duration of a test
type sleepRecorder struct {
	durations []time.Duration
}

func recordSleeps(t *testing.T) *sleepRecorder {
	recorder := &sleepRecorder{}
	sleep = func(d time.Duration) {
		recorder.durations = append(recorder.durations, d)
	}
	t.Cleanup(func() {
		sleep = time.Sleep
	})
	return recorder
}

func (r *sleepRecorder) total() (total time.Duration) {
	for _, d := range r.durations {
		total += d
	}
	return total
}

func (r *sleepRecorder) mean() time.Duration {
	return r.total() / time.Duration(len(r.durations))
}

func (r *sleepRecorder) absDeviation() time.Duration {
	mean := r.mean()

	var dev float64
	for _, d := range r.durations {
		dev += math.Abs(float64(d - mean))
	}
	return time.Duration(dev / float64(len(r.durations)))
}

func TestLimit(t *testing.T) {
	strategy := Limit(2)
	assert.True(t, strategy(1, errors.New("test")))
	assert.False(t, strategy(2, errors.New("test")))

	attempts, err := Retry(func() error {
		return errors.New("test")
	}, Limit(2))
	assert.EqualError(t, err, "test")
	assert.EqualValues(t, 2, attempts)
}

func TestRetriableErrors(t *testing.T) {
	retriable := []error{
		errors.New("retriableA"),
		errors.New("retriableB"),
	}

	strategy := RetriableErrors(retriable...)
	for _, err := range retriable {
		assert.True(t, strategy(1, err))
		assert.True(t, strategy(1, errors.Wrap(err, "wrapper")))
	}
	assert.False(t, strategy(2, errors.New("unexpected")))
}

func TestBackoff(t *testing.T) {
	recorder := recordSleeps(t)
	strategy := Backoff(backoff.BinaryExponential(100*time.Millisecond), 500*time.Millisecond)

	for attempts := uint(1); attempts <= 5; attempts++ {
		assert.True(t, strategy(attempts, errors.New("test")))
	}

	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		500 * time.Millisecond,
		500 * time.Millisecond,
	}, recorder.durations)
}

func TestBackoffWithJitter(t *testing.T) {
	recorder := recordSleeps(t)

	delay := time.Millisecond
	strategy := BackoffWithJitter(backoff.Constant(delay), delay, 0.1)
	for i := 0; i < 10_000; i++ {
		assert.True(t, strategy(1, errors.New("err")))
	}

	for _, d := range recorder.durations {
		assert.InDelta(t, float64(delay), float64(d), 0.1*float64(delay))
	}
	assert.InDelta(t, float64(delay), float64(recorder.mean()), 0.01*float64(delay))

	// Uniform over +/- 10% has a mean absolute deviation of 5%
	assert.InDelta(t, 0.05*float64(delay), float64(recorder.absDeviation()), 0.0025*float64(delay))
}

func TestContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	strategy := Context(ctx)

	assert.True(t, strategy(1, errors.New("err")))
	cancel()
	assert.False(t, strategy(2, errors.New("err")))
}
