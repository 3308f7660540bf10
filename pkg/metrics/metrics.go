package metrics

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

func fromContext(ctx context.Context) (*newrelic.Application, bool) {
	nr, ok := ctx.Value(NewRelicContextKey{}).(*newrelic.Application)
	return nr, ok && nr != nil
}

// RecordEvent records a new event with a name and set of key-value pairs
func RecordEvent(ctx context.Context, eventName string, kvPairs map[string]interface{}) {
	if nr, ok := fromContext(ctx); ok {
		nr.RecordCustomEvent(eventName, kvPairs)
	}
}

// RecordCount records a count metric
func RecordCount(ctx context.Context, metricName string, count uint64) {
	if nr, ok := fromContext(ctx); ok {
		nr.RecordCustomMetric(metricName, float64(count))
	}
}

// RecordDuration records a duration metric in milliseconds
func RecordDuration(ctx context.Context, metricName string, duration time.Duration) {
	if nr, ok := fromContext(ctx); ok {
		nr.RecordCustomMetric(metricName, float64(duration/time.Millisecond))
	}
}
