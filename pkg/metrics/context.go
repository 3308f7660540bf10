package metrics

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// NewRelicContextKey is the context key under which the New Relic application
// is stored for the Record* helpers
type NewRelicContextKey struct{}

// NewContext returns a copy of ctx that records metrics and events to app
func NewContext(ctx context.Context, app *newrelic.Application) context.Context {
	if app == nil {
		return ctx
	}
	return context.WithValue(ctx, NewRelicContextKey{}, app)
}
