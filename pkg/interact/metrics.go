package interact

import (
	"context"
	"time"

	"github.com/code-payments/interact-dapp/pkg/metrics"
)

const (
	metricsStructName = "interact.invoker"

	invocationEventName      = "InteractInvocation"
	invocationDurationMetric = "Interact/Invocation/Duration"
	computeUnitsMetric       = "Interact/Invocation/ComputeUnits"
)

func recordInvocationEvent(ctx context.Context, protocol, operation string, mode Mode, duration time.Duration, err error) {
	kvPairs := map[string]interface{}{
		"protocol":  protocol,
		"operation": operation,
		"mode":      string(mode),
		"success":   err == nil,
	}
	if err != nil {
		kvPairs["error"] = err.Error()
		if code, ok := CustomErrorCode(err); ok {
			kvPairs["error_code"] = code
		}
	}

	metrics.RecordEvent(ctx, invocationEventName, kvPairs)
	metrics.RecordDuration(ctx, invocationDurationMetric, duration)
}

func recordComputeUnits(ctx context.Context, unitsConsumed uint64) {
	if unitsConsumed > 0 {
		metrics.RecordCount(ctx, computeUnitsMetric, unitsConsumed)
	}
}
