package observability

import (
	"context"
	"log/slog"
	"time"
)

// Metric names emitted by TimeOperation.
const (
	MetricOperationDuration = "operation.duration"
	MetricOperationErrors   = "operation.errors"
)

// TimeOperation runs fn, logging and recording how long it took.
func TimeOperation[R any](ctx context.Context, logger *slog.Logger, metrics Metrics, operation string, fn func() (R, error)) (R, error) {
	start := time.Now()
	result, err := fn()
	elapsed := time.Since(start)

	if metrics != nil {
		tag := T("operation", operation)
		metrics.Timing(MetricOperationDuration, elapsed, tag)
		if err != nil {
			metrics.Counter(MetricOperationErrors, 1, tag)
		}
	}
	if logger != nil {
		if err != nil {
			logger.ErrorContext(ctx, "operation failed",
				"operation", operation,
				DurationKey, elapsed.Milliseconds(),
				"error", err,
			)
		} else {
			logger.DebugContext(ctx, "operation completed",
				"operation", operation,
				DurationKey, elapsed.Milliseconds(),
			)
		}
	}
	return result, err
}
