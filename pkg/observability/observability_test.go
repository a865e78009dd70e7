package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_StampsContextIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "debug", Format: LogFormatJSON, Output: &buf, ServiceName: "focusos"})

	ctx := WithCorrelationID(context.Background(), "corr-1")
	logger.InfoContext(ctx, "hello")

	out := buf.String()
	assert.Contains(t, out, `"service":"focusos"`)
	assert.Contains(t, out, `"correlation_id":"corr-1"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestWithCorrelationID_GeneratesWhenEmpty(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "")
	assert.NotEmpty(t, CorrelationIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(ctx))
}

func TestInMemoryMetrics(t *testing.T) {
	m := NewInMemoryMetrics()
	m.Counter("scoring.recompute.tasks", 3, T("user", "u1"))
	m.Counter("scoring.recompute.tasks", 2, T("user", "u1"))
	m.Timing("scoring.recompute", time.Millisecond)

	assert.Equal(t, int64(5), m.CounterValue("scoring.recompute.tasks", T("user", "u1")))
	assert.Zero(t, m.CounterValue("scoring.recompute.tasks"))
	assert.Len(t, m.Timings("scoring.recompute"), 1)
	assert.Equal(t, "x{a=1,b=2}", metricKey("x", []Tag{T("b", "2"), T("a", "1")}))
}

func TestTimeOperation_RecordsErrors(t *testing.T) {
	m := NewInMemoryMetrics()
	_, err := TimeOperation(context.Background(), nil, m, "plan", func() (int, error) {
		return 0, errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, int64(1), m.CounterValue(MetricOperationErrors, T("operation", "plan")))
	assert.Len(t, m.Timings(MetricOperationDuration, T("operation", "plan")), 1)
}

func TestHealthRegistry(t *testing.T) {
	r := NewHealthRegistry()
	r.Register("db", PingChecker(time.Second, func(context.Context) error { return nil }))
	results := r.Check(context.Background())
	assert.Equal(t, HealthStatusHealthy, Overall(results))

	r.Register("redis", PingChecker(time.Second, func(context.Context) error { return errors.New("down") }))
	results = r.Check(context.Background())
	assert.Equal(t, HealthStatusUnhealthy, Overall(results))
	assert.Equal(t, "down", results["redis"].Message)
}
