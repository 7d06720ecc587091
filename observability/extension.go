// Package observability provides a ready-made metrics hook for qyu.
// Register it on a queue to track completion counts, failure counts,
// drain events, and reported throughput via OpenTelemetry instruments.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/qyu/hook"
	"github.com/xraph/qyu/ratelimit"
)

// meterName is the instrumentation scope name for qyu observability.
const meterName = "github.com/xraph/qyu/observability"

// Compile-time interface checks.
var (
	_ hook.Hook      = (*MetricsHook)(nil)
	_ hook.JobDone   = (*MetricsHook)(nil)
	_ hook.JobFailed = (*MetricsHook)(nil)
	_ hook.Drain     = (*MetricsHook)(nil)
	_ hook.Stats     = (*MetricsHook)(nil)
)

// MetricsHook records queue lifecycle metrics via OTel instruments.
type MetricsHook struct {
	jobsDone      metric.Int64Counter
	jobsFailed    metric.Int64Counter
	drains        metric.Int64Counter
	jobsPerSecond metric.Float64Histogram
}

// NewMetricsHook creates a MetricsHook using the global OTel
// MeterProvider. Without a configured provider the instruments are
// noops and the hook costs nothing.
func NewMetricsHook() *MetricsHook {
	return NewMetricsHookWithMeter(otel.Meter(meterName))
}

// NewMetricsHookWithMeter creates a MetricsHook with the provided meter.
// This variant allows injecting a specific MeterProvider for testing.
func NewMetricsHookWithMeter(meter metric.Meter) *MetricsHook {
	h := &MetricsHook{}

	var err error
	h.jobsDone, err = meter.Int64Counter(
		"qyu.job.done",
		metric.WithDescription("Total jobs completed successfully"),
		metric.WithUnit("{job}"),
	)
	_ = err // noop fallback guaranteed by OTel API contract

	h.jobsFailed, err = meter.Int64Counter(
		"qyu.job.failed",
		metric.WithDescription("Total jobs that returned an error"),
		metric.WithUnit("{job}"),
	)
	_ = err

	h.drains, err = meter.Int64Counter(
		"qyu.queue.drained",
		metric.WithDescription("Total drain events"),
		metric.WithUnit("{event}"),
	)
	_ = err

	h.jobsPerSecond, err = meter.Float64Histogram(
		"qyu.queue.jobs_per_second",
		metric.WithDescription("Throughput reported on each stats tick"),
		metric.WithUnit("{job}/s"),
	)
	_ = err

	return h
}

// Name implements hook.Hook.
func (h *MetricsHook) Name() string { return "observability-metrics" }

// OnJobDone implements hook.JobDone.
func (h *MetricsHook) OnJobDone(ctx context.Context, _ int64, _ any) error {
	h.jobsDone.Add(ctx, 1)
	return nil
}

// OnJobFailed implements hook.JobFailed.
func (h *MetricsHook) OnJobFailed(ctx context.Context, _ int64, _ error) error {
	h.jobsFailed.Add(ctx, 1)
	return nil
}

// OnDrain implements hook.Drain.
func (h *MetricsHook) OnDrain(ctx context.Context) error {
	h.drains.Add(ctx, 1)
	return nil
}

// OnStats implements hook.Stats.
func (h *MetricsHook) OnStats(ctx context.Context, s ratelimit.Stats) error {
	h.jobsPerSecond.Record(ctx, s.JobsPerSecond)
	return nil
}
