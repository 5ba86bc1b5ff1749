// Package observe provides observability primitives for the preset store:
// OpenTelemetry metrics and tracing, plus the SDK wiring that exports them.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// rendered in the standard text exposition format. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all preset store
// metrics.
const meterName = "github.com/kanade-engine/presetstore"

// Metrics holds all OpenTelemetry metric instruments for the store.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// OpDuration tracks store operation latency. Use with attribute:
	//   attribute.String("op", ...)
	OpDuration metric.Float64Histogram

	// Ops counts store operations. Use with attributes:
	//   attribute.String("op", ...), attribute.String("status", ...)
	Ops metric.Int64Counter

	// Reloads counts reconciles that re-read a changed preset file.
	Reloads metric.Int64Counter

	// Rollbacks counts failed persists that forced a cache rollback. Use
	// with attribute:
	//   attribute.String("op", ...)
	Rollbacks metric.Int64Counter

	// PresetCount tracks the number of records currently in the store.
	PresetCount metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// local-file operations: sub-millisecond cache hits up to slow-disk reloads.
var latencyBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.OpDuration, err = m.Float64Histogram("presetstore.op.duration",
		metric.WithDescription("Latency of store operations."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Ops, err = m.Int64Counter("presetstore.ops",
		metric.WithDescription("Total store operations by operation and status."),
	); err != nil {
		return nil, err
	}
	if met.Reloads, err = m.Int64Counter("presetstore.reloads",
		metric.WithDescription("Total cache reloads caused by preset file changes."),
	); err != nil {
		return nil, err
	}
	if met.Rollbacks, err = m.Int64Counter("presetstore.rollbacks",
		metric.WithDescription("Total cache rollbacks after failed persists, by operation."),
	); err != nil {
		return nil, err
	}
	if met.PresetCount, err = m.Int64UpDownCounter("presetstore.presets",
		metric.WithDescription("Number of presets currently in the store."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordOp records one store operation: the counter increment and the
// duration observation, both attributed by operation and status.
func (m *Metrics) RecordOp(ctx context.Context, op, status string, seconds float64) {
	m.Ops.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("op", op),
			attribute.String("status", status),
		),
	)
	m.OpDuration.Record(ctx, seconds,
		metric.WithAttributes(attribute.String("op", op)),
	)
}

// RecordReload records a reconcile that re-read a changed file.
func (m *Metrics) RecordReload(ctx context.Context) {
	m.Reloads.Add(ctx, 1)
}

// RecordRollback records a cache rollback after a failed persist.
func (m *Metrics) RecordRollback(ctx context.Context, op string) {
	m.Rollbacks.Add(ctx, 1,
		metric.WithAttributes(attribute.String("op", op)),
	)
}

// AddPresetCount moves the preset-count gauge by delta. The store reports
// deltas against its last known count so the UpDownCounter tracks the
// absolute collection size.
func (m *Metrics) AddPresetCount(ctx context.Context, delta int64) {
	m.PresetCount.Add(ctx, delta)
}
