package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"

	"github.com/kanade-engine/presetstore/internal/config"
	"github.com/kanade-engine/presetstore/internal/observe"
	"github.com/kanade-engine/presetstore/internal/preset"
)

// Version information (set via ldflags)
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

// Shared state initialised by the root command's PersistentPreRunE.
var (
	cfg   *config.Config
	store *preset.Store
)

// Persistent flag values.
var (
	flagConfig   string
	flagFile     string
	flagLogLevel string
	flagMetrics  bool
	flagTrace    bool
)

// Telemetry state. The registry is private so a one-shot CLI invocation can
// gather and render exactly its own metrics at exit, nothing else.
var (
	metricsRegistry   *prometheus.Registry
	telemetryShutdown func(context.Context) error
)

// initTelemetry brings up the OTel SDK when metrics or tracing are requested
// by flag or config. With neither requested it does nothing and all
// instruments stay no-ops.
func initTelemetry(ctx context.Context) error {
	wantMetrics := flagMetrics || cfg.Telemetry.Metrics
	wantTrace := flagTrace || cfg.Telemetry.Trace
	if !wantMetrics && !wantTrace {
		return nil
	}

	pcfg := observe.ProviderConfig{
		ServiceName:    "presetctl",
		ServiceVersion: version,
	}
	if wantMetrics {
		metricsRegistry = prometheus.NewRegistry()
		pcfg.Registerer = metricsRegistry
	}
	if wantTrace {
		exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
		if err != nil {
			return fmt.Errorf("create trace exporter: %w", err)
		}
		pcfg.TraceExporter = exp
	}

	shutdown, err := observe.InitProvider(ctx, pcfg)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	telemetryShutdown = shutdown
	return nil
}

// flushTelemetry renders gathered metrics to stderr and shuts the providers
// down. Metrics are gathered first: the Prometheus bridge stops collecting
// once its provider is shut down.
func flushTelemetry() {
	if metricsRegistry != nil {
		families, err := metricsRegistry.Gather()
		if err != nil {
			slog.Warn("gather metrics", "err", err)
		} else {
			enc := expfmt.NewEncoder(os.Stderr, expfmt.NewFormat(expfmt.TypeTextPlain))
			for _, mf := range families {
				if err := enc.Encode(mf); err != nil {
					slog.Warn("encode metrics", "err", err)
					break
				}
			}
		}
	}

	if telemetryShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetryShutdown(ctx); err != nil {
			slog.Warn("telemetry shutdown", "err", err)
		}
	}
}
