package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/dock/logger"
)

// Reload phases reported in metrics and spans.
const (
	PhaseModules    = "modules"
	PhaseTypes      = "types"
	PhaseCandidates = "candidates"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the dock metric instruments.
type Metrics struct {
	reloadTotal    metric.Int64Counter
	reloadDuration metric.Float64Histogram
	bindTotal      metric.Int64Counter
	bindRequests   metric.Int64Histogram
	candidates     metric.Int64Gauge
	errorTotal     metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	reloadTotal, err := meter.Int64Counter("dock.reload.total",
		metric.WithDescription("Total number of reloads by phase"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dock.reload.total counter: %w", err)
	}

	reloadDuration, err := meter.Float64Histogram("dock.reload.duration",
		metric.WithDescription("Duration of reloads in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dock.reload.duration histogram: %w", err)
	}

	bindTotal, err := meter.Int64Counter("dock.bind.total",
		metric.WithDescription("Total number of objects bound"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dock.bind.total counter: %w", err)
	}

	bindRequests, err := meter.Int64Histogram("dock.bind.requests",
		metric.WithDescription("Binding requests resolved per object"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dock.bind.requests histogram: %w", err)
	}

	candidates, err := meter.Int64Gauge("dock.registry.candidates",
		metric.WithDescription("Candidates held by the registry after the last reload"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dock.registry.candidates gauge: %w", err)
	}

	errorTotal, err := meter.Int64Counter("dock.error.total",
		metric.WithDescription("Total errors by code and operation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dock.error.total counter: %w", err)
	}

	return &Metrics{
		reloadTotal:    reloadTotal,
		reloadDuration: reloadDuration,
		bindTotal:      bindTotal,
		bindRequests:   bindRequests,
		candidates:     candidates,
		errorTotal:     errorTotal,
	}, nil
}

// RecordReload records one reload phase.
func (m *Metrics) RecordReload(ctx context.Context, phase, status string, duration time.Duration) {
	m.reloadTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("phase", phase),
		attribute.String("status", status),
	))
	m.reloadDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("phase", phase),
	))
}

// RecordBind records one object bind and the number of requests it resolved.
func (m *Metrics) RecordBind(ctx context.Context, objectType, status string, requests int) {
	m.bindTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", objectType),
		attribute.String("status", status),
	))
	m.bindRequests.Record(ctx, int64(requests), metric.WithAttributes(
		attribute.String("type", objectType),
	))
}

// RecordCandidates records the registry size.
func (m *Metrics) RecordCandidates(ctx context.Context, roles, candidates int) {
	m.candidates.Record(ctx, int64(candidates), metric.WithAttributes(
		attribute.Int("roles", roles),
	))
}

// RecordError records an error by code and operation.
func (m *Metrics) RecordError(ctx context.Context, code, operation string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("operation", operation),
	))
}
