package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("dock")

	if cfg.ServiceName != "dock" {
		t.Errorf("expected ServiceName 'dock', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("dock")

	if cfg.ServiceName != "dock" {
		t.Errorf("expected ServiceName 'dock', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewMetricsNoop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordReload(ctx, PhaseCandidates, "ok", 10*time.Millisecond)
	metrics.RecordBind(ctx, "*game.Consumer", "ok", 2)
	metrics.RecordCandidates(ctx, 3, 12)
	metrics.RecordError(ctx, "UNKNOWN_ROLE", "get")
}

func TestMetricsRecorded(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordBind(ctx, "*game.Consumer", "ok", 1)
	metrics.RecordBind(ctx, "*game.Consumer", "ok", 1)
	metrics.RecordReload(ctx, PhaseTypes, "ok", time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	found := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = true
			if m.Name != "dock.bind.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("expected Sum[int64] for dock.bind.total, got %T", m.Data)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			if total != 2 {
				t.Errorf("expected 2 binds, got %d", total)
			}
		}
	}
	for _, name := range []string{"dock.bind.total", "dock.bind.requests", "dock.reload.total", "dock.reload.duration"} {
		if !found[name] {
			t.Errorf("expected metric %s to be collected", name)
		}
	}
}

func TestNewServiceHealth(t *testing.T) {
	sh := NewServiceHealth("dock", "1.0.0")
	if sh.Service != "dock" {
		t.Errorf("expected service 'dock', got %s", sh.Service)
	}
	if sh.Status != HealthStatusUp {
		t.Errorf("expected status up, got %s", sh.Status)
	}
}

func TestServiceHealthAddComponent(t *testing.T) {
	tests := []struct {
		name     string
		statuses []HealthStatus
		want     HealthStatus
	}{
		{"all up", []HealthStatus{HealthStatusUp, HealthStatusUp}, HealthStatusUp},
		{"degraded", []HealthStatus{HealthStatusUp, HealthStatusDegraded}, HealthStatusDegraded},
		{"down", []HealthStatus{HealthStatusDegraded, HealthStatusDown}, HealthStatusDown},
		{"degraded does not override down", []HealthStatus{HealthStatusDown, HealthStatusDegraded}, HealthStatusDown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sh := NewServiceHealth("dock", "")
			for i, s := range tc.statuses {
				sh.AddComponent(Health{Name: string(rune('a' + i)), Status: s})
			}
			if sh.Status != tc.want {
				t.Errorf("expected %s, got %s", tc.want, sh.Status)
			}
			if len(sh.Components) != len(tc.statuses) {
				t.Errorf("expected %d components, got %d", len(tc.statuses), len(sh.Components))
			}
		})
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{2.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
	}
	for _, tc := range tests {
		if got := Sampler(tc.rate).Description(); got != tc.want {
			t.Errorf("Sampler(%v): expected %s, got %s", tc.rate, tc.want, got)
		}
	}
	if got := Sampler(0.5).Description(); got == "AlwaysOnSampler" || got == "AlwaysOffSampler" {
		t.Errorf("expected ratio sampler for 0.5, got %s", got)
	}
}

func TestStartSpanAndEndSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer(defaultTracerName).Start(context.Background(), SpanReloadTypes)
	EndSpan(span, nil)

	_, failed := tp.Tracer(defaultTracerName).Start(context.Background(), SpanReloadCandidates)
	EndSpan(failed, errors.New("live objects unavailable"))

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 ended spans, got %d", len(spans))
	}
	if spans[0].Name() != SpanReloadTypes {
		t.Errorf("expected span %s, got %s", SpanReloadTypes, spans[0].Name())
	}
	if spans[0].Status().Code == otelcodes.Error {
		t.Error("expected successful span to have no error status")
	}
	if spans[1].Status().Code != otelcodes.Error {
		t.Errorf("expected error status, got %v", spans[1].Status().Code)
	}
	if len(spans[1].Events()) == 0 {
		t.Error("expected recorded error event")
	}
}

func TestStartSpanGlobal(t *testing.T) {
	ctx, span := StartSpan(context.Background(), SpanBind)
	defer span.End()
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
}

func TestTracerAndMeter(t *testing.T) {
	if Tracer("test-tracer") == nil {
		t.Fatal("expected non-nil tracer")
	}
	if Meter("test-meter") == nil {
		t.Fatal("expected non-nil meter")
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("dock", "1.0.0", "test")
	if err != nil {
		t.Fatalf("expected resource without schema conflict, got %v", err)
	}
	found := false
	for _, kv := range res.Attributes() {
		if string(kv.Key) == "service.name" && kv.Value.AsString() == "dock" {
			found = true
		}
	}
	if !found {
		t.Error("expected service.name=dock attribute")
	}
}

func TestInitTracer(t *testing.T) {
	cfg := DefaultTracerConfig("dock")
	tp, err := InitTracer(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("InitTracer failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = tp.Shutdown(ctx)
}

func TestInitMeter(t *testing.T) {
	cfg := DefaultMeterConfig("dock")
	mp, err := InitMeter(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("InitMeter failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = mp.Shutdown(ctx)
}
