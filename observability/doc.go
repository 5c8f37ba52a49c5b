// Package observability provides OpenTelemetry tracing and metrics for
// dock reloads and binds.
//
// Tracing:
//
//	cfg := observability.DefaultTracerConfig("dock")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanReloadCandidates)
//	defer span.End()
//
// Metrics:
//
//	mcfg := observability.DefaultMeterConfig("dock")
//	mp, err := observability.InitMeter(ctx, &mcfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("dock"))
//	metrics.RecordReload(ctx, observability.PhaseCandidates, "ok", elapsed)
//
// Health:
//
//	health := observability.NewServiceHealth("dock", version)
//	health.AddComponent(controller.Health())
package observability
