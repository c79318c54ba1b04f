// Package observability provides OpenTelemetry tracing and metrics for ASR
// invocations, plus health aggregation for the HTTP surface.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, cfg.TracerConfig("asrdrop", version, env))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
//	defer observability.EndSpan(span, code, err)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, cfg.MeterConfig("asrdrop", version, env))
//	defer mp.Shutdown(ctx)
//
//	m, err := observability.NewMetrics(observability.Meter())
//	m.RecordInvocation(ctx, "batch", "ok", 3, elapsed)
//
// Without Init* the global no-op providers are used, so instruments are
// always safe to call.
package observability
