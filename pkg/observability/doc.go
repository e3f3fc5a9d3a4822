// Package observability provides structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// # Structured Logging
//
// Loggers are logrus loggers configured with a level and a text or JSON formatter:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stderr, observability.JSONFormat)
//	logger.WithField("file", path).Info("Parsed descriptor set")
//
// A logger travels with a context via WithLogger and GetLogger.
//
// # Prometheus Metrics
//
// Metrics are registered on a caller supplied registry. Every recording method
// is safe to call on a nil *Metrics, so instrumented code need not check.
//
//	metrics := observability.NewMetrics(prometheus.NewRegistry())
//	metrics.RecordDeclaration("message")
//	metrics.WriteTextfile("sabledocs.prom")
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(version)
//	checker.Register("site", func(ctx context.Context) error { return nil })
//	router.HandleFunc("/readyz", checker.Readiness)
//
// # OpenTelemetry
//
// Tracing is enabled when an OTLP endpoint is configured:
//
//	tp, err := observability.InitTracing(ctx, observability.TracingConfig{
//		Endpoint:    "otel-collector:4317",
//		ServiceName: "sabledocs",
//	}, logger)
//	defer observability.ShutdownTracing(ctx, tp, logger)
package observability
