package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/platinummonkey/sabledocs/pkg/config"
	"github.com/platinummonkey/sabledocs/pkg/descriptor"
	"github.com/platinummonkey/sabledocs/pkg/docs"
	"github.com/platinummonkey/sabledocs/pkg/model"
	"github.com/platinummonkey/sabledocs/pkg/observability"
	"github.com/platinummonkey/sabledocs/pkg/storage"
)

// environment is the state shared by commands that read the configuration
type environment struct {
	cfg      *config.Config
	log      *logrus.Logger
	registry *prometheus.Registry
	metrics  *observability.Metrics
	tracer   *sdktrace.TracerProvider
}

// newEnvironment loads the configuration and sets up logging, metrics and tracing
func newEnvironment(ctx context.Context, configPath string) (*environment, error) {
	bootstrap := logrus.New()
	cfg, err := config.Load(configPath, bootstrap)
	if err != nil {
		return nil, err
	}

	log := cfg.Logger()
	registry := prometheus.NewRegistry()

	tp, err := observability.InitTracing(ctx, cfg.Tracing(Version), log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	return &environment{
		cfg:      cfg,
		log:      log,
		registry: registry,
		metrics:  observability.NewMetrics(registry),
		tracer:   tp,
	}, nil
}

// close flushes pending spans
func (e *environment) close(ctx context.Context) {
	if err := observability.ShutdownTracing(ctx, e.tracer, e.log); err != nil {
		e.log.WithError(err).Warn("Failed to shut down tracing")
	}
}

// parse reads the configured descriptor set
func (e *environment) parse(ctx context.Context) (*model.Result, error) {
	parser, err := descriptor.New(e.cfg,
		descriptor.WithLogger(e.log),
		descriptor.WithMetrics(e.metrics),
	)
	if err != nil {
		return nil, err
	}
	return parser.ParseFile(ctx, e.cfg.InputDescriptorFile)
}

// generate parses the descriptor set and renders the site to sink
func (e *environment) generate(ctx context.Context, sink storage.Storage, markdownExport bool) (*model.Result, error) {
	result, err := e.parse(ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := docs.NewRenderer(e.cfg,
		docs.WithLogger(e.log),
		docs.WithMetrics(e.metrics),
		docs.WithMarkdownExport(markdownExport),
	)
	if err != nil {
		return nil, err
	}

	if err := renderer.Render(ctx, result, sink); err != nil {
		return nil, err
	}
	return result, nil
}
