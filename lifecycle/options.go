package lifecycle

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/dock/config"
	"github.com/kbukum/dock/logger"
	"github.com/kbukum/dock/observability"
)

// Option configures a Controller during creation.
type Option func(*options)

type options struct {
	wiring  config.WiringConfig
	logger  *logger.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
	onReady  []Hook
	onChange []Hook
	onStop   []Hook
}

func resolveOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	o.wiring.ApplyDefaults()
	if o.logger == nil {
		o.logger = logger.Get("lifecycle")
	}
	if o.tracer == nil {
		o.tracer = observability.Tracer("github.com/kbukum/dock/lifecycle")
	}
	return o
}

// WithWiring sets the wiring policies. Zero fields take their defaults.
func WithWiring(w config.WiringConfig) Option {
	return func(o *options) { o.wiring = w }
}

// WithLogger sets the controller logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records reload and bind metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracer sets the tracer used for reload spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithOnReady registers hooks run after every successful candidate reload.
func WithOnReady(hooks ...Hook) Option {
	return func(o *options) { o.onReady = append(o.onReady, hooks...) }
}

// WithOnChange registers hooks run after a single registration or an
// Instantiate changed the registry between reloads.
func WithOnChange(hooks ...Hook) Option {
	return func(o *options) { o.onChange = append(o.onChange, hooks...) }
}

// WithOnShutdown registers hooks run at Shutdown, before disposal.
func WithOnShutdown(hooks ...Hook) Option {
	return func(o *options) { o.onStop = append(o.onStop, hooks...) }
}
