package bootstrap

import (
	"time"

	"github.com/kbukum/dock/logger"
	"github.com/kbukum/dock/observability"
	"github.com/kbukum/dock/version"
)

// Option configures the App during creation.
// Options are non-generic so they can be used with any config type.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	metrics         *observability.Metrics
	version         string
	gracefulTimeout *time.Duration
	quiet           bool
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{version: version.Short()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is initialized from the config's Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithMetrics records controller metrics into m instead of instruments
// created from the global meter provider.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *appOptions) {
		o.metrics = m
	}
}

// WithVersion sets the version shown in the summary and telemetry resource.
// It defaults to the build version of the binary.
func WithVersion(v string) Option {
	return func(o *appOptions) {
		o.version = v
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithQuietSummary suppresses the startup summary.
func WithQuietSummary() Option {
	return func(o *appOptions) {
		o.quiet = true
	}
}
