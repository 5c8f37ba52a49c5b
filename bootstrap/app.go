package bootstrap

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/dock/config"
	"github.com/kbukum/dock/host"
	"github.com/kbukum/dock/inspect"
	"github.com/kbukum/dock/lifecycle"
	"github.com/kbukum/dock/logger"
	"github.com/kbukum/dock/observability"
)

// App wires a host and a type universe into a running dock controller.
// The type parameter C is the config type, which must satisfy Config.
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Controller *lifecycle.Controller
	// Store holds the snapshot republished after every candidate reload.
	Store *inspect.Store
	// Inspector is nil unless inspector.enabled is set.
	Inspector *inspect.Server
	Logger    *logger.Logger
	Metrics   *observability.Metrics
	Summary   *Summary

	gracefulTimeout time.Duration
	quiet           bool
	onConfigure     []func(ctx context.Context, app *App[C]) error
	providers       []func(ctx context.Context) error

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp creates an application from a typed config. It applies defaults,
// validates the config, initializes logging and telemetry, and creates the
// controller for h and universe.
func NewApp[C Config](cfg C, h host.Host, universe host.TypeUniverse, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetDockConfig()
	o := resolveOptions(opts)

	app := &App[C]{
		Name:            base.Name,
		Version:         o.version,
		Cfg:             cfg,
		Store:           inspect.NewStore(),
		Metrics:         o.metrics,
		Summary:         NewSummary(base.Name, o.version),
		gracefulTimeout: 15 * time.Second,
		quiet:           o.quiet,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	if base.Observability.Enabled {
		if err := app.initTelemetry(context.Background(), base); err != nil {
			return nil, err
		}
	}

	ctl, err := lifecycle.New(h, universe,
		lifecycle.WithWiring(base.Wiring),
		lifecycle.WithLogger(app.Logger.WithComponent("lifecycle")),
		lifecycle.WithMetrics(app.Metrics),
		lifecycle.WithOnReady(app.Store.Publish),
		lifecycle.WithOnChange(app.Store.Publish),
	)
	if err != nil {
		app.shutdownTelemetry(context.Background())
		return nil, fmt.Errorf("controller: %w", err)
	}
	app.Controller = ctl
	app.Summary.TrackComponent("controller", "created", true)

	if base.Inspector.Enabled {
		app.Inspector = inspect.New(base.Inspector, app.Store, app.Logger.WithComponent("inspect"))
	}
	return app, nil
}

// initTelemetry installs OTLP trace and metric providers and the dock
// metric instruments.
func (a *App[C]) initTelemetry(ctx context.Context, base *config.Config) error {
	obs := base.Observability

	tc := observability.DefaultTracerConfig(base.Name)
	tc.ServiceVersion = a.Version
	tc.Environment = base.Environment
	tc.Endpoint = obs.Endpoint
	tc.Insecure = obs.Insecure
	tc.SampleRate = obs.SampleRate
	tp, err := observability.InitTracer(ctx, &tc)
	if err != nil {
		return fmt.Errorf("tracer: %w", err)
	}
	a.providers = append(a.providers, tp.Shutdown)

	mc := observability.DefaultMeterConfig(base.Name)
	mc.ServiceVersion = a.Version
	mc.Environment = base.Environment
	mc.Endpoint = obs.Endpoint
	mc.Insecure = obs.Insecure
	mp, err := observability.InitMeter(ctx, &mc)
	if err != nil {
		a.shutdownTelemetry(ctx)
		return fmt.Errorf("meter: %w", err)
	}
	a.providers = append(a.providers, mp.Shutdown)

	if a.Metrics == nil {
		m, err := observability.NewMetrics(observability.Meter("github.com/kbukum/dock"))
		if err != nil {
			a.shutdownTelemetry(ctx)
			return fmt.Errorf("metrics: %w", err)
		}
		a.Metrics = m
	}
	a.Summary.TrackInfrastructure("telemetry", "otlp", "active", obs.Endpoint, true)
	return nil
}

func (a *App[C]) shutdownTelemetry(ctx context.Context) error {
	var errs []error
	for i := len(a.providers) - 1; i >= 0; i-- {
		if err := a.providers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.providers = nil
	return stderrors.Join(errs...)
}

// OnConfigure registers a callback to run after the controller initialized
// and the start hooks ran.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// ReadyCheck reports a degraded controller or members that can not be bound.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	h := a.Controller.Health()
	if h.Status != observability.HealthStatusUp {
		return fmt.Errorf("controller %s: %s", h.Status, h.Message)
	}
	if err := a.Controller.Validate(); err != nil {
		return fmt.Errorf("unbindable members: %w", err)
	}
	return nil
}

// Run executes the full lifecycle for long-running hosts:
// Initialize → OnStart hooks → Configure → ReadyCheck → OnReady hooks →
// Block on signal → OnStop hooks → Shutdown.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		a.stop()
		return err
	}

	a.Logger.Info("application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// RunTask runs a finite task with the full bootstrap lifecycle. The task
// context is canceled on SIGINT/SIGTERM. Use it for CLIs and one-shot
// scene checks.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		a.stop()
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}
	return taskErr
}

// startup performs the initialization sequence shared by Run and RunTask.
func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("starting application", logger.Fields(
		"name", a.Name,
		"version", a.Version,
	))

	if err := a.Controller.Initialize(); err != nil {
		a.Summary.TrackComponent("controller", "failed", false)
		return fmt.Errorf("initialization failed: %w", err)
	}
	a.Summary.TrackComponent("controller", a.Controller.State().String(), true)

	if a.Inspector != nil {
		if err := a.Inspector.Start(ctx); err != nil {
			return err
		}
		a.Summary.TrackInfrastructure("inspector", "http", "active", a.Inspector.Addr(), true)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	if err := a.configure(ctx); err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("ready check reported issues", logger.ErrorFields("ready_check", err))
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	if !a.quiet {
		a.DisplaySummary()
	}
	return nil
}

// configure runs registered configuration callbacks.
func (a *App[C]) configure(ctx context.Context) error {
	if len(a.onConfigure) == 0 {
		return nil
	}
	a.Logger.Info("running configuration callbacks", logger.Fields(logger.FieldCount, len(a.onConfigure)))
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// DisplaySummary prints the startup summary for the controller's current
// snapshot.
func (a *App[C]) DisplaySummary() {
	a.Summary.Display(os.Stdout, a.Controller.Snapshot(), a.Controller.Health())
}

// WaitForSignal blocks until an OS interrupt/term signal or context cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
		return nil
	}
}

// Shutdown performs graceful shutdown. Use when managing your own lifecycle.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop runs stop hooks, stops the inspector, disposes the controller and
// flushes telemetry within the graceful timeout.
func (a *App[C]) stop() error {
	a.Logger.Info("shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var errs []error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("onStop hook error", logger.ErrorFields("on_stop", err))
		errs = append(errs, err)
	}
	if a.Inspector != nil {
		if err := a.Inspector.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Controller.State() != lifecycle.StateDisposed {
		if err := a.Controller.Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.shutdownTelemetry(ctx); err != nil {
		errs = append(errs, err)
	}

	a.Logger.Info("application shutdown complete")
	return stderrors.Join(errs...)
}
