package lifecycle

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/dock/bind"
	"github.com/kbukum/dock/component"
	"github.com/kbukum/dock/config"
	"github.com/kbukum/dock/errors"
	"github.com/kbukum/dock/host"
	"github.com/kbukum/dock/index"
	"github.com/kbukum/dock/logger"
	"github.com/kbukum/dock/observability"
	"github.com/kbukum/dock/registry"
	"github.com/kbukum/dock/scan"
)

// Controller owns the member index and role registry of one host.
type Controller struct {
	id       string
	host     host.Host
	universe host.TypeUniverse
	wiring   config.WiringConfig
	log      *logger.Logger
	metrics  *observability.Metrics
	tracer   trace.Tracer

	state         State
	modules       []string
	modulesLoaded bool
	index         *index.Index
	registry      *registry.Registry
	binder        *bind.Binder
	initialized   bool
	reloads       int
	lastReload    time.Time

	onReady  []Hook
	onChange []Hook
	onStop   []Hook
}

// New creates a controller for h over universe. It fails with
// MULTIPLE_CONTROLLERS while another controller is active in the process.
func New(h host.Host, universe host.TypeUniverse, opts ...Option) (*Controller, error) {
	if h == nil {
		return nil, errors.InvalidConfig("lifecycle: host is required")
	}
	if universe == nil {
		return nil, errors.InvalidConfig("lifecycle: type universe is required")
	}
	o := resolveOptions(opts)
	if err := o.wiring.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if err := claim(id); err != nil {
		return nil, err
	}

	c := &Controller{
		id:       id,
		host:     h,
		universe: universe,
		wiring:   o.wiring,
		log:      o.logger.WithFields(logger.Fields(logger.FieldController, id)),
		metrics:  o.metrics,
		tracer:   o.tracer,
		onReady:  o.onReady,
		onChange: o.onChange,
		onStop:   o.onStop,
	}
	c.registry = c.newRegistry()
	c.log.Debug("controller created", logger.Fields(
		"mode", c.wiring.Mode,
		"reload", c.wiring.Reload,
		"dedup", c.wiring.Dedup,
	))
	return c, nil
}

// ID returns the controller's unique ID.
func (c *Controller) ID() string { return c.id }

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Modules returns the modules loaded by the last ReloadModules.
func (c *Controller) Modules() []string { return c.modules }

// Index returns the current member index, nil before types are loaded.
func (c *Controller) Index() *index.Index { return c.index }

// Registry returns the current role registry. A candidate reload replaces it.
func (c *Controller) Registry() *registry.Registry { return c.registry }

// Reloads returns the number of completed candidate reloads.
func (c *Controller) Reloads() int { return c.reloads }

// Wiring returns the effective wiring policies.
func (c *Controller) Wiring() config.WiringConfig { return c.wiring }

func (c *Controller) check(op string) error {
	if c.state == StateDisposed {
		return errors.InvalidState(op, c.state.String())
	}
	return nil
}

func (c *Controller) newRegistry() *registry.Registry {
	return registry.New(
		registry.WithDedup(c.wiring.Dedup),
		registry.WithLiveness(c.wiring.Liveness),
	)
}

func (c *Controller) rebuildBinder() {
	c.binder = bind.New(c.index, c.registry,
		bind.WithStrict(c.wiring.Strict()),
		bind.WithObserver(c.observe),
	)
}

// ReloadModules re-enumerates the universe's modules minus the deny-list.
func (c *Controller) ReloadModules() error {
	if err := c.check("reload modules"); err != nil {
		return err
	}
	start := time.Now()
	_, span := c.tracer.Start(context.Background(), observability.SpanReloadModules)

	c.modules = index.Modules(c.universe, c.wiring.DenyModules)
	c.modulesLoaded = true

	span.SetAttributes(attribute.Int("dock.modules", len(c.modules)))
	observability.EndSpan(span, nil)
	c.recordReload(observability.PhaseModules, nil, time.Since(start))
	c.log.Info("modules loaded", logger.Fields(
		logger.FieldPhase, observability.PhaseModules,
		logger.FieldCount, len(c.modules),
	))
	return nil
}

// ReloadTypes rebuilds the known roles and the member index, loading
// modules first if they were never loaded. The state becomes TypesLoaded
// until the next candidate reload.
func (c *Controller) ReloadTypes() error {
	if err := c.check("reload types"); err != nil {
		return err
	}
	if !c.modulesLoaded {
		if err := c.ReloadModules(); err != nil {
			return err
		}
	}
	start := time.Now()
	_, span := c.tracer.Start(context.Background(), observability.SpanReloadTypes)

	c.index = index.BuildModules(c.universe, c.modules)
	for _, role := range c.index.Roles() {
		c.registry.RegisterRole(role)
	}
	c.rebuildBinder()
	c.state = StateTypesLoaded

	span.SetAttributes(
		attribute.Int(observability.AttrRoles, len(c.index.Roles())),
		attribute.Int(observability.AttrTypes, len(c.index.Types())),
		attribute.Int(observability.AttrRequests, c.index.Len()),
	)
	observability.EndSpan(span, nil)
	c.recordReload(observability.PhaseTypes, nil, time.Since(start))
	c.log.Info("types loaded", logger.Fields(
		logger.FieldPhase, observability.PhaseTypes,
		"roles", len(c.index.Roles()),
		"types", len(c.index.Types()),
		"requests", c.index.Len(),
	))
	return nil
}

// ReloadCandidates rescans the host's live objects into a registry built
// from scratch, dropping every earlier registration, then rebinds every
// live object. With atomic reloads the new registry replaces the old one
// only once the scan succeeded. Bind failures do not undo the reload; they
// are returned joined.
func (c *Controller) ReloadCandidates() error {
	if err := c.check("reload candidates"); err != nil {
		return err
	}
	if c.index == nil {
		if err := c.ReloadTypes(); err != nil {
			return err
		}
	}
	start := time.Now()
	_, span := c.tracer.Start(context.Background(), observability.SpanReloadCandidates)

	pool, err := c.host.LiveObjects()
	if err != nil {
		herr := errors.HostFailure("live_objects", err)
		observability.EndSpan(span, herr)
		c.recordReload(observability.PhaseCandidates, herr, time.Since(start))
		return herr
	}

	res := scan.Scan(c.index.Roles(), pool)
	if c.wiring.Atomic() {
		staged := c.newRegistry()
		if err := res.Apply(staged); err != nil {
			observability.EndSpan(span, err)
			c.recordReload(observability.PhaseCandidates, err, time.Since(start))
			return err
		}
		c.registry = staged
	} else {
		c.registry.Reset()
		if err := res.Apply(c.registry); err != nil {
			observability.EndSpan(span, err)
			c.recordReload(observability.PhaseCandidates, err, time.Since(start))
			return err
		}
	}
	c.rebuildBinder()
	c.state = StateReady
	c.reloads++
	c.lastReload = time.Now()

	var errs []error
	for _, obj := range pool {
		if obj == nil {
			continue
		}
		if err := c.binder.BindObject(obj); err != nil {
			errs = append(errs, err)
		}
	}
	bindErr := stderrors.Join(errs...)

	span.SetAttributes(
		attribute.Int(observability.AttrObjects, res.Objects()),
		attribute.Int(observability.AttrCandidates, res.Count()),
	)
	observability.EndSpan(span, bindErr)
	c.recordReload(observability.PhaseCandidates, bindErr, time.Since(start))
	if c.metrics != nil {
		c.metrics.RecordCandidates(context.Background(), c.registry.Len(), c.registry.Total())
	}
	c.log.Info("candidates loaded", logger.Fields(
		logger.FieldPhase, observability.PhaseCandidates,
		"objects", res.Objects(),
		"candidates", res.Count(),
		"bind_errors", len(errs),
	))

	if err := runHooks(c, c.onReady); err != nil {
		return stderrors.Join(bindErr, err)
	}
	return bindErr
}

// Initialize loads types if needed, broadcasts EventInitializing, reloads
// candidates and broadcasts EventInitialized. It succeeds once; a host
// failure leaves the controller uninitialized so the call can be retried.
func (c *Controller) Initialize() error {
	if err := c.check("initialize"); err != nil {
		return err
	}
	if c.initialized {
		return errors.InvalidState("initialize", "already initialized")
	}
	_, span := c.tracer.Start(context.Background(), observability.SpanInitialize)

	if c.index == nil {
		if err := c.ReloadTypes(); err != nil {
			observability.EndSpan(span, err)
			return err
		}
	}
	c.host.Notify(host.EventInitializing)
	err := c.ReloadCandidates()
	if errors.HasCode(err, errors.ErrCodeHostFailure) {
		observability.EndSpan(span, err)
		return err
	}
	c.initialized = true
	c.host.Notify(host.EventInitialized)

	observability.EndSpan(span, err)
	c.log.Info("controller initialized", logger.Fields(logger.FieldState, c.state.String()))
	return err
}

// Shutdown runs shutdown hooks, drops the registry and index, and releases
// the process guard. Every later operation fails with INVALID_STATE.
func (c *Controller) Shutdown() error {
	if err := c.check("shutdown"); err != nil {
		return err
	}
	hookErr := runHooks(c, c.onStop)

	c.registry.Reset()
	c.index = nil
	c.binder = nil
	c.state = StateDisposed
	release(c.id)

	c.log.Info("controller disposed", logger.Fields(logger.FieldState, c.state.String()))
	return hookErr
}

// Bind binds obj and everything it owns. Types must be loaded.
func (c *Controller) Bind(obj any) (any, error) {
	if err := c.check("bind"); err != nil {
		return obj, err
	}
	if c.binder == nil {
		return obj, errors.InvalidState("bind", c.state.String())
	}
	_, span := c.tracer.Start(context.Background(), observability.SpanBind)
	out, err := c.binder.Bind(obj)
	observability.EndSpan(span, err)
	return out, err
}

// RegisterCandidate adds obj under role through the single-add path and
// runs the change hooks. The registration lasts until the next candidate
// reload.
func (c *Controller) RegisterCandidate(role reflect.Type, obj any) error {
	if err := c.check("register candidate"); err != nil {
		return err
	}
	if err := c.registry.AddCandidate(role, obj); err != nil {
		return err
	}
	return runHooks(c, c.onChange)
}

// RegisterObject adds obj under every declared role it can serve, runs the
// change hooks and returns how many roles it joined.
func (c *Controller) RegisterObject(obj any) (int, error) {
	if err := c.check("register object"); err != nil {
		return 0, err
	}
	n, err := c.registerObject(obj)
	if n > 0 {
		if hookErr := runHooks(c, c.onChange); hookErr != nil {
			err = stderrors.Join(err, hookErr)
		}
	}
	return n, err
}

func (c *Controller) registerObject(obj any) (int, error) {
	if obj == nil {
		return 0, errors.InvalidTarget("object is nil")
	}
	if c.index == nil {
		return 0, errors.InvalidState("register object", c.state.String())
	}
	t := reflect.TypeOf(obj)
	n := 0
	var errs []error
	for _, role := range c.index.Roles() {
		if !t.AssignableTo(role) {
			continue
		}
		if err := c.registry.AddCandidate(role, obj); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, stderrors.Join(errs...)
}

// Get returns the first candidate of role.
func (c *Controller) Get(role reflect.Type) (any, bool, error) {
	if err := c.check("get"); err != nil {
		return nil, false, err
	}
	return c.registry.Get(role)
}

// GetAll returns every candidate of role in insertion order.
func (c *Controller) GetAll(role reflect.Type) ([]any, error) {
	if err := c.check("get all"); err != nil {
		return nil, err
	}
	return c.registry.GetAll(role)
}

// GetFiltered returns the first candidate of role matching pred.
func (c *Controller) GetFiltered(role reflect.Type, pred registry.Predicate) (any, bool, error) {
	if err := c.check("get"); err != nil {
		return nil, false, err
	}
	return c.registry.GetFiltered(role, pred)
}

// GetAllFiltered returns every candidate of role matching pred.
func (c *Controller) GetAllFiltered(role reflect.Type, pred registry.Predicate) ([]any, error) {
	if err := c.check("get all"); err != nil {
		return nil, err
	}
	return c.registry.GetAllFiltered(role, pred)
}

// Instantiate creates an object through the host, registers it and its
// owned objects under the roles they serve (when enabled), binds it
// recursively and runs the change hooks. The object is returned even when
// binding fails. A host returning no object is a HOST_FAILURE.
func (c *Controller) Instantiate(template any, placement ...host.Placement) (any, error) {
	if err := c.check("instantiate"); err != nil {
		return nil, err
	}
	if c.binder == nil {
		return nil, errors.InvalidState("instantiate", c.state.String())
	}
	_, span := c.tracer.Start(context.Background(), observability.SpanInstantiate)

	obj, err := c.host.Instantiate(template, placement...)
	if err != nil {
		herr := errors.HostFailure("instantiate", err)
		observability.EndSpan(span, herr)
		return nil, herr
	}
	if obj == nil {
		herr := errors.HostFailure("instantiate", fmt.Errorf("host returned no object for %v", template))
		observability.EndSpan(span, herr)
		return nil, herr
	}

	var errs []error
	if c.wiring.RegistersInstantiated() {
		component.Walk(obj, func(o any) bool {
			if _, err := c.registerObject(o); err != nil {
				errs = append(errs, err)
			}
			return true
		})
	}
	if _, err := c.binder.Bind(obj); err != nil {
		errs = append(errs, err)
	}
	if err := runHooks(c, c.onChange); err != nil {
		errs = append(errs, err)
	}
	err = stderrors.Join(errs...)
	observability.EndSpan(span, err)
	c.log.Debug("object instantiated", logger.Fields(logger.FieldType, reflect.TypeOf(obj).String()))
	return obj, err
}

// Issues lists every request that can not be bound against the declared
// roles and the roles currently known to the registry.
func (c *Controller) Issues() []index.Issue {
	if c.index == nil {
		return nil
	}
	return c.index.Issues(func(role reflect.Type) bool {
		return c.index.HasRole(role) || c.registry.Known(role)
	})
}

// Validate returns the issues as a joined error, nil when every request can
// be bound.
func (c *Controller) Validate() error {
	if err := c.check("validate"); err != nil {
		return err
	}
	if c.index == nil {
		return errors.InvalidState("validate", c.state.String())
	}
	issues := c.Issues()
	errs := make([]error, len(issues))
	for i, is := range issues {
		errs[i] = is.Err
	}
	return stderrors.Join(errs...)
}

// Health reports the controller state as a component health.
func (c *Controller) Health() observability.Health {
	h := observability.Health{
		Name:   "dock",
		Status: observability.HealthStatusUp,
		Details: map[string]string{
			"state": c.state.String(),
			"id":    c.id,
		},
	}
	switch c.state {
	case StateDisposed:
		h.Status = observability.HealthStatusDown
		h.Message = "controller disposed"
		return h
	case StateUninitialized, StateTypesLoaded:
		h.Status = observability.HealthStatusDegraded
		h.Message = "candidates not loaded"
		return h
	}
	for _, role := range c.registry.Roles() {
		if err := c.registry.CheckStale(role); err != nil {
			h.Status = observability.HealthStatusDegraded
			h.Message = err.Error()
			break
		}
	}
	return h
}

func (c *Controller) observe(obj any, requests int, err error) {
	if c.metrics == nil {
		return
	}
	ctx := context.Background()
	status := "ok"
	if err != nil {
		status = "error"
		c.metrics.RecordError(ctx, string(errorCode(err)), "bind")
	}
	c.metrics.RecordBind(ctx, reflect.TypeOf(obj).String(), status, requests)
}

func (c *Controller) recordReload(phase string, err error, d time.Duration) {
	if c.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
		c.metrics.RecordError(context.Background(), string(errorCode(err)), "reload_"+phase)
	}
	c.metrics.RecordReload(context.Background(), phase, status, d)
}

// errorCode returns the code of the first AppError in err.
func errorCode(err error) errors.ErrorCode {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Code
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if code := errorCode(e); code != errors.ErrCodeInternal {
				return code
			}
		}
	}
	return errors.ErrCodeInternal
}
