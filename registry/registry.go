package registry

import (
	stderrors "errors"
	"reflect"

	"github.com/kbukum/dock/component"
	"github.com/kbukum/dock/errors"
	"github.com/kbukum/dock/logger"
)

// Single-add dedup policies.
const (
	DedupIdentity = "identity"
	DedupAppend   = "append"
)

// Liveness policies.
const (
	LivenessFilter = "filter"
	LivenessIgnore = "ignore"
)

// Predicate selects candidates in filtered lookups.
type Predicate func(candidate any) bool

// Registry maps roles to ordered candidates.
type Registry struct {
	roles   []reflect.Type
	entries map[reflect.Type]*entry
	opts    options
	log     *logger.Logger
}

type entry struct {
	candidates []any
	keys       map[any]struct{}
}

type options struct {
	dedup    string
	liveness string
	log      *logger.Logger
}

// Option configures a Registry.
type Option func(*options)

// WithDedup selects the single-add policy: DedupIdentity (default) skips a
// candidate already present, DedupAppend always appends.
func WithDedup(policy string) Option {
	return func(o *options) { o.dedup = policy }
}

// WithLiveness selects whether destroyed candidates are hidden from lookups.
func WithLiveness(policy string) Option {
	return func(o *options) { o.liveness = policy }
}

// WithLogger sets the registry logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	o := options{dedup: DedupIdentity, liveness: LivenessFilter}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("registry")
	}
	return &Registry{
		entries: make(map[reflect.Type]*entry),
		opts:    o,
		log:     o.log,
	}
}

// RegisterRole makes role known. Registering a known role is a no-op.
func (r *Registry) RegisterRole(role reflect.Type) {
	if role == nil {
		return
	}
	r.ensure(role)
}

func (r *Registry) ensure(role reflect.Type) *entry {
	if e, ok := r.entries[role]; ok {
		return e
	}
	e := &entry{keys: make(map[any]struct{})}
	r.entries[role] = e
	r.roles = append(r.roles, role)
	return e
}

// AddCandidates unions candidates into role, skipping ones already present.
// The role becomes known even if every candidate is rejected. Rejected
// candidates are reported as a joined error; accepted ones are kept.
func (r *Registry) AddCandidates(role reflect.Type, candidates []any) error {
	if role == nil {
		return errors.InvalidTarget("role is nil")
	}
	e := r.ensure(role)
	var errs []error
	added := 0
	for _, c := range candidates {
		if err := check(role, c); err != nil {
			errs = append(errs, err)
			continue
		}
		if r.insert(e, c, true) {
			added++
		}
	}
	r.log.Debug("candidates added", logger.Fields(
		logger.FieldRole, role.String(),
		logger.FieldCount, added,
	))
	return stderrors.Join(errs...)
}

// AddCandidate registers a single candidate under role, creating the role
// if needed. Duplicates follow the dedup policy.
func (r *Registry) AddCandidate(role reflect.Type, candidate any) error {
	if role == nil {
		return errors.InvalidTarget("role is nil")
	}
	if err := check(role, candidate); err != nil {
		return err
	}
	r.insert(r.ensure(role), candidate, r.opts.dedup != DedupAppend)
	return nil
}

func (r *Registry) insert(e *entry, c any, dedup bool) bool {
	key, ok := component.Identity(c)
	if ok {
		if _, dup := e.keys[key]; dup && dedup {
			return false
		}
		e.keys[key] = struct{}{}
	}
	e.candidates = append(e.candidates, c)
	return true
}

func check(role reflect.Type, c any) error {
	if c == nil {
		return errors.InvalidTarget("candidate is nil").WithDetail("role", role.String())
	}
	if !reflect.TypeOf(c).AssignableTo(role) {
		return errors.NotAssignable(c, role)
	}
	return nil
}

// Get returns the first live candidate of role. found is false when the
// role is known but has no candidates.
func (r *Registry) Get(role reflect.Type) (any, bool, error) {
	return r.GetFiltered(role, nil)
}

// GetAll returns every live candidate of role in insertion order.
func (r *Registry) GetAll(role reflect.Type) ([]any, error) {
	return r.GetAllFiltered(role, nil)
}

// GetFiltered returns the first live candidate of role matching pred.
func (r *Registry) GetFiltered(role reflect.Type, pred Predicate) (any, bool, error) {
	e, err := r.lookup(role)
	if err != nil {
		return nil, false, err
	}
	for _, c := range e.candidates {
		if r.visible(c) && (pred == nil || pred(c)) {
			return c, true, nil
		}
	}
	return nil, false, nil
}

// GetAllFiltered returns every live candidate of role matching pred.
// The result is never nil for a known role.
func (r *Registry) GetAllFiltered(role reflect.Type, pred Predicate) ([]any, error) {
	e, err := r.lookup(role)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(e.candidates))
	for _, c := range e.candidates {
		if r.visible(c) && (pred == nil || pred(c)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *Registry) lookup(role reflect.Type) (*entry, error) {
	e, ok := r.entries[role]
	if !ok {
		return nil, errors.UnknownRole(role)
	}
	return e, nil
}

func (r *Registry) visible(c any) bool {
	return r.opts.liveness == LivenessIgnore || component.IsAlive(c)
}

// Known reports whether role was ever registered.
func (r *Registry) Known(role reflect.Type) bool {
	_, ok := r.entries[role]
	return ok
}

// Roles returns the known roles in registration order.
func (r *Registry) Roles() []reflect.Type {
	out := make([]reflect.Type, len(r.roles))
	copy(out, r.roles)
	return out
}

// Len returns the number of known roles.
func (r *Registry) Len() int { return len(r.roles) }

// Count returns the number of stored candidates of role, destroyed ones
// included. Unknown roles count zero.
func (r *Registry) Count(role reflect.Type) int {
	if e, ok := r.entries[role]; ok {
		return len(e.candidates)
	}
	return 0
}

// Total returns the number of stored candidates across all roles.
func (r *Registry) Total() int {
	n := 0
	for _, e := range r.entries {
		n += len(e.candidates)
	}
	return n
}

// Stale returns the number of destroyed candidates still held for role.
func (r *Registry) Stale(role reflect.Type) int {
	e, ok := r.entries[role]
	if !ok {
		return 0
	}
	n := 0
	for _, c := range e.candidates {
		if !component.IsAlive(c) {
			n++
		}
	}
	return n
}

// CheckStale fails with STALE_CANDIDATE when role holds destroyed candidates.
func (r *Registry) CheckStale(role reflect.Type) error {
	if n := r.Stale(role); n > 0 {
		return errors.StaleCandidate(role, n)
	}
	return nil
}

// Clone returns an independent copy sharing candidate references.
func (r *Registry) Clone() *Registry {
	out := &Registry{
		roles:   make([]reflect.Type, len(r.roles)),
		entries: make(map[reflect.Type]*entry, len(r.entries)),
		opts:    r.opts,
		log:     r.log,
	}
	copy(out.roles, r.roles)
	for role, e := range r.entries {
		ne := &entry{
			candidates: make([]any, len(e.candidates)),
			keys:       make(map[any]struct{}, len(e.keys)),
		}
		copy(ne.candidates, e.candidates)
		for k := range e.keys {
			ne.keys[k] = struct{}{}
		}
		out.entries[role] = ne
	}
	return out
}

// Reset drops every role and candidate.
func (r *Registry) Reset() {
	r.roles = nil
	r.entries = make(map[reflect.Type]*entry)
}
