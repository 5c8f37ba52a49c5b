// Package bind writes registry candidates into the members of host objects.
//
// A Binder resolves every binding request that applies to an object's
// runtime type. Collection members receive a fresh slice holding every
// current candidate of their role (empty, never nil); Single members
// receive the first candidate or their zero value. Binding a
// component.Composite binds everything it transitively owns, each object
// independently: failures are collected and nothing is rolled back.
package bind

import (
	stderrors "errors"
	"reflect"
	"unsafe"

	"github.com/kbukum/dock/component"
	"github.com/kbukum/dock/errors"
	"github.com/kbukum/dock/index"
	"github.com/kbukum/dock/logger"
)

// Requests supplies the binding requests for a runtime type.
type Requests interface {
	RequestsFor(t reflect.Type) []index.Request
}

// Resolver supplies candidates for roles.
type Resolver interface {
	Known(role reflect.Type) bool
	Get(role reflect.Type) (any, bool, error)
	GetAll(role reflect.Type) ([]any, error)
}

// Observer is called once per object resolution with the number of
// requests resolved for it and the resulting error, if any.
type Observer func(obj any, requests int, err error)

// Binder resolves binding requests against a registry.
type Binder struct {
	requests Requests
	resolver Resolver
	strict   bool
	observer Observer
	log      *logger.Logger
}

// Option configures a Binder.
type Option func(*Binder)

// WithStrict selects strict (default) or lenient handling of members whose
// role is unknown: strict fails with UNRESOLVABLE_MEMBER_TYPE, lenient logs
// a warning and leaves the member untouched.
func WithStrict(strict bool) Option {
	return func(b *Binder) { b.strict = strict }
}

// WithObserver registers a per-object callback.
func WithObserver(o Observer) Option {
	return func(b *Binder) { b.observer = o }
}

// WithLogger sets the binder logger.
func WithLogger(l *logger.Logger) Option {
	return func(b *Binder) { b.log = l }
}

// New creates a Binder.
func New(requests Requests, resolver Resolver, opts ...Option) *Binder {
	b := &Binder{
		requests: requests,
		resolver: resolver,
		strict:   true,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.Get("binder")
	}
	return b
}

// Bind binds obj and, if it is a composite, every object it transitively
// owns, depth-first. Every object is attempted; errors are joined. obj is
// returned for chaining.
func (b *Binder) Bind(obj any) (any, error) {
	if obj == nil {
		return nil, errors.InvalidTarget("object is nil")
	}
	var errs []error
	component.Walk(obj, func(o any) bool {
		if err := b.BindObject(o); err != nil {
			errs = append(errs, err)
		}
		return true
	})
	return obj, stderrors.Join(errs...)
}

// BindObject binds obj alone, ignoring anything it owns.
func (b *Binder) BindObject(obj any) error {
	if obj == nil {
		return errors.InvalidTarget("object is nil")
	}
	reqs := b.requests.RequestsFor(reflect.TypeOf(obj))
	err := b.bindRequests(obj, reqs)
	if b.observer != nil {
		b.observer(obj, len(reqs), err)
	}
	return err
}

func (b *Binder) bindRequests(obj any, reqs []index.Request) error {
	if len(reqs) == 0 {
		return nil
	}

	var elem reflect.Value
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Kind() == reflect.Struct {
		elem = v.Elem()
	}

	var errs []error
	for _, r := range reqs {
		target, err := b.target(elem, obj, r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !target.IsValid() {
			continue
		}
		value, ok, err := b.resolve(r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}
		target.Set(value)
		b.log.Debug("member bound", logger.Fields(
			logger.FieldType, r.Declaring.String(),
			logger.FieldMember, r.Member,
			logger.FieldRole, r.Role.String(),
			logger.FieldCardinality, r.Cardinality.String(),
		))
	}
	return stderrors.Join(errs...)
}

// target returns the settable value a request writes to. An invalid value
// with a nil error means the member is skipped.
func (b *Binder) target(elem reflect.Value, obj any, r index.Request) (reflect.Value, error) {
	if r.Static {
		return r.Target, nil
	}
	if !elem.IsValid() {
		return reflect.Value{}, errors.InvalidTarget("instance members need a non-nil pointer to a struct").
			WithDetail("type", reflect.TypeOf(obj).String()).
			WithDetail("member", r.Member)
	}
	f, err := elem.FieldByIndexErr(r.Path)
	if err != nil {
		// Embedded through a nil pointer: nothing to write into.
		b.log.Debug("member unreachable", logger.Fields(
			logger.FieldType, elem.Type().String(),
			logger.FieldMember, r.Member,
		))
		return reflect.Value{}, nil
	}
	if !f.CanSet() {
		f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
	}
	return f, nil
}

// resolve computes the value for r. ok is false when the member is skipped.
func (b *Binder) resolve(r index.Request) (reflect.Value, bool, error) {
	if !r.Resolvable() || !b.resolver.Known(r.Role) {
		err := errors.UnresolvableMember(r.Declaring, r.Member, r.MemberType)
		if r.Resolvable() {
			err = err.WithCause(errors.UnknownRole(r.Role))
		}
		if b.strict {
			return reflect.Value{}, false, err
		}
		b.log.Warn("member skipped", logger.Fields(
			logger.FieldType, errors.TypeName(r.Declaring),
			logger.FieldMember, r.Member,
			logger.FieldRole, errors.TypeName(r.Role),
		))
		return reflect.Value{}, false, nil
	}

	switch r.Cardinality {
	case index.Collection:
		all, err := b.resolver.GetAll(r.Role)
		if err != nil {
			return reflect.Value{}, false, err
		}
		s := reflect.MakeSlice(r.MemberType, len(all), len(all))
		for i, c := range all {
			s.Index(i).Set(reflect.ValueOf(c))
		}
		return s, true, nil
	default:
		c, found, err := b.resolver.Get(r.Role)
		if err != nil {
			return reflect.Value{}, false, err
		}
		if !found {
			return reflect.Zero(r.MemberType), true, nil
		}
		return reflect.ValueOf(c), true, nil
	}
}
