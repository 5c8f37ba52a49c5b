package di

import (
	"fmt"
	"reflect"

	"github.com/kbukum/dock/host"
)

// Source looks up role candidates.
type Source interface {
	Get(role reflect.Type) (any, bool, error)
	GetAll(role reflect.Type) ([]any, error)
}

// Registrar accepts single candidate registrations.
type Registrar interface {
	RegisterCandidate(role reflect.Type, obj any) error
}

// Instantiator creates and wires host objects.
type Instantiator interface {
	Instantiate(template any, placement ...host.Placement) (any, error)
}

// Role returns the role type for T.
func Role[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Get returns the first candidate of role T. ok is false when the role is
// known but has no candidates.
//
// Example:
//
//	log, ok, err := di.Get[Logger](ctl)
//	if err != nil {
//	    return fmt.Errorf("logger role: %w", err)
//	}
func Get[T any](s Source) (T, bool, error) {
	var zero T
	c, ok, err := s.Get(Role[T]())
	if err != nil || !ok {
		return zero, false, err
	}
	result, isT := c.(T)
	if !isT {
		return zero, false, fmt.Errorf("di: candidate is %T, expected %s", c, Role[T]())
	}
	return result, true, nil
}

// MustGet returns the first candidate of role T, panics if there is none.
// Use this during setup when a missing role is a programming error.
func MustGet[T any](s Source) T {
	result, ok, err := Get[T](s)
	if err != nil {
		panic(fmt.Sprintf("di: failed to get %s: %v", Role[T](), err))
	}
	if !ok {
		panic(fmt.Sprintf("di: role %s has no candidates", Role[T]()))
	}
	return result
}

// TryGet returns the first candidate of role T, or false when the role is
// unknown or empty. Use this when a dependency is optional.
//
// Example:
//
//	if metrics, ok := di.TryGet[MetricsSink](ctl); ok {
//	    metrics.Flush()
//	}
func TryGet[T any](s Source) (T, bool) {
	result, ok, err := Get[T](s)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, ok
}

// GetAll returns every candidate of role T in registry order.
func GetAll[T any](s Source) ([]T, error) {
	all, err := s.GetAll(Role[T]())
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(all))
	for _, c := range all {
		result, ok := c.(T)
		if !ok {
			return nil, fmt.Errorf("di: candidate is %T, expected %s", c, Role[T]())
		}
		out = append(out, result)
	}
	return out, nil
}

// Filter returns the candidates of role T that match pred.
func Filter[T any](s Source, pred func(T) bool) ([]T, error) {
	all, err := GetAll[T](s)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, c := range all {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Register adds obj as a candidate of role T.
func Register[T any](r Registrar, obj T) error {
	return r.RegisterCandidate(Role[T](), obj)
}

// Instantiate creates an object from template and asserts it to T. The
// object is returned alongside any wiring error so the caller can decide
// whether a partly bound object is usable.
func Instantiate[T any](i Instantiator, template any, placement ...host.Placement) (T, error) {
	var zero T
	obj, err := i.Instantiate(template, placement...)
	if obj == nil {
		return zero, err
	}
	result, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("di: instantiated %T, expected %s", obj, Role[T]())
	}
	return result, err
}
