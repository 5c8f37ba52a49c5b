package component

import (
	"reflect"
)

// Composite is implemented by host objects that own other objects, such as
// a scene node owning its behaviours and child nodes. Binding a composite
// binds every object it transitively owns.
type Composite interface {
	// Children returns the directly owned objects, in host order.
	Children() []any
}

// Liveness is implemented by host objects that can be destroyed while a
// registry still references them.
type Liveness interface {
	Alive() bool
}

// Describable is optionally implemented by host objects to provide a
// display name for snapshots and the startup summary.
type Describable interface {
	Describe() string
}

// IsAlive reports whether obj is usable: nil objects are dead, objects
// without a Liveness implementation are always alive.
func IsAlive(obj any) bool {
	if obj == nil {
		return false
	}
	if l, ok := obj.(Liveness); ok {
		return l.Alive()
	}
	return true
}

// Describe returns the display name of obj, falling back to its type.
func Describe(obj any) string {
	if obj == nil {
		return "<nil>"
	}
	if d, ok := obj.(Describable); ok {
		if name := d.Describe(); name != "" {
			return name
		}
	}
	return reflect.TypeOf(obj).String()
}

// Walk visits obj and every object it transitively owns, depth-first in
// host order. Each distinct object is visited once. Returning false from
// visit skips the children of that object.
func Walk(obj any, visit func(obj any) bool) {
	seen := make(map[any]struct{})
	walk(obj, visit, seen)
}

func walk(obj any, visit func(any) bool, seen map[any]struct{}) {
	if obj == nil {
		return
	}
	if key, ok := Identity(obj); ok {
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
	}
	if !visit(obj) {
		return
	}
	c, ok := obj.(Composite)
	if !ok {
		return
	}
	for _, child := range c.Children() {
		walk(child, visit, seen)
	}
}

// Identity returns a hashable identity key for obj. Pointer-shaped values
// (pointer, map, chan, func, slice) are keyed by type and address; other
// comparable values by value. The second result is false when obj has no
// usable identity, in which case it never equals another object.
//
// Pointers to distinct zero-size values (&struct{}{}) may share an address,
// as Go allows. They then have the same identity: registries keep one of
// them and Walk visits only the first. Give such candidates a field if
// they must be told apart.
func Identity(obj any) (any, bool) {
	if obj == nil {
		return nil, false
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		return pointerKey{typ: v.Type(), addr: v.Pointer()}, true
	}
	if v.Comparable() {
		return obj, true
	}
	return nil, false
}

// Same reports whether a and b are the same object.
func Same(a, b any) bool {
	ka, ok := Identity(a)
	if !ok {
		return false
	}
	kb, ok := Identity(b)
	return ok && ka == kb
}

type pointerKey struct {
	typ  reflect.Type
	addr uintptr
}
