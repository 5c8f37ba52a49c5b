package host

import (
	"reflect"
)

// TagName is the struct tag that marks a field as a binding member.
const TagName = "dock"

// Broadcast events sent around Initialize.
const (
	EventInitializing = "dock.initializing"
	EventInitialized  = "dock.initialized"
)

// LiveObjectSource enumerates every object currently managed by the host.
type LiveObjectSource interface {
	LiveObjects() ([]any, error)
}

// Placement positions an instantiated object in the host hierarchy.
type Placement struct {
	// Parent is the object the new instance is attached to; nil means root.
	Parent any
	// Name overrides the template name when non-empty.
	Name string
}

// Instantiator creates a new host object from a template.
type Instantiator interface {
	Instantiate(template any, placement ...Placement) (any, error)
}

// Notifier broadcasts an event to all host objects.
type Notifier interface {
	Notify(event string)
}

// Host is the full collaborator set a lifecycle controller drives.
type Host interface {
	LiveObjectSource
	Instantiator
	Notifier
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(event string)

// Notify calls f(event).
func (f NotifierFunc) Notify(event string) { f(event) }

// Objects is a fixed pool of live objects.
type Objects []any

// LiveObjects returns the pool itself.
func (o Objects) LiveObjects() ([]any, error) { return o, nil }

// TypeDecl is a type declared by a module.
type TypeDecl struct {
	Type reflect.Type
	// Role marks the type as a role candidates can be registered under.
	Role bool
	// Bindable marks the type as owning members to be bound.
	Bindable bool
}

// MemberDecl is a member of a bindable type that must receive a role.
type MemberDecl struct {
	// Declaring is the struct type the member is declared on.
	Declaring reflect.Type
	Name      string
	// Index is the field path within Declaring; unused for static members.
	Index []int
	Type  reflect.Type
	// Static members are package-level variables written through Target.
	Static bool
	Target reflect.Value
}

// TypeUniverse exposes modules, their declared types and the members of
// bindable types.
type TypeUniverse interface {
	Modules() []string
	TypesIn(module string) []TypeDecl
	MembersOf(t reflect.Type) []MemberDecl
}
