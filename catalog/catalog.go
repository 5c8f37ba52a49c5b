package catalog

import (
	"fmt"
	"reflect"

	"github.com/kbukum/dock/host"
	"github.com/kbukum/dock/validation"
)

// Catalog is an ordered set of modules. It implements host.TypeUniverse.
type Catalog struct {
	modules []*Module
	byName  map[string]*Module
	members map[reflect.Type][]host.MemberDecl
	issues  []validation.FieldError
}

// Module is a named group of type declarations.
type Module struct {
	name    string
	catalog *Catalog
	decls   []host.TypeDecl
	pos     map[reflect.Type]int
	statics map[reflect.Type][]host.MemberDecl
}

var _ host.TypeUniverse = (*Catalog)(nil)

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		byName:  make(map[string]*Module),
		members: make(map[reflect.Type][]host.MemberDecl),
	}
}

// Module returns the named module, creating it on first use. Modules are
// enumerated in creation order.
func (c *Catalog) Module(name string) *Module {
	if m, ok := c.byName[name]; ok {
		return m
	}
	m := &Module{
		name:    name,
		catalog: c,
		pos:     make(map[reflect.Type]int),
		statics: make(map[reflect.Type][]host.MemberDecl),
	}
	c.modules = append(c.modules, m)
	c.byName[name] = m
	return m
}

// Name returns the module name.
func (m *Module) Name() string { return m.name }

// Role declares t as a role.
func (m *Module) Role(t reflect.Type) *Module {
	if t == nil {
		m.catalog.issue(m.name, "role type is nil")
		return m
	}
	m.declare(t).Role = true
	return m
}

// Bindable declares t as owning members to be bound. Pointer types are
// recorded as their struct element type.
func (m *Module) Bindable(t reflect.Type) *Module {
	st, ok := structType(t)
	if !ok {
		m.catalog.issue(m.name, fmt.Sprintf("bindable type %s is not a struct", typeName(t)))
		return m
	}
	m.declare(st).Bindable = true
	return m
}

// Static declares the package-level variable behind ptr as a member of
// owner. The variable is written whenever an object of owner is bound.
// The owner is declared bindable.
func (m *Module) Static(owner reflect.Type, name string, ptr any) *Module {
	st, ok := structType(owner)
	if !ok {
		m.catalog.issue(m.name, fmt.Sprintf("static owner %s is not a struct", typeName(owner)))
		return m
	}
	pv := reflect.ValueOf(ptr)
	if !pv.IsValid() || pv.Kind() != reflect.Pointer || pv.IsNil() {
		m.catalog.issue(m.name, fmt.Sprintf("static %s.%s must be a non-nil pointer to a variable", st, name))
		return m
	}
	if name == "" {
		m.catalog.issue(m.name, fmt.Sprintf("static member of %s has no name", st))
		return m
	}
	target := pv.Elem()
	m.Bindable(st)
	m.statics[st] = append(m.statics[st], host.MemberDecl{
		Declaring: st,
		Name:      name,
		Type:      target.Type(),
		Static:    true,
		Target:    target,
	})
	delete(m.catalog.members, st)
	return m
}

// Role declares T as a role of m.
func Role[T any](m *Module) *Module {
	return m.Role(reflect.TypeFor[T]())
}

// Bindable declares T as a bindable type of m.
func Bindable[T any](m *Module) *Module {
	return m.Bindable(reflect.TypeFor[T]())
}

func (m *Module) declare(t reflect.Type) *host.TypeDecl {
	if i, ok := m.pos[t]; ok {
		return &m.decls[i]
	}
	m.pos[t] = len(m.decls)
	m.decls = append(m.decls, host.TypeDecl{Type: t})
	return &m.decls[len(m.decls)-1]
}

// Modules returns module names in creation order.
func (c *Catalog) Modules() []string {
	names := make([]string, len(c.modules))
	for i, m := range c.modules {
		names[i] = m.name
	}
	return names
}

// TypesIn returns the declarations of a module in declaration order.
func (c *Catalog) TypesIn(module string) []host.TypeDecl {
	m, ok := c.byName[module]
	if !ok {
		return nil
	}
	out := make([]host.TypeDecl, len(m.decls))
	copy(out, m.decls)
	return out
}

// MembersOf returns the tagged fields declared directly on t, in field
// order, followed by the static members declared for t.
func (c *Catalog) MembersOf(t reflect.Type) []host.MemberDecl {
	st, ok := structType(t)
	if !ok {
		return nil
	}
	if cached, ok := c.members[st]; ok {
		return cached
	}

	var members []host.MemberDecl
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		tag, ok := f.Tag.Lookup(host.TagName)
		if !ok || tag == "-" {
			continue
		}
		members = append(members, host.MemberDecl{
			Declaring: st,
			Name:      f.Name,
			Index:     []int{i},
			Type:      f.Type,
		})
	}
	for _, m := range c.modules {
		members = append(members, m.statics[st]...)
	}

	c.members[st] = members
	return members
}

// Validate reports malformed declarations and module names.
func (c *Catalog) Validate() error {
	v := validation.New()
	for _, fe := range c.issues {
		v.AddError(fe.Field, fe.Message)
	}
	for _, m := range c.modules {
		v.Required("module", m.name).Pattern("module", m.name, validation.ModulePattern)
	}
	return v.Error()
}

func (c *Catalog) issue(module, msg string) {
	c.issues = append(c.issues, validation.FieldError{Field: "module " + module, Message: msg})
}

func structType(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t, t.Kind() == reflect.Struct
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
