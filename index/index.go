package index

import (
	"reflect"
	"strings"

	"github.com/kbukum/dock/errors"
	"github.com/kbukum/dock/host"
	"github.com/kbukum/dock/logger"
)

// DefaultDeny lists modules skipped unless the caller passes its own list.
var DefaultDeny = []string{"runtime", "reflect", "internal"}

// Index is an immutable member index.
type Index struct {
	modules []string
	roles   []reflect.Type
	known   map[reflect.Type]struct{}
	types   []reflect.Type
	byType  map[reflect.Type][]Request
	memo    map[reflect.Type][]Request
}

// Issue is a request that can not be bound.
type Issue struct {
	Request Request
	Err     *errors.AppError
}

// Denied reports whether module is excluded by deny. An entry matches the
// module itself and every module below it ("game" denies "game/ai").
func Denied(module string, deny []string) bool {
	for _, d := range deny {
		if module == d || strings.HasPrefix(module, d+"/") {
			return true
		}
	}
	return false
}

// Modules returns the modules of universe not excluded by deny, in
// universe order.
func Modules(universe host.TypeUniverse, deny []string) []string {
	var out []string
	for _, m := range universe.Modules() {
		if !Denied(m, deny) {
			out = append(out, m)
		}
	}
	return out
}

// Build indexes every module of universe not excluded by deny.
func Build(universe host.TypeUniverse, deny []string) *Index {
	return BuildModules(universe, Modules(universe, deny))
}

// BuildModules indexes the given modules of universe, in order.
func BuildModules(universe host.TypeUniverse, modules []string) *Index {
	log := logger.Get("index")
	ix := &Index{
		modules: append([]string(nil), modules...),
		known:   make(map[reflect.Type]struct{}),
		byType:  make(map[reflect.Type][]Request),
		memo:    make(map[reflect.Type][]Request),
	}

	for _, module := range modules {
		for _, decl := range universe.TypesIn(module) {
			if decl.Type == nil {
				continue
			}
			if decl.Role {
				ix.addRole(decl.Type)
			}
			if decl.Bindable {
				ix.addBindable(universe, decl.Type)
			}
		}
		log.Debug("module indexed", logger.Fields(logger.FieldModule, module))
	}

	log.Debug("index built", logger.Fields(
		"modules", len(ix.modules),
		"roles", len(ix.roles),
		"types", len(ix.types),
	))
	return ix
}

func (ix *Index) addRole(t reflect.Type) {
	if _, ok := ix.known[t]; ok {
		return
	}
	ix.known[t] = struct{}{}
	ix.roles = append(ix.roles, t)
}

func (ix *Index) addBindable(universe host.TypeUniverse, t reflect.Type) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if _, ok := ix.byType[t]; ok {
		return
	}
	members := universe.MembersOf(t)
	reqs := make([]Request, 0, len(members))
	for _, m := range members {
		reqs = append(reqs, requestFor(m))
	}
	ix.byType[t] = reqs
	ix.types = append(ix.types, t)
}

func requestFor(m host.MemberDecl) Request {
	r := Request{
		Declaring:   m.Declaring,
		Member:      m.Name,
		Role:        m.Type,
		Cardinality: Single,
		Path:        append([]int(nil), m.Index...),
		MemberType:  m.Type,
		Static:      m.Static,
		Target:      m.Target,
	}
	if m.Type != nil && m.Type.Kind() == reflect.Slice {
		r.Cardinality = Collection
		r.Role = m.Type.Elem()
	}
	return r
}

// Modules returns the indexed modules.
func (ix *Index) Modules() []string { return ix.modules }

// Roles returns the declared roles in declaration order.
func (ix *Index) Roles() []reflect.Type { return ix.roles }

// HasRole reports whether t was declared as a role.
func (ix *Index) HasRole(t reflect.Type) bool {
	_, ok := ix.known[t]
	return ok
}

// Types returns the indexed bindable struct types in declaration order.
func (ix *Index) Types() []reflect.Type { return ix.types }

// Requests returns the requests declared directly on struct type t.
func (ix *Index) Requests(t reflect.Type) []Request {
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return ix.byType[t]
}

// Len returns the total number of requests declared directly on indexed types.
func (ix *Index) Len() int {
	n := 0
	for _, reqs := range ix.byType {
		n += len(reqs)
	}
	return n
}

// RequestsFor returns every request that applies to an object of runtime
// type t: the requests declared on t itself followed by those of every
// struct it embeds, by value or pointer, with field paths prefixed.
// A type already being expanded on the current embedding chain contributes
// nothing, so mutually embedding types resolve the same way whichever is
// looked up first. Results are memoized per looked-up type.
func (ix *Index) RequestsFor(t reflect.Type) []Request {
	t, ok := structOf(t)
	if !ok {
		return nil
	}
	if reqs, ok := ix.memo[t]; ok {
		return reqs
	}
	reqs := ix.collect(t, make(map[reflect.Type]bool))
	ix.memo[t] = reqs
	return reqs
}

func (ix *Index) collect(t reflect.Type, expanding map[reflect.Type]bool) []Request {
	t, ok := structOf(t)
	if !ok || expanding[t] {
		return nil
	}
	expanding[t] = true
	defer delete(expanding, t)

	reqs := append([]Request(nil), ix.byType[t]...)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		if _, tagged := f.Tag.Lookup(host.TagName); tagged {
			continue
		}
		for _, r := range ix.collect(f.Type, expanding) {
			reqs = append(reqs, r.withPrefix(i))
		}
	}
	return reqs
}

func structOf(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t, t.Kind() == reflect.Struct
}

// Issues reports every request that can not be bound given the set of
// known roles: unresolvable shapes and roles known returns false for.
// A nil known uses the declared roles.
func (ix *Index) Issues(known func(reflect.Type) bool) []Issue {
	if known == nil {
		known = ix.HasRole
	}
	var issues []Issue
	for _, t := range ix.types {
		for _, r := range ix.byType[t] {
			if r.Resolvable() && known(r.Role) {
				continue
			}
			err := errors.UnresolvableMember(r.Declaring, r.Member, r.MemberType)
			if r.Resolvable() {
				err = err.WithCause(errors.UnknownRole(r.Role))
			}
			issues = append(issues, Issue{Request: r, Err: err})
		}
	}
	return issues
}
