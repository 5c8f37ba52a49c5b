// Package scan partitions a pool of live host objects into candidates per
// role.
//
// A scan is a full rescan: every object is checked against every role, so
// its cost is O(roles × objects). Results keep role order and pool order.
package scan

import (
	stderrors "errors"
	"reflect"

	"github.com/kbukum/dock/registry"
)

// Result holds the candidates found for each scanned role.
type Result struct {
	roles      []reflect.Type
	candidates map[reflect.Type][]any
	objects    int
}

// Scan collects, for every role, the objects of pool whose dynamic type is
// assignable to it. Nil objects are skipped. An object may serve several
// roles.
func Scan(roles []reflect.Type, pool []any) *Result {
	res := &Result{
		roles:      make([]reflect.Type, 0, len(roles)),
		candidates: make(map[reflect.Type][]any, len(roles)),
	}
	for _, role := range roles {
		if role == nil {
			continue
		}
		if _, dup := res.candidates[role]; dup {
			continue
		}
		res.roles = append(res.roles, role)
		res.candidates[role] = []any{}
	}

	for _, obj := range pool {
		if obj == nil {
			continue
		}
		res.objects++
		t := reflect.TypeOf(obj)
		for _, role := range res.roles {
			if t.AssignableTo(role) {
				res.candidates[role] = append(res.candidates[role], obj)
			}
		}
	}
	return res
}

// Roles returns the scanned roles in input order.
func (r *Result) Roles() []reflect.Type {
	return r.roles
}

// Candidates returns the candidates found for role, in pool order.
func (r *Result) Candidates(role reflect.Type) []any {
	return r.candidates[role]
}

// Objects returns the number of non-nil objects scanned.
func (r *Result) Objects() int { return r.objects }

// Count returns the number of (role, candidate) pairs found.
func (r *Result) Count() int {
	n := 0
	for _, c := range r.candidates {
		n += len(c)
	}
	return n
}

// Apply registers every scanned role in reg, then adds its candidates
// through the bulk path. Roles with no candidates still become known.
func (r *Result) Apply(reg *registry.Registry) error {
	var errs []error
	for _, role := range r.roles {
		reg.RegisterRole(role)
		if err := reg.AddCandidates(role, r.candidates[role]); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
