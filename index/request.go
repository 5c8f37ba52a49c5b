package index

import (
	"fmt"
	"reflect"
)

// Cardinality is how many candidates a member receives.
type Cardinality int

const (
	// Single members receive the first candidate or nothing.
	Single Cardinality = iota
	// Collection members receive every candidate.
	Collection
)

func (c Cardinality) String() string {
	switch c {
	case Single:
		return "single"
	case Collection:
		return "collection"
	default:
		return fmt.Sprintf("cardinality(%d)", int(c))
	}
}

// Request is a member that must receive candidates of a role.
type Request struct {
	Declaring   reflect.Type
	Member      string
	Role        reflect.Type
	Cardinality Cardinality
	// Path is the field index path from the bound struct to the member.
	Path []int
	// MemberType is the declared type of the member.
	MemberType reflect.Type
	// Static requests write to Target instead of a field of the object.
	Static bool
	Target reflect.Value
}

// Resolvable reports whether the member shape can ever be bound.
func (r Request) Resolvable() bool {
	return r.MemberType != nil && r.MemberType.Kind() != reflect.Array
}

func (r Request) String() string {
	return fmt.Sprintf("%s.%s <- %s (%s)", typeName(r.Declaring), r.Member, typeName(r.Role), r.Cardinality)
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// withPrefix returns r with prefix prepended to its field path.
func (r Request) withPrefix(prefix int) Request {
	if r.Static {
		return r
	}
	path := make([]int, 0, len(r.Path)+1)
	path = append(path, prefix)
	path = append(path, r.Path...)
	r.Path = path
	return r
}
