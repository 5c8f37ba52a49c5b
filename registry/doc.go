// Package registry implements the role registry: a map from roles to the
// ordered live candidates that can serve them.
//
// A role is a reflect.Type, usually an interface. A candidate is any live
// object whose dynamic type is assignable to the role. Candidates are held
// by reference and leave the registry only through Reset or a full reload.
//
//	reg := registry.New()
//	reg.RegisterRole(loggerRole)
//	reg.AddCandidates(loggerRole, []any{fileLog, netLog})
//	first, found, err := reg.Get(loggerRole)
//
// Lookups on a role that was never registered fail with UNKNOWN_ROLE; a
// known role without candidates yields an empty, non-nil slice.
package registry
