// Package errors provides the structured error type shared by every dock
// package. Each failure the registry, index, binder or controller can raise
// carries a machine-readable ErrorCode so callers can tell configuration
// mistakes (unknown roles, unresolvable members) apart from host failures.
package errors
