package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors raised by queries and binds.
const (
	// ErrCodeUnknownRole indicates a query against a role that was never registered.
	ErrCodeUnknownRole ErrorCode = "UNKNOWN_ROLE"
	// ErrCodeUnresolvableMember indicates a tagged member whose type is neither
	// a known role nor a slice of a known role.
	ErrCodeUnresolvableMember ErrorCode = "UNRESOLVABLE_MEMBER_TYPE"
	// ErrCodeNotAssignable indicates a candidate that does not implement its role.
	ErrCodeNotAssignable ErrorCode = "NOT_ASSIGNABLE"
	// ErrCodeInvalidConfig indicates invalid configuration values.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Lifecycle errors
const (
	// ErrCodeMultipleControllers indicates a second controller was created while one is active.
	ErrCodeMultipleControllers ErrorCode = "MULTIPLE_CONTROLLERS"
	// ErrCodeInvalidState indicates an operation that is not valid in the controller's current state.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
	// ErrCodeInvalidTarget indicates an object that cannot receive bindings.
	ErrCodeInvalidTarget ErrorCode = "INVALID_TARGET"
	// ErrCodeStaleCandidate indicates a candidate the host has already destroyed.
	ErrCodeStaleCandidate ErrorCode = "STALE_CANDIDATE"
)

// Host and internal errors
const (
	// ErrCodeHostFailure indicates a host collaborator returned an error.
	ErrCodeHostFailure ErrorCode = "HOST_FAILURE"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// fatalCodes are codes that signal host misconfiguration rather than a
// recoverable condition.
var fatalCodes = map[ErrorCode]bool{
	ErrCodeMultipleControllers: true,
	ErrCodeUnresolvableMember:  true,
	ErrCodeInvalidConfig:       true,
}

// IsFatalCode returns true if the error code indicates host misconfiguration.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
