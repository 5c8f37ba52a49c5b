package errors

import (
	"fmt"
	"net/http"
	"reflect"
)

// AppError is the unified dock error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the status the inspector reports for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// HasCode reports whether err, or any error it wraps or joins, is an
// AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	if appErr, ok := err.(*AppError); ok && appErr.Code == code {
		return true
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			if HasCode(e, code) {
				return true
			}
		}
	case interface{ Unwrap() error }:
		return HasCode(u.Unwrap(), code)
	}
	return false
}

// Wrap converts any error into an AppError. AppErrors pass through unchanged;
// other errors become internal errors with the original as cause.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}

// TypeName renders a type for messages and details; nil renders as "<nil>".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// --- Dock Error Constructors ---

// UnknownRole creates an AppError for a role that was never registered.
func UnknownRole(role reflect.Type) *AppError {
	name := TypeName(role)
	return &AppError{
		Code: ErrCodeUnknownRole, Message: fmt.Sprintf("Role %s was never registered.", name),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"role": name},
	}
}

// UnresolvableMember creates an AppError for a tagged member that cannot be bound.
func UnresolvableMember(owner reflect.Type, member string, memberType reflect.Type) *AppError {
	return &AppError{
		Code: ErrCodeUnresolvableMember,
		Message: fmt.Sprintf("Member %s.%s of type %s is neither a known role nor a slice of a known role.",
			TypeName(owner), member, TypeName(memberType)),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"type":        TypeName(owner),
			"member":      member,
			"member_type": TypeName(memberType),
		},
	}
}

// NotAssignable creates an AppError for a candidate that does not implement its role.
func NotAssignable(candidate any, role reflect.Type) *AppError {
	got := TypeName(reflect.TypeOf(candidate))
	return &AppError{
		Code: ErrCodeNotAssignable, Message: fmt.Sprintf("Candidate of type %s cannot serve role %s.", got, TypeName(role)),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"role": TypeName(role), "candidate_type": got},
	}
}

// MultipleControllers creates an AppError for a second active controller.
func MultipleControllers(activeID string) *AppError {
	return &AppError{
		Code: ErrCodeMultipleControllers, Message: "A lifecycle controller is already active in this process.",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"active_controller": activeID},
	}
}

// InvalidState creates an AppError for an operation not allowed in the current state.
func InvalidState(operation, state string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidState, Message: fmt.Sprintf("Cannot %s while controller is %s.", operation, state),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"operation": operation, "state": state},
	}
}

// InvalidTarget creates an AppError for an object that cannot receive bindings.
func InvalidTarget(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidTarget, Message: fmt.Sprintf("Invalid bind target: %s", reason),
		HTTPStatus: http.StatusBadRequest,
	}
}

// StaleCandidate creates an AppError for a role whose candidates were all destroyed.
func StaleCandidate(role reflect.Type, stale int) *AppError {
	return &AppError{
		Code: ErrCodeStaleCandidate, Message: fmt.Sprintf("Role %s holds %d destroyed candidates.", TypeName(role), stale),
		HTTPStatus: http.StatusGone,
		Details:    map[string]any{"role": TypeName(role), "stale": stale},
	}
}

// InvalidConfig creates an AppError for invalid configuration.
func InvalidConfig(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// HostFailure creates an AppError for a failing host collaborator call.
func HostFailure(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeHostFailure, Message: fmt.Sprintf("Host call %s failed.", operation),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"operation": operation}, Cause: cause,
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
