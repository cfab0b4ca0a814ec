package errs

import (
	"errors"
	"fmt"
)

// Machine-readable failure codes surfaced by the core operations. UI and API
// layers map these to user-facing notifications; the human message carried
// next to them is diagnostic only.
const (
	CodeRoadOutOfBounds     = "road.out_of_bounds"
	CodeRoadAlreadyExists   = "road.already_exists"
	CodeRoadNotFound        = "road.not_found"
	CodeRouteUnreachable    = "transport.route_unreachable"
	CodeOrderNotFound       = "transport.order_not_found"
	CodeNoSuppliers         = "transport.no_suppliers"
	CodeNoStock             = "transport.no_stock"
	CodePlanningFailed      = "transport.planning_failed"
	CodeInvalidArgument     = "transport.invalid_argument"
	CodeUnexpectedException = "system.unexpected_exception"
)

// ErrDomain is the Unwrap target shared by every DomainError.
var ErrDomain = errors.New("domain error")

// DomainError is a failure of a core operation expressed as a stable code
// plus a human message. Core operations return these instead of ad-hoc
// errors so callers can branch on the code without string matching.
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// NewDomainError creates a DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewDomainErrorWithCause creates a DomainError wrapping an underlying cause.
func NewDomainErrorWithCause(code, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

// WrapUnexpected converts a truly unexpected internal error into the generic
// system.unexpected_exception domain error, preserving the cause chain.
func WrapUnexpected(cause error) *DomainError {
	return &DomainError{
		Code:    CodeUnexpectedException,
		Message: "unexpected internal error",
		Cause:   cause,
	}
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", e.Code, sanitize(e.Message), e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, sanitize(e.Message))
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

// CodeOf extracts the domain code from err, returning
// system.unexpected_exception for non-domain errors and an empty string for
// nil.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeUnexpectedException
}
