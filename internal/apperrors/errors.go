package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a concurrent modification or uniqueness conflict.
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrDataIntegrity indicates stored data required by an operation is missing or inconsistent.
var ErrDataIntegrity = errors.New("data integrity error")

// ErrUpstream indicates an external provider failed.
var ErrUpstream = errors.New("upstream provider error")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Kind classifies an AppError. Callers dispatch on the kind, never on the concrete type.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindForbidden
	KindUnauthorized
	KindDataIntegrity
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindForbidden:
		return "FORBIDDEN"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindDataIntegrity:
		return "DATA_INTEGRITY"
	case KindUpstream:
		return "UPSTREAM"
	default:
		return "INTERNAL"
	}
}

// sentinel returns the package-level error value matching the kind.
func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindForbidden:
		return ErrForbidden
	case KindUnauthorized:
		return ErrUnauthorized
	case KindDataIntegrity:
		return ErrDataIntegrity
	case KindUpstream:
		return ErrUpstream
	default:
		return ErrInternal
	}
}

// HTTPStatus returns the status code a boundary layer should use for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the structured error carried across layers.
type AppError struct {
	Kind     Kind
	Resource string
	Field    string
	Message  string
	Cause    error
}

func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.sentinel().Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches the package sentinel for the error kind. ErrDuplicate is treated as a conflict.
func (e *AppError) Is(target error) bool {
	if target == ErrDuplicate {
		return e.Kind == KindConflict
	}
	return target == e.Kind.sentinel()
}

// KindOf reports the kind of err. Plain sentinel errors are recognised as well,
// anything else is Internal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return KindConflict
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrDataIntegrity):
		return KindDataIntegrity
	case errors.Is(err, ErrUpstream):
		return KindUpstream
	}
	return KindInternal
}

// NewValidationError creates a validation error without a specific field.
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewFieldValidationError creates a validation error naming the offending field.
func NewFieldValidationError(resource, field, message string) *AppError {
	return &AppError{Kind: KindValidation, Resource: resource, Field: field, Message: message}
}

// NewNotFoundError creates a not-found error. Ownership failures use the same error so
// the existence of other users' records is never revealed.
func NewNotFoundError(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Resource: resource, Message: resource + " not found or access denied"}
}

// NewConflictError creates a conflict error.
func NewConflictError(resource, message string) *AppError {
	return &AppError{Kind: KindConflict, Resource: resource, Message: message}
}

// NewForbiddenError creates a forbidden error.
func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

// NewUnauthorizedError creates an unauthorized error.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

// NewDataIntegrityError creates an error for missing or inconsistent stored data.
func NewDataIntegrityError(resource, message string, cause error) *AppError {
	return &AppError{Kind: KindDataIntegrity, Resource: resource, Message: message, Cause: cause}
}

// NewUpstreamError wraps a failure of an external provider.
func NewUpstreamError(provider, message string, cause error) *AppError {
	return &AppError{Kind: KindUpstream, Resource: provider, Message: message, Cause: cause}
}

// NewAppError creates an error from an HTTP-style status code.
func NewAppError(code int, message string, cause error) *AppError {
	return &AppError{Kind: kindFromStatus(code), Message: message, Cause: cause}
}

func kindFromStatus(code int) Kind {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return KindUpstream
	default:
		return KindInternal
	}
}
