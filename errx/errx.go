package errx

import (
	"errors"
	"fmt"
)

// Type classifies an error by the kind of failure it represents.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeBadRequest    Type = "BAD_REQUEST"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeRateLimit     Type = "RATE_LIMIT"
	TypeTimeout       Type = "TIMEOUT"
	TypeUnavailable   Type = "UNAVAILABLE"
	TypeExternal      Type = "EXTERNAL"
	TypeSystem        Type = "SYSTEM"
	TypeInternal      Type = "INTERNAL"
)

// Code identifies a registered error kind. Codes are created through
// Registry.Register and compared with IsCode.
type Code struct {
	code       string
	errType    Type
	httpStatus int
	message    string
}

// String returns the full machine-readable code, e.g. "STORE_NOT_FOUND".
func (c Code) String() string { return c.code }

// Registry groups related error codes under a common prefix.
type Registry struct {
	prefix string
}

// NewRegistry creates a registry whose codes are prefixed with the given name.
func NewRegistry(prefix string) *Registry {
	return &Registry{prefix: prefix}
}

// Register declares a new error code with its type, HTTP status and default message.
func (r *Registry) Register(name string, errType Type, httpStatus int, message string) Code {
	code := name
	if r.prefix != "" {
		code = r.prefix + "_" + name
	}
	return Code{
		code:       code,
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
}

// New creates an error for the given code with its default message.
func (r *Registry) New(code Code) *Error {
	return &Error{
		Code:       code.code,
		Type:       code.errType,
		Message:    code.message,
		HTTPStatus: code.httpStatus,
	}
}

// NewWithMessage creates an error for the given code with a custom message.
func (r *Registry) NewWithMessage(code Code, message string) *Error {
	e := r.New(code)
	e.Message = message
	return e
}

// NewWithCause creates an error for the given code wrapping an underlying cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.cause = cause
	return e
}

// Error is a structured error carrying a machine-readable code, a
// classification type, an HTTP status and optional details.
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// WithDetail returns the error with an extra detail attached.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails returns the error with the given details merged in.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithMessage returns the error with a replacement message.
func (e *Error) WithMessage(message string) *Error {
	e.Message = message
	return e
}

// Wrap converts an arbitrary error into an *Error with the given message and
// type. If err already is an *Error it is returned with the message prepended
// to its cause chain left intact.
func Wrap(err error, message string, errType Type) *Error {
	status := 500
	switch errType {
	case TypeValidation, TypeBadRequest:
		status = 400
	case TypeAuthorization:
		status = 403
	case TypeNotFound:
		status = 404
	case TypeConflict:
		status = 409
	case TypeRateLimit:
		status = 429
	case TypeTimeout:
		status = 504
	case TypeUnavailable:
		status = 503
	}
	return &Error{
		Code:       "WRAPPED_" + string(errType),
		Type:       errType,
		Message:    message,
		HTTPStatus: status,
		cause:      err,
	}
}

// IsCode reports whether err (or anything it wraps) carries the given code.
func IsCode(err error, code Code) bool {
	var xerr *Error
	if !errors.As(err, &xerr) {
		return false
	}
	return xerr.Code == code.code
}
