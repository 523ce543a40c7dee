package errx

import (
	"encoding/json"
	"net/http"
)

// Error registry for the standard HTTP error hierarchy. Every code carries a
// fixed default message so callers can raise a well-formed client error
// without composing copy on the spot.
var (
	HTTPErrors = NewRegistry("HTTP")

	ErrBadRequest          = HTTPErrors.Register("BAD_REQUEST", TypeBadRequest, http.StatusBadRequest, "The request is invalid. Please try again.")
	ErrUnauthorized        = HTTPErrors.Register("UNAUTHORIZED", TypeAuthorization, http.StatusUnauthorized, "Sent request is unauthorized. Please log in first.")
	ErrPaymentRequired     = HTTPErrors.Register("PAYMENT_REQUIRED", TypeAuthorization, http.StatusPaymentRequired, "Please confirm your purchase first. Payment is required to access this resource")
	ErrForbidden           = HTTPErrors.Register("FORBIDDEN", TypeAuthorization, http.StatusForbidden, "You don't have necessary permissions to access this resource.")
	ErrNotFound            = HTTPErrors.Register("NOT_FOUND", TypeNotFound, http.StatusNotFound, "The resource you are looking for does not exist.")
	ErrMethodNotAllowed    = HTTPErrors.Register("METHOD_NOT_ALLOWED", TypeBadRequest, http.StatusMethodNotAllowed, "This method is not allowed for the sent request.")
	ErrConflict            = HTTPErrors.Register("CONFLICT", TypeConflict, http.StatusConflict, "The request seems to be conflicting.")
	ErrUnsupportedMedia    = HTTPErrors.Register("UNSUPPORTED_MEDIA_TYPE", TypeBadRequest, http.StatusUnsupportedMediaType, "The sent filetype(s) not supported.")
	ErrLocked              = HTTPErrors.Register("LOCKED", TypeConflict, http.StatusLocked, "This resource is currently locked! Please try again later.")
	ErrInternalServerError = HTTPErrors.Register("INTERNAL_SERVER_ERROR", TypeInternal, http.StatusInternalServerError, "Looks like something went wrong! Please try again.\nIf the issue persists please contact support.")
	ErrNotImplemented      = HTTPErrors.Register("NOT_IMPLEMENTED", TypeInternal, http.StatusNotImplemented, "This action for sent request is yet to be implemented.")
)

// Envelope is the wire shape every error response is rendered into.
type Envelope struct {
	StatusCode int           `json:"statusCode"`
	Error      EnvelopeError `json:"error"`
}

// EnvelopeError is the error body inside an Envelope.
type EnvelopeError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Envelope renders the error into the standard response envelope. Structured
// validation buckets attached under the "errors" detail key surface as the
// envelope's errors field; all other details stay server-side.
func (e *Error) Envelope() Envelope {
	status := e.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	env := Envelope{
		StatusCode: status,
		Error: EnvelopeError{
			Message: e.Message,
			Code:    e.Code,
		},
	}
	if e.Details != nil {
		env.Error.Errors = e.Details["errors"]
	}
	return env
}

// ToHTTP writes the error envelope to an HTTP response.
func (e *Error) ToHTTP(w http.ResponseWriter) {
	env := e.Envelope()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(env.StatusCode)
	_ = json.NewEncoder(w).Encode(env)
}
