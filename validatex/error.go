package validatex

import (
	"net/http"

	"github.com/reqcraft/reqcraft/errx"
)

// Error registry for validatex
var (
	ValidatorErrors = errx.NewRegistry("VALIDATOR")

	ErrValidationFailed  = ValidatorErrors.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")
	ErrInvalidRegex      = ValidatorErrors.Register("INVALID_REGEX", errx.TypeInternal, http.StatusInternalServerError, "Configured regex does not compile")
	ErrInvalidFormat     = ValidatorErrors.Register("INVALID_FORMAT", errx.TypeInternal, http.StatusInternalServerError, "Date rule has no format configured")
	ErrInvalidConstraint = ValidatorErrors.Register("INVALID_CONSTRAINT", errx.TypeInternal, http.StatusInternalServerError, "Constraint payload is invalid for the parameter value")
	ErrUnknownConstraint = ValidatorErrors.Register("UNKNOWN_CONSTRAINT", errx.TypeInternal, http.StatusInternalServerError, "Unknown constraint kind")
	ErrSchemaInvalid     = ValidatorErrors.Register("SCHEMA_INVALID", errx.TypeInternal, http.StatusInternalServerError, "Request body schema is invalid")
)

// Range is the expected bounds reported on a failed BETWEEN constraint.
// Bounds are rendered as strings for a stable wire shape regardless of the
// configured numeric types.
type Range struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// FieldError is one validation failure for a single parameter. Only the
// context fields relevant to the failed check are set.
type FieldError struct {
	Message        string   `json:"message"`
	Type           DataType `json:"type,omitempty"`
	ExpectedRange  *Range   `json:"expectedRange,omitempty"`
	ExpectedValue  any      `json:"expectedValue,omitempty"`
	ExpectedValues []any    `json:"expectedValues,omitempty"`
}

// Result aggregates the validation outcome of one request into its error
// buckets. Encoding a Result omits empty buckets, matching the wire contract.
type Result struct {
	URLParams   []FieldError `json:"urlParams,omitempty"`
	QueryParams []FieldError `json:"queryParams,omitempty"`
	RequestBody []string     `json:"requestBody,omitempty"`
}

// Failed reports whether any bucket holds errors.
func (r *Result) Failed() bool {
	return len(r.URLParams) > 0 || len(r.QueryParams) > 0 || len(r.RequestBody) > 0
}

// Err converts a failed result into the structured bad-request error carrying
// the buckets under the envelope's errors key. Returns nil when the result
// passed.
func (r *Result) Err() *errx.Error {
	if !r.Failed() {
		return nil
	}
	return ValidatorErrors.New(ErrValidationFailed).WithDetail("errors", r)
}
