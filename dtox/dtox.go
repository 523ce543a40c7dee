// Package dtox converts between transport DTOs and domain models.
//
// A Mapper pairs explicit conversion functions with an optional validation
// step, so handlers decode a request, call ToModel, and get either a domain
// value or a structured 400 error with per-field messages.
package dtox

import (
	"net/http"

	"github.com/reqcraft/reqcraft/errx"
)

// MapperErrors is the error registry for DTO conversion failures.
var MapperErrors = errx.NewRegistry("DTOX")

var (
	ErrValidationFailed = MapperErrors.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Validation failed")
	ErrConversionFailed = MapperErrors.Register("CONVERSION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "DTO conversion failed")
)

// FieldViolation is one validation failure on a DTO field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations collects per-field failures from a DTO validation function.
type Violations []FieldViolation

// Add appends a failure for the given field.
func (v *Violations) Add(field, message string) {
	*v = append(*v, FieldViolation{Field: field, Message: message})
}

// Err converts the collected failures into a structured bad-request error,
// or nil when nothing failed.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return MapperErrors.New(ErrValidationFailed).WithDetail("errors", v)
}

// Mapper converts between a DTO type and a domain model type.
type Mapper[TDto any, TModel any] struct {
	toModel  func(dto TDto) (TModel, error)
	toDto    func(model TModel) (TDto, error)
	validate func(dto TDto) error
}

// NewMapper creates a mapper from explicit conversion functions. Either
// direction may be nil when unused.
func NewMapper[TDto any, TModel any](
	toModel func(dto TDto) (TModel, error),
	toDto func(model TModel) (TDto, error),
) *Mapper[TDto, TModel] {
	return &Mapper[TDto, TModel]{toModel: toModel, toDto: toDto}
}

// WithValidation adds a validation step run before every ToModel conversion.
func (m *Mapper[TDto, TModel]) WithValidation(fn func(dto TDto) error) *Mapper[TDto, TModel] {
	m.validate = fn
	return m
}

// ToModel validates the DTO and converts it to a domain model.
func (m *Mapper[TDto, TModel]) ToModel(dto TDto) (TModel, error) {
	var zero TModel
	if m.validate != nil {
		if err := m.validate(dto); err != nil {
			if errx.IsCode(err, ErrValidationFailed) {
				return zero, err
			}
			return zero, MapperErrors.NewWithCause(ErrValidationFailed, err)
		}
	}
	if m.toModel == nil {
		return zero, MapperErrors.NewWithMessage(ErrConversionFailed, "no DTO to model conversion configured")
	}
	return m.toModel(dto)
}

// ToDto converts a domain model to its DTO.
func (m *Mapper[TDto, TModel]) ToDto(model TModel) (TDto, error) {
	var zero TDto
	if m.toDto == nil {
		return zero, MapperErrors.NewWithMessage(ErrConversionFailed, "no model to DTO conversion configured")
	}
	return m.toDto(model)
}

// ToDtos converts a batch of models, failing on the first conversion error.
func (m *Mapper[TDto, TModel]) ToDtos(models []TModel) ([]TDto, error) {
	dtos := make([]TDto, 0, len(models))
	for _, model := range models {
		dto, err := m.ToDto(model)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}
