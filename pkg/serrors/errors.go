package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// BaseError is a coded error surfaced to API clients. Code is a stable
// machine-readable identifier; Message is the human-readable fallback.
type BaseError struct {
	Code    string
	Message string
}

func (e *BaseError) Error() string {
	return e.Message
}

func NewError(code, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

func NewFieldRequiredError(field string) *BaseError {
	return &BaseError{
		Code:    "FIELD_REQUIRED",
		Message: fmt.Sprintf("%s is required", field),
	}
}

// ValidationError aggregates per-field messages for a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ValidationErrors maps struct field names to coded errors.
type ValidationErrors map[string]*BaseError

// Flatten reduces validation errors to their display messages.
func Flatten(errs ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		out[field] = err.Message
	}
	return out
}

// ProcessValidatorErrors converts go-playground validator errors into coded
// field errors keyed by struct field name.
func ProcessValidatorErrors(validatorErrs validator.ValidationErrors) map[string]*BaseError {
	out := make(map[string]*BaseError, len(validatorErrs))
	for _, err := range validatorErrs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			out[field] = NewFieldRequiredError(field)
		case "email":
			out[field] = NewError("FIELD_INVALID_EMAIL", fmt.Sprintf("%s must be a valid email address", field))
		case "min":
			out[field] = NewError("FIELD_TOO_SHORT", fmt.Sprintf("%s must be at least %s characters", field, err.Param()))
		case "max":
			out[field] = NewError("FIELD_TOO_LONG", fmt.Sprintf("%s must be at most %s characters", field, err.Param()))
		default:
			out[field] = NewError("FIELD_INVALID", fmt.Sprintf("%s is invalid", field))
		}
	}
	return out
}
