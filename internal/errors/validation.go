package errors

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// First returns the first message as a sentence, for inline display.
func (ve ValidationErrors) First() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	return ve[0].Error()
}

func (pe *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", pe.Field, pe.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewValidationErrorWithRule creates a new validation error with rule
func NewValidationErrorWithRule(field, message, rule string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    rule,
	}
}

// ToValidationErrors converts validator.ValidationErrors to our custom type.
// Errors that are already ValidationErrors pass through unchanged.
func ToValidationErrors(err error) ValidationErrors {
	var result ValidationErrors

	var existing ValidationErrors
	if errors.As(err, &existing) {
		return existing.Redacted()
	}

	var validatorErr validator.ValidationErrors
	if errors.As(err, &validatorErr) {
		for _, fe := range validatorErr {
			result = append(result, ValidationError{
				Field:   fieldPath(fe),
				Message: getErrorMessage(fe),
				Value:   safeValue(fe),
				Rule:    fe.Tag(),
			})
		}
	}

	return result
}

// sensitiveFields are name fragments whose values never leave the process.
var sensitiveFields = []string{"password", "secret", "token", "credential", "api_key", "apikey"}

// SensitiveField reports whether the last segment of a field path names a secret.
func SensitiveField(field string) bool {
	if i := strings.LastIndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	field = strings.ToLower(field)
	for _, key := range sensitiveFields {
		if strings.Contains(field, key) {
			return true
		}
	}
	return false
}

// Redacted returns the errors with the values of sensitive fields removed.
func (ve ValidationErrors) Redacted() ValidationErrors {
	out := make(ValidationErrors, len(ve))
	for i, e := range ve {
		if SensitiveField(e.Field) {
			e.Value = nil
		}
		out[i] = e
	}
	return out
}

func safeValue(fe validator.FieldError) interface{} {
	if SensitiveField(fe.Field()) || SensitiveField(fe.StructField()) {
		return nil
	}
	return fe.Value()
}

// fieldPath drops the root struct name from the namespace, keeping list indexes.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	for i := 0; i < len(ns); i++ {
		if ns[i] == '.' {
			return ns[i+1:]
		}
	}
	return fe.Field()
}

// getErrorMessage returns user-friendly error messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		if isCollection(err) {
			return fmt.Sprintf("must contain at least %s items", err.Param())
		}
		if isString(err) {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		if isCollection(err) {
			return fmt.Sprintf("must contain at most %s items", err.Param())
		}
		if isString(err) {
			return fmt.Sprintf("must be at most %s characters", err.Param())
		}
		return fmt.Sprintf("must be at most %s", err.Param())
	case "len":
		if isCollection(err) {
			return fmt.Sprintf("must contain exactly %s items", err.Param())
		}
		return fmt.Sprintf("must be exactly %s characters", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", err.Param())
	case "email":
		return "must be a valid email address"
	case "eqfield":
		return fmt.Sprintf("must match %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "unique":
		if err.Param() != "" {
			return fmt.Sprintf("must not repeat %s values", strings.ToLower(err.Param()))
		}
		return "must not contain duplicates"

	// Custom validators
	case "option_label":
		return "must be one of A, B, C or D"
	case "importance":
		return "must be high, medium or low"
	case "quiz_size":
		return "must be 3, 5, 10 or 15"

	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}

func isCollection(err validator.FieldError) bool {
	switch err.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

func isString(err validator.FieldError) bool {
	return err.Kind() == reflect.String
}
