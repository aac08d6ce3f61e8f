package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/study-service/internal/errors"
	"github.com/SAP-F-2025/study-service/internal/extractor"
	"github.com/SAP-F-2025/study-service/internal/generation"
	"github.com/SAP-F-2025/study-service/internal/records"
	"github.com/SAP-F-2025/study-service/internal/session"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// Auth errors
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrLoginRequired          = errors.New("login required")

	// Library errors
	ErrRecordNotFound = errors.New("study record not found")
	ErrNotAQuiz       = errors.New("study record is not a quiz")

	// Upload errors
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrEmptyDocument   = errors.New("document contains no text")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// GenerationError wraps a failed generate-extract-decode round trip for one record kind.
type GenerationError struct {
	Kind records.Kind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrRecordNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrLoginRequired) ||
		errors.Is(err, session.ErrUnauthenticated)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	// Records that fail validation are upstream failures, not caller mistakes
	var de *records.DecodeError
	if errors.As(err, &de) {
		return false
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a conflict or an invalid state transition
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrEmailAlreadyRegistered) ||
		errors.Is(err, session.ErrInvalidTransition) ||
		errors.Is(err, session.ErrInvalidAction)
}

// IsUpstream checks if error came from the generation backend or its output
func IsUpstream(err error) bool {
	var pe *generation.ProviderError
	var de *records.DecodeError
	return errors.As(err, &pe) ||
		errors.Is(err, extractor.ErrNoStructuredData) ||
		errors.As(err, &de)
}
