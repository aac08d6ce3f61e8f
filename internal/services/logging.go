package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/SAP-F-2025/study-service/internal/errors"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service   string
	Component string
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// ===== OPERATION LOGGING =====

// LogOperation records the outcome of one service call. actor is the session id or email.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, actor, resourceType string, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		// Adjust log level based on error type
		switch {
		case IsValidation(err):
			level = slog.LevelWarn
			status = "validation_error"
		case IsUnauthorized(err):
			level = slog.LevelWarn
			status = "unauthorized"
		case IsConflict(err):
			level = slog.LevelWarn
			status = "conflict"
		case IsNotFound(err):
			status = "not_found"
			level = slog.LevelInfo
		case IsUpstream(err):
			level = slog.LevelWarn
			status = "upstream_error"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("actor", actor),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if info := FormatError(err); info != nil {
		attrs = append(attrs,
			slog.String("error", err.Error()),
			slog.Any("error_type", info["type"]),
		)
		if count, ok := info["count"]; ok {
			attrs = append(attrs, slog.Any("validation_errors_count", count))
		}
	}

	message := fmt.Sprintf("%s operation %s", operation, status)
	l.logger.LogAttrs(ctx, level, message, attrs...)
}

func (l *ServiceLogger) LogValidationError(ctx context.Context, operation, actor string, validationErrors ValidationErrors) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("actor", actor),
		slog.Int("error_count", len(validationErrors)),
	}

	for i, err := range validationErrors {
		if i < 5 { // Limit to first 5 errors to avoid log spam
			attrs = append(attrs, slog.Group(fmt.Sprintf("error_%d", i+1),
				slog.String("field", err.Field),
				slog.String("message", err.Message),
				slog.Any("value", sanitizeField(err.Field, err.Value)),
			))
		}
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Validation failed", attrs...)
}

func (l *ServiceLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

// ===== MIDDLEWARE AND HELPERS =====

// ContextualLogger wraps operations with automatic logging
type ContextualLogger struct {
	logger    *ServiceLogger
	operation string
	actor     string
	startTime time.Time
	ctx       context.Context
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation, actor string) *ContextualLogger {
	return &ContextualLogger{
		logger:    l,
		operation: operation,
		actor:     actor,
		startTime: time.Now(),
		ctx:       ctx,
	}
}

func (cl *ContextualLogger) LogResult(resourceType string, err error) {
	duration := time.Since(cl.startTime)
	cl.logger.LogOperation(cl.ctx, cl.operation, cl.actor, resourceType, duration, err)

	var validationErrors ValidationErrors
	if err != nil && errors.As(err, &validationErrors) && IsValidation(err) {
		cl.logger.LogValidationError(cl.ctx, cl.operation, cl.actor, validationErrors)
	}
}

// ===== ERROR FORMATTING HELPERS =====

func FormatError(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	result := map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}

	var validationErrs ValidationErrors
	switch {
	case IsUpstream(err):
		result["type"] = "upstream"
	case errors.As(err, &validationErrs):
		result["type"] = "validation"
		result["count"] = len(validationErrs)

		fields := make([]map[string]interface{}, len(validationErrs))
		for i, validationErr := range validationErrs {
			fields[i] = map[string]interface{}{
				"field":   validationErr.Field,
				"message": validationErr.Message,
				"value":   sanitizeField(validationErr.Field, validationErr.Value),
			}
		}
		result["errors"] = fields
	case IsNotFound(err):
		result["type"] = "not_found"
	case IsUnauthorized(err):
		result["type"] = "unauthorized"
	case IsConflict(err):
		result["type"] = "conflict"
	}

	return result
}

// SanitizeForLogging removes sensitive information from data before logging
func SanitizeForLogging(data interface{}) interface{} {
	if data == nil {
		return nil
	}

	switch v := data.(type) {
	case string:
		return sanitizeString(v)
	case map[string]interface{}:
		return sanitizeMap(v)
	case []interface{}:
		return sanitizeSlice(v)
	default:
		return data
	}
}

// sanitizeField drops the value of a secret field before any other redaction.
func sanitizeField(field string, value interface{}) interface{} {
	if apperrors.SensitiveField(field) {
		return "[REDACTED]"
	}
	return SanitizeForLogging(value)
}

var sensitiveKeys = []string{"password", "token", "key", "secret", "auth", "credential"}

func sanitizeString(s string) string {
	lowerS := strings.ToLower(s)
	for _, field := range sensitiveKeys {
		if strings.Contains(lowerS, field) {
			return "[REDACTED]"
		}
	}
	return s
}

func sanitizeMap(m map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	for k, v := range m {
		lowerK := strings.ToLower(k)
		sensitive := false

		for _, sensitiveKey := range sensitiveKeys {
			if strings.Contains(lowerK, sensitiveKey) {
				sensitive = true
				break
			}
		}

		if sensitive {
			result[k] = "[REDACTED]"
		} else {
			result[k] = SanitizeForLogging(v)
		}
	}

	return result
}

func sanitizeSlice(s []interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = SanitizeForLogging(v)
	}
	return result
}
