package handlers

import (
	"errors"
	"net/http"
	"time"

	apperrors "github.com/SAP-F-2025/study-service/internal/errors"
	"github.com/SAP-F-2025/study-service/internal/generation"
	"github.com/SAP-F-2025/study-service/internal/services"
	"github.com/SAP-F-2025/study-service/internal/session"
	"github.com/SAP-F-2025/study-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error codes returned in ErrorResponse.Code
const (
	CodeValidation     = "validation_failed"
	CodeUnauthorized   = "unauthorized"
	CodeForbidden      = "forbidden"
	CodeNotFound       = "not_found"
	CodeConflict       = "conflict"
	CodeBadRequest     = "bad_request"
	CodeUpstream       = "generation_failed"
	CodeNotConfigured  = "generation_unavailable"
	CodeInternal       = "internal_error"
	CodeInvalidPayload = "invalid_payload"
)

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"remote_addr", c.ClientIP(),
		"request_id", c.GetHeader("X-Request-ID"),
		"session_id", h.extractSessionID(c),
		"user_id", h.extractUserID(c),
		"timestamp", time.Now().Format(time.RFC3339),
	}
	fields = append(fields, additionalFields...)

	h.logger.Info(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.logger.LogError(err, message, h.contextFields(c, additionalFields)...)
}

// LogInfo logs informational messages with context
func (h *BaseHandler) LogInfo(c *gin.Context, message string, additionalFields ...interface{}) {
	h.logger.Info(message, h.contextFields(c, additionalFields)...)
}

// LogWarn logs warning messages with context
func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.logger.Warn(message, h.contextFields(c, additionalFields)...)
}

func (h *BaseHandler) contextFields(c *gin.Context, additionalFields []interface{}) []interface{} {
	fields := []interface{}{
		"request_id", c.GetHeader("X-Request-ID"),
		"session_id", h.extractSessionID(c),
		"user_id", h.extractUserID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	return append(fields, additionalFields...)
}

// extractUserID returns the email of the logged in user, if any.
func (h *BaseHandler) extractUserID(c *gin.Context) interface{} {
	if sess := sessionFromContext(c); sess != nil && sess.Authenticated {
		return sess.Email
	}
	return nil
}

func (h *BaseHandler) extractSessionID(c *gin.Context) interface{} {
	if sess := sessionFromContext(c); sess != nil {
		return sess.ID
	}
	return nil
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	h.respondWithError(c, statusCode, "", message, err, details...)
}

func (h *BaseHandler) respondWithError(c *gin.Context, statusCode int, code, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
		Code:    code,
	}

	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode, "error", err)
	}

	c.JSON(statusCode, errorResp)
}

// RespondWithSuccess sends a consistent success response and logs it
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}, additionalFields ...interface{}) {
	successResp := SuccessResponse{
		Message: message,
		Data:    data,
	}

	fields := []interface{}{"status_code", statusCode}
	fields = append(fields, additionalFields...)
	h.LogInfo(c, message, fields...)

	c.JSON(statusCode, successResp)
}

// BindJSON binds the request body and answers 400 when it cannot be decoded.
func (h *BaseHandler) BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.respondWithError(c, http.StatusBadRequest, CodeInvalidPayload, "Invalid request payload", err, err.Error())
		return false
	}
	return true
}

// HandleServiceError maps a service error onto an HTTP status and error response.
// Failures of the generation backend never leak raw model output to the client.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error, message string) {
	var verrs apperrors.ValidationErrors

	switch {
	case services.IsValidation(err):
		if errors.As(err, &verrs) {
			h.respondWithError(c, http.StatusBadRequest, CodeValidation, "Validation failed", err, verrs.Redacted())
			return
		}
		h.respondWithError(c, http.StatusBadRequest, CodeValidation, err.Error(), err)
	case errors.Is(err, services.ErrForbidden):
		h.respondWithError(c, http.StatusForbidden, CodeForbidden, "Forbidden", err)
	case services.IsUnauthorized(err):
		h.respondWithError(c, http.StatusUnauthorized, CodeUnauthorized, err.Error(), err)
	case services.IsNotFound(err):
		h.respondWithError(c, http.StatusNotFound, CodeNotFound, err.Error(), err)
	case services.IsConflict(err):
		h.respondWithError(c, http.StatusConflict, CodeConflict, err.Error(), err)
	case isBadRequest(err):
		h.respondWithError(c, http.StatusBadRequest, CodeBadRequest, err.Error(), err)
	case generation.IsNotConfigured(err):
		h.respondWithError(c, http.StatusServiceUnavailable, CodeNotConfigured,
			"Study generation is unavailable: no API key is configured", err)
	case services.IsUpstream(err):
		h.respondWithError(c, http.StatusBadGateway, CodeUpstream,
			"The study assistant returned an unusable response, please try again", err)
	default:
		h.respondWithError(c, http.StatusInternalServerError, CodeInternal, message, err)
	}
}

func isBadRequest(err error) bool {
	for _, target := range []error{
		services.ErrUnsupportedFile,
		services.ErrEmptyDocument,
		services.ErrNotAQuiz,
		session.ErrEmptyContent,
		session.ErrEmptyQuiz,
		session.ErrUnknownQuestion,
		session.ErrUnknownAction,
		session.ErrUnknownTab,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
