package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/study-service/internal/services"
	"github.com/gin-gonic/gin"
)

// maxUploadBody leaves room for the multipart framing around a full-size file.
const maxUploadBody = services.MaxUploadBytes + 1<<20

// formFile caps the request body before reading the "file" form field.
func formFile(c *gin.Context) (*multipart.FileHeader, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)
	return c.FormFile("file")
}

// ParseStringIDParam reads a path parameter, answering 400 when it is blank.
func ParseStringIDParam(c *gin.Context, param string) (string, bool) {
	id := strings.TrimSpace(c.Param(param))
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
			Code:    CodeBadRequest,
		})
		return "", false
	}
	return id, true
}

// HealthCheck reports that the service is up.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "study-service",
	})
}
