package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	errorspkg "skywatch.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

// handleError handles different types of application errors
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	var statusCode int
	var message string

	if !errors.As(err, &appErr) {
		slog.Error("Unhandled error", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	switch appErr.Type {
	case errorspkg.ErrorTypeValidation, errorspkg.ErrorTypeUnsupportedTimeSpec:
		statusCode = http.StatusBadRequest
		message = appErr.Message
	case errorspkg.ErrorTypeNotFound:
		statusCode = http.StatusNotFound
		message = appErr.Message
	case errorspkg.ErrorTypeNoMatchingForecast, errorspkg.ErrorTypeEmptyWindow:
		statusCode = http.StatusUnprocessableEntity
		message = appErr.Message
	case errorspkg.ErrorTypeMalformedResponse, errorspkg.ErrorTypeMalformedInterval:
		statusCode = http.StatusBadGateway
		message = "Forecast provider returned an unexpected response"
	case errorspkg.ErrorTypeFetchFailure:
		statusCode = http.StatusServiceUnavailable
		message = "Forecast provider unavailable"
	case errorspkg.ErrorTypeEmail:
		statusCode = http.StatusServiceUnavailable
		message = "Unable to send email"
	case errorspkg.ErrorTypeCache, errorspkg.ErrorTypeDatabase:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	if statusCode >= http.StatusInternalServerError {
		slog.Error("Request failed", "error", err, "path", c.Request.URL.Path)
	}
	c.JSON(statusCode, ErrorResponse{Error: message, Type: appErr.Type.String()})
}
