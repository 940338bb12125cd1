package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"phaseboard/internal/repository"
	"phaseboard/internal/service"
)

// Error codes
const (
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// APIError is the standardized error response body.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, &APIError{Code: code, Message: message})
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request body"
	}
	respondError(c, http.StatusBadRequest, ErrCodeInvalidInput, message)
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	respondError(c, http.StatusNotFound, ErrCodeNotFound, message)
}

// Unprocessable sends a 422 response.
func Unprocessable(c *gin.Context, message string) {
	respondError(c, http.StatusUnprocessableEntity, ErrCodeInvalidOperation, message)
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context) {
	respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error")
}

// respondServiceError maps service-layer failures onto the status
// contract: malformed input 400, unknown IDs 404, constraint
// violations 422, everything else 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalid):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrConflict):
		Unprocessable(c, err.Error())
	default:
		InternalError(c)
	}
}
