// Package utils provides HTTP response helpers shared by the handlers.
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina/internal/shared/errors"
)

// APIResponse is the common envelope for all HTTP responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// APIError carries error details in a response.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse writes a 200 response with data.
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// SuccessResponseWithStatus writes a response with the given status and data.
func SuccessResponseWithStatus(c *gin.Context, status int, data interface{}) {
	c.JSON(status, APIResponse{
		Success: true,
		Data:    data,
	})
}

// CreatedResponse writes a 201 response with data.
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

// MessageResponse writes a 200 response with only a message.
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
	})
}

// ErrorResponseWithError maps an error to the appropriate HTTP response.
// AppErrors keep their type and status code; anything else becomes a 500.
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		c.JSON(appErr.Code, APIResponse{
			Success: false,
			Error: &APIError{
				Type:    string(appErr.Type),
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, APIResponse{
		Success: false,
		Error: &APIError{
			Type:    string(errors.ErrorTypeInternal),
			Message: "Internal server error",
		},
	})
}

// ErrorResponse writes an error response with an explicit status and message.
func ErrorResponse(c *gin.Context, status int, errType, message string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error: &APIError{
			Type:    errType,
			Message: message,
		},
	})
}
