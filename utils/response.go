package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageResponse is the body of every error and of message-only successes
type MessageResponse struct {
	Message string `json:"message"`
}

// Success sends a 200 response with the given payload
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with the given payload
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message sends a 200 response carrying only a message
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// Error sends an error response
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageResponse{Message: message})
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, ErrInternal)
}

// RespondError writes err as a response. AppErrors keep their status and
// message; anything else is logged and reported as a 500.
func RespondError(c *gin.Context, err error) {
	if appErr := GetAppError(err); appErr != nil {
		Error(c, appErr.Code, appErr.Message)
		return
	}
	LogError("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	InternalServerError(c)
}
