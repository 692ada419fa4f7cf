package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform error body every failed request receives.
type Envelope struct {
	Error      bool           `json:"error"`
	Message    string         `json:"message"`
	ErrorCode  string         `json:"error_code"`
	StatusCode int            `json:"status_code"`
	Context    map[string]any `json:"context,omitempty"`
}

// NewEnvelope builds an error envelope.
func NewEnvelope(status int, code, message string, context map[string]any) Envelope {
	return Envelope{
		Error:      true,
		Message:    message,
		ErrorCode:  code,
		StatusCode: status,
		Context:    context,
	}
}

// OK returns a 200 JSON response with the given payload.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created returns a 201 JSON response with the given payload.
func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// NoContent returns an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
