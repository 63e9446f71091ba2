package ui

import (
	stderrors "errors"
	"log"
	"net/http"

	"terlab/internal/errors"

	"github.com/gin-gonic/gin"
)

// statusForError maps application error codes onto HTTP status codes
func statusForError(err error) int {
	var maxBytes *http.MaxBytesError
	if stderrors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge
	}

	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeValidationError, errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error body; server-side failures are logged
func respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[Server] ❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal server error", "code": errors.GetCode(err)})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
