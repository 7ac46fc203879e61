package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-api/services"
)

// respondError maps the service error taxonomy onto HTTP status codes.
// Unexpected errors are attached to the context for the request logger.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	default:
		_ = ctx.Error(err)
	}

	ctx.AbortWithStatusJSON(status, gin.H{
		"status":  "error",
		"message": message,
	})
}

// respondBindError reports a request that could not be decoded or failed its binding rules
func respondBindError(ctx *gin.Context, err error) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Invalid request: " + err.Error(),
	})
}
