package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack-dev/teamtrack/internal/apperrors"
)

// respondError translates domain errors to HTTP responses. Anything that is
// not a domain error is an infrastructure failure and reported as a 500.
func respondError(ctx *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		status := http.StatusInternalServerError

		switch appErr.Kind {
		case apperrors.KindNotFound:
			status = http.StatusNotFound
		case apperrors.KindPermissionDenied:
			status = http.StatusForbidden
		case apperrors.KindConflict:
			status = http.StatusConflict
		case apperrors.KindValidation:
			status = http.StatusBadRequest
		}

		ctx.JSON(status, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}

	log.Printf("Unexpected error: %v", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
