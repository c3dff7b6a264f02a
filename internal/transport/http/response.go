package handlers

import (
	"net/http"

	"eduplatform/internal/domain"

	"github.com/gin-gonic/gin"
)

func statusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrKindNotFound:
		return http.StatusNotFound
	case domain.ErrKindForbidden:
		return http.StatusForbidden
	case domain.ErrKindBadRequest:
		return http.StatusBadRequest
	case domain.ErrKindPreconditionFailed:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// writeError переводит доменную ошибку в HTTP-ответ с машинным кодом причины.
func writeError(c *gin.Context, err error) {
	if appErr, ok := domain.AsAppError(err); ok {
		c.JSON(statusOf(appErr.Kind), gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
