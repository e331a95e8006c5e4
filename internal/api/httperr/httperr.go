// Package httperr maps service errors to HTTP responses.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liliang-cn/claimwizard/internal/domain"
)

// Status returns the HTTP status for err
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPreconditionUnmet), errors.Is(err, domain.ErrChatClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// JSON writes err as {"error": msg} with its status
func JSON(c *gin.Context, err error) {
	c.JSON(Status(err), gin.H{"error": err.Error()})
}
