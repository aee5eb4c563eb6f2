package api

import (
	"DietTracker/internal/repository"
	"DietTracker/internal/summary"
	"DietTracker/internal/tracker"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError переводит ошибки ядра в HTTP-коды
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": "A food with this name already exists"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, summary.ErrInvalidDate), errors.Is(err, summary.ErrTooManyDays),
		errors.Is(err, tracker.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error("Internal server error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
