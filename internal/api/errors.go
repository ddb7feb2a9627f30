package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"surgewatch/internal/models"
)

// respondError maps the typed domain errors onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		invalidData  *models.InvalidDataError
		insufficient *models.InsufficientHistoryError
		notFound     *models.ActionNotFoundError
		invalidState *models.InvalidStateError
	)
	switch {
	case errors.As(err, &invalidData):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Errorf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
