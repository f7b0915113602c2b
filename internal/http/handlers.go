package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"entrematch/internal/service"
)

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError traduce errores de servicio a codigos HTTP.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidProfile),
		errors.Is(err, service.ErrInvalidAnswers),
		errors.Is(err, service.ErrInvalidFeedback),
		errors.Is(err, service.ErrUnknownSection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
	case errors.Is(err, service.ErrNoAnswers):
		c.JSON(http.StatusConflict, gin.H{"error": "answer the questionnaire first"})
	case errors.Is(err, service.ErrStaleRecommendation):
		c.JSON(http.StatusConflict, gin.H{"error": "answers changed, run the recommendation again"})
	case errors.Is(err, service.ErrNoRecommendation):
		c.JSON(http.StatusNotFound, gin.H{"error": "no recommendation yet"})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	default:
		logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
