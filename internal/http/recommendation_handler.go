package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"entrematch/internal/service"
)

type RecommendationHandler struct {
	logger          *zap.Logger
	recommendations *service.RecommendationService
}

func NewRecommendationHandler(logger *zap.Logger, recommendations *service.RecommendationService) *RecommendationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationHandler{logger: logger, recommendations: recommendations}
}

// Run maneja POST /profiles/:id/recommendations.
func (h *RecommendationHandler) Run(c *gin.Context) {
	res, err := h.recommendations.Run(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "could not compute recommendation")
		return
	}
	c.JSON(http.StatusOK, res)
}

// Latest maneja GET /profiles/:id/recommendations, solo desde cache.
func (h *RecommendationHandler) Latest(c *gin.Context) {
	set, ok := h.recommendations.Latest(c.Request.Context(), c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no recommendation yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": set})
}

// Compare maneja GET /profiles/:id/comparison.
func (h *RecommendationHandler) Compare(c *gin.Context) {
	cmp, err := h.recommendations.Compare(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "could not compare methods")
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// Similar maneja GET /profiles/:id/similar?k=5.
func (h *RecommendationHandler) Similar(c *gin.Context) {
	k := 0
	if raw := c.Query("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "k must be a positive integer"})
			return
		}
		k = n
	}
	similar, err := h.recommendations.Similar(c.Request.Context(), c.Param("id"), k)
	if err != nil {
		respondError(c, h.logger, err, "could not find similar profiles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": similar})
}
