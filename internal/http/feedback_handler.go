package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"entrematch/internal/domain"
	"entrematch/internal/service"
)

type FeedbackHandler struct {
	logger   *zap.Logger
	feedback *service.FeedbackService
}

func NewFeedbackHandler(logger *zap.Logger, feedback *service.FeedbackService) *FeedbackHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackHandler{logger: logger, feedback: feedback}
}

// Submit maneja POST /profiles/:id/feedback con la valoracion de ambos metodos.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req struct {
		Feedback []struct {
			Method        string   `json:"method" binding:"required"`
			Rating        int      `json:"rating" binding:"required"`
			Comment       string   `json:"comment" binding:"required"`
			ChosenSectors []string `json:"chosen_sectors"`
		} `json:"feedback" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid feedback request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	inputs := make([]service.FeedbackInput, 0, len(req.Feedback))
	for _, f := range req.Feedback {
		inputs = append(inputs, service.FeedbackInput{
			Method:        domain.Method(f.Method),
			Rating:        f.Rating,
			Comment:       f.Comment,
			ChosenSectors: f.ChosenSectors,
		})
	}

	items, err := h.feedback.Submit(c.Request.Context(), c.Param("id"), inputs)
	if err != nil {
		respondError(c, h.logger, err, "could not save feedback")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedback": items})
}

// List maneja GET /profiles/:id/feedback.
func (h *FeedbackHandler) List(c *gin.Context) {
	items, err := h.feedback.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "could not load feedback")
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": items})
}
