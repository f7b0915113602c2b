package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"entrematch/internal/catalog"
	"entrematch/internal/domain"
	"entrematch/internal/service"
)

type QuestionnaireHandler struct {
	logger        *zap.Logger
	questionnaire *service.QuestionnaireService
}

func NewQuestionnaireHandler(logger *zap.Logger, questionnaire *service.QuestionnaireService) *QuestionnaireHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionnaireHandler{logger: logger, questionnaire: questionnaire}
}

type questionView struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// ListQuestions maneja GET /questionnaire. Sin ?section devuelve ambas secciones.
func (h *QuestionnaireHandler) ListQuestions(c *gin.Context) {
	sections := []domain.Section{domain.SectionEntrepreneurial, domain.SectionPersonality}
	if s := c.Query("section"); s != "" {
		sections = []domain.Section{domain.Section(s)}
	}

	out := make(gin.H, len(sections))
	for _, section := range sections {
		questions, err := h.questionnaire.Questions(section)
		if err != nil {
			respondError(c, h.logger, err, "could not list questions")
			return
		}
		out[string(section)] = questionViews(questions)
	}
	c.JSON(http.StatusOK, out)
}

// SubmitSection maneja PUT /profiles/:id/answers/:section.
func (h *QuestionnaireHandler) SubmitSection(c *gin.Context) {
	var req struct {
		Answers map[string]int `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit answers request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	section := domain.Section(c.Param("section"))
	if err := h.questionnaire.SubmitSection(c.Request.Context(), c.Param("id"), section, domain.Answers(req.Answers)); err != nil {
		respondError(c, h.logger, err, "could not save answers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": section, "saved": len(req.Answers)})
}

func questionViews(questions []catalog.Question) []questionView {
	out := make([]questionView, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionView{Key: q.Key, Text: q.Text})
	}
	return out
}
