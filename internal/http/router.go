package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"entrematch/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	tokens *service.TokenService,
	profileH *ProfileHandler,
	questionnaireH *QuestionnaireHandler,
	recommendationH *RecommendationHandler,
	feedbackH *FeedbackHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", health)
	r.GET("/questionnaire", questionnaireH.ListQuestions)
	r.POST("/profiles", profileH.CreateProfile)

	// Todo lo que cuelga de un perfil exige su token.
	profile := r.Group("/profiles/:id", ProfileAuthMiddleware(tokens))
	profile.GET("", profileH.GetProfile)
	profile.PUT("/answers/:section", questionnaireH.SubmitSection)
	profile.POST("/recommendations", recommendationH.Run)
	profile.GET("/recommendations", recommendationH.Latest)
	profile.GET("/comparison", recommendationH.Compare)
	profile.GET("/similar", recommendationH.Similar)
	profile.POST("/feedback", feedbackH.Submit)
	profile.GET("/feedback", feedbackH.List)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
