package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"entrematch/internal/service"
)

// ProfileHandler expone el alta y la consulta de perfiles.
type ProfileHandler struct {
	logger   *zap.Logger
	profiles *service.ProfileService
}

func NewProfileHandler(logger *zap.Logger, profiles *service.ProfileService) *ProfileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{logger: logger, profiles: profiles}
}

// CreateProfile maneja POST /profiles.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req struct {
		Name            string `json:"name" binding:"required"`
		Role            string `json:"role" binding:"required"`
		RoleDescription string `json:"role_description" binding:"required"`
		Age             int    `json:"age" binding:"required"`
		Gender          string `json:"gender" binding:"required"`
		Domicile        string `json:"domicile" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create profile request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, token, err := h.profiles.Create(c.Request.Context(), service.CreateProfileInput{
		Name:            req.Name,
		Role:            req.Role,
		RoleDescription: req.RoleDescription,
		Age:             req.Age,
		Gender:          req.Gender,
		Domicile:        req.Domicile,
	})
	if err != nil {
		respondError(c, h.logger, err, "could not create profile")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"profile": profile, "token": token})
}

// GetProfile maneja GET /profiles/:id.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "could not load profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
