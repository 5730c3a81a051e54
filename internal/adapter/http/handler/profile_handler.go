package handler

import (
	"zerah-finance/internal/adapter/http/dto"
	"zerah-finance/internal/core/ports"
	"zerah-finance/pkg/apperror"
	"zerah-finance/pkg/response"

	"github.com/gin-gonic/gin"
)

// ProfileHandler handles the account holder profile.
type ProfileHandler struct {
	profileSvc ports.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileSvc ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// Get handles GET /api/v1/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	response.OK(c, h.profileSvc.Get(c.Request.Context()))
}

// SetBusinessMode handles PUT /api/v1/profile/business-mode.
func (h *ProfileHandler) SetBusinessMode(c *gin.Context) {
	var req dto.BusinessModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	response.OK(c, h.profileSvc.SetBusinessMode(c.Request.Context(), *req.Enabled))
}
