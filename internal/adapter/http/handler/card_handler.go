package handler

import (
	"zerah-finance/internal/adapter/http/dto"
	"zerah-finance/internal/core/domain"
	"zerah-finance/internal/core/ports"
	"zerah-finance/pkg/apperror"
	"zerah-finance/pkg/response"

	"github.com/gin-gonic/gin"
)

// CardHandler handles the virtual card controls.
type CardHandler struct {
	cardSvc ports.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardSvc ports.CardService) *CardHandler {
	return &CardHandler{cardSvc: cardSvc}
}

// List handles GET /api/v1/cards.
func (h *CardHandler) List(c *gin.Context) {
	cards := h.cardSvc.List(c.Request.Context())
	out := make([]dto.CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, dto.NewCardResponse(card))
	}
	response.List(c, out, len(out))
}

// Freeze handles POST /api/v1/cards/:id/freeze.
func (h *CardHandler) Freeze(c *gin.Context) {
	h.respond(c)(h.cardSvc.SetActive(c.Request.Context(), c.Param("id"), false))
}

// Unfreeze handles POST /api/v1/cards/:id/unfreeze.
func (h *CardHandler) Unfreeze(c *gin.Context) {
	h.respond(c)(h.cardSvc.SetActive(c.Request.Context(), c.Param("id"), true))
}

// Toggle handles POST /api/v1/cards/:id/toggle.
func (h *CardHandler) Toggle(c *gin.Context) {
	h.respond(c)(h.cardSvc.ToggleFreeze(c.Request.Context(), c.Param("id")))
}

// SetLimit handles PUT /api/v1/cards/:id/limit.
func (h *CardHandler) SetLimit(c *gin.Context) {
	var req dto.SetLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	h.respond(c)(h.cardSvc.SetLimit(c.Request.Context(), c.Param("id"), req.Limit.String()))
}

func (h *CardHandler) respond(c *gin.Context) func(*domain.VirtualCard, error) {
	return func(card *domain.VirtualCard, err error) {
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, dto.NewCardResponse(*card))
	}
}
