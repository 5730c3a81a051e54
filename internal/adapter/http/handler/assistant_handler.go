package handler

import (
	"zerah-finance/internal/adapter/http/dto"
	"zerah-finance/internal/core/ports"
	"zerah-finance/pkg/apperror"
	"zerah-finance/pkg/response"

	"github.com/gin-gonic/gin"
)

// AssistantHandler handles the chat assistant.
type AssistantHandler struct {
	assistantSvc ports.AssistantService
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistantSvc ports.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantSvc: assistantSvc}
}

// History handles GET /api/v1/assistant/messages.
func (h *AssistantHandler) History(c *gin.Context) {
	msgs := h.assistantSvc.History(c.Request.Context())
	response.List(c, msgs, len(msgs))
}

// Ask handles POST /api/v1/assistant/messages.
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req dto.AssistantMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	reply, err := h.assistantSvc.Ask(c.Request.Context(), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, reply)
}
