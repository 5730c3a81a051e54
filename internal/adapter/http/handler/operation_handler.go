package handler

import (
	"zerah-finance/internal/adapter/http/dto"
	"zerah-finance/internal/core/domain"
	"zerah-finance/internal/core/ports"
	"zerah-finance/pkg/apperror"
	"zerah-finance/pkg/response"

	"github.com/gin-gonic/gin"
)

// OperationHandler handles transfers, conversions and the operation status.
type OperationHandler struct {
	ledgerSvc ports.LedgerService
}

// NewOperationHandler creates a new OperationHandler.
func NewOperationHandler(ledgerSvc ports.LedgerService) *OperationHandler {
	return &OperationHandler{ledgerSvc: ledgerSvc}
}

// Transfer handles POST /api/v1/transfers.
func (h *OperationHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := req.Amount.Decimal()
	if err != nil {
		response.Error(c, err)
		return
	}
	dto.SanitizeStruct(&req)

	initiate(c, h.ledgerSvc, ports.OperationRequest{
		Kind:   domain.OperationSend,
		Amount: amount,
		From:   req.Currency,
		To:     req.RecipientCurrency,
		Recipient: &domain.Recipient{
			Name:          req.RecipientName,
			BankName:      req.BankName,
			AccountNumber: req.AccountNumber,
			RoutingNumber: req.RoutingNumber,
			Purpose:       req.Purpose,
		},
	})
}

// Convert handles POST /api/v1/conversions.
func (h *OperationHandler) Convert(c *gin.Context) {
	var req dto.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := req.Amount.Decimal()
	if err != nil {
		response.Error(c, err)
		return
	}
	dto.SanitizeStruct(&req)

	initiate(c, h.ledgerSvc, ports.OperationRequest{
		Kind:   domain.OperationConvert,
		Amount: amount,
		From:   req.From,
		To:     req.To,
	})
}

// Status handles GET /api/v1/operations/status.
func (h *OperationHandler) Status(c *gin.Context) {
	response.OK(c, h.ledgerSvc.Status(c.Request.Context()))
}
