package handler

import (
	"zerah-finance/internal/core/domain"
	"zerah-finance/internal/core/ports"
	"zerah-finance/pkg/apperror"
	"zerah-finance/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExchangeHandler serves the rate table and quotes.
type ExchangeHandler struct {
	ledgerSvc ports.LedgerService
}

// NewExchangeHandler creates a new ExchangeHandler.
func NewExchangeHandler(ledgerSvc ports.LedgerService) *ExchangeHandler {
	return &ExchangeHandler{ledgerSvc: ledgerSvc}
}

// Rates handles GET /api/v1/exchange/rates.
func (h *ExchangeHandler) Rates(c *gin.Context) {
	rates := h.ledgerSvc.Rates(c.Request.Context())
	response.List(c, rates, len(rates))
}

// Quote handles GET /api/v1/exchange/quote?amount=&from=&to=&policy=.
// policy is "convert" (default) or "send".
func (h *ExchangeHandler) Quote(c *gin.Context) {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	quote, err := h.ledgerSvc.Quote(c.Request.Context(), ports.QuoteRequest{
		Kind:   domain.OperationKind(c.Query("policy")),
		Amount: amount,
		From:   c.Query("from"),
		To:     c.Query("to"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, quote)
}
