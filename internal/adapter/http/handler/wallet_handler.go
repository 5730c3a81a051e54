package handler

import (
	"strconv"

	"zerah-finance/internal/adapter/http/dto"
	"zerah-finance/internal/adapter/http/middleware"
	"zerah-finance/internal/core/domain"
	"zerah-finance/internal/core/ports"
	"zerah-finance/pkg/apperror"
	"zerah-finance/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet and activity endpoints.
type WalletHandler struct {
	ledgerSvc ports.LedgerService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledgerSvc ports.LedgerService) *WalletHandler {
	return &WalletHandler{ledgerSvc: ledgerSvc}
}

// List handles GET /api/v1/wallets.
func (h *WalletHandler) List(c *gin.Context) {
	wallets := h.ledgerSvc.Wallets(c.Request.Context())
	response.List(c, wallets, len(wallets))
}

// History handles GET /api/v1/wallets/:currency/transactions.
func (h *WalletHandler) History(c *gin.Context) {
	raw := c.Param("currency")
	currency, ok := domain.ParseCurrency(raw)
	if !ok {
		response.Error(c, apperror.ErrUnknownCurrency(raw))
		return
	}

	limit, err := parseLimit(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	wallet, ok := h.ledgerSvc.Wallets(c.Request.Context()).Get(currency)
	if !ok {
		response.Error(c, apperror.ErrNotFound("wallet"))
		return
	}

	txs, err := h.ledgerSvc.Transactions(c.Request.Context(), ports.TransactionFilter{
		Currency: string(currency),
		Limit:    limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.HistoryResponse{Wallet: wallet, Transactions: txs})
}

// ListTransactions handles GET /api/v1/transactions.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	limit, err := parseLimit(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	txs, err := h.ledgerSvc.Transactions(c.Request.Context(), ports.TransactionFilter{
		Currency: c.Query("currency"),
		Type:     c.Query("type"),
		Limit:    limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, txs, len(txs))
}

// Topup handles POST /api/v1/wallets/topup.
func (h *WalletHandler) Topup(c *gin.Context) {
	var req dto.TopupRequest
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
		Kind:   domain.OperationTopup,
		Amount: amount,
		From:   req.Currency,
	})
}

// initiate runs an operation and writes the committed transaction.
func initiate(c *gin.Context, ledgerSvc ports.LedgerService, req ports.OperationRequest) {
	req.IdempotencyKey = c.GetHeader(middleware.HeaderIdempotencyKey)
	if len(req.IdempotencyKey) > 128 {
		response.Error(c, apperror.Validation("Idempotency-Key must be at most 128 characters"))
		return
	}

	tx, err := ledgerSvc.InitiateOperation(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, tx.ID)
	response.Created(c, tx)
}

func parseLimit(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, apperror.Validation("limit must be a non-negative integer")
	}
	return limit, nil
}
