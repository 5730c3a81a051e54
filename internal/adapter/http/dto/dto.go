package dto

import (
	"encoding/json"

	"zerah-finance/internal/core/domain"

	"github.com/shopspring/decimal"
)

// TopupRequest is the request body for a wallet topup.
type TopupRequest struct {
	Amount   Amount `json:"amount"`
	Currency string `json:"currency" binding:"required,currency_code"`
}

// TransferRequest is the request body for an international transfer.
type TransferRequest struct {
	Amount            Amount `json:"amount"`
	Currency          string `json:"currency" binding:"required,currency_code"`
	RecipientCurrency string `json:"recipient_currency,omitempty" binding:"omitempty,currency_code"`
	RecipientName     string `json:"recipient_name" binding:"required,max=100"`
	BankName          string `json:"bank_name,omitempty" binding:"max=100"`
	AccountNumber     string `json:"account_number" binding:"required,max=34,safe_id"`
	RoutingNumber     string `json:"routing_number,omitempty" binding:"omitempty,max=34,safe_id"`
	Purpose           string `json:"purpose,omitempty" binding:"max=50"`
}

// ConversionRequest is the request body for a currency conversion.
type ConversionRequest struct {
	Amount Amount `json:"amount"`
	From   string `json:"from" binding:"required,currency_code"`
	To     string `json:"to" binding:"required,currency_code"`
}

// SetLimitRequest is the request body for updating a card's spending limit.
type SetLimitRequest struct {
	Limit json.Number `json:"limit" binding:"required"`
}

// BusinessModeRequest toggles the business workspace.
type BusinessModeRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// AssistantMessageRequest is a question for the assistant.
type AssistantMessageRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// CardResponse is a virtual card with its number masked.
type CardResponse struct {
	ID           string          `json:"id"`
	MaskedNumber string          `json:"masked_number"`
	Last4        string          `json:"last4"`
	Expiry       string          `json:"expiry"`
	Type         domain.CardType `json:"type"`
	IsActive     bool            `json:"is_active"`
	Currency     domain.Currency `json:"currency"`
	Limit        decimal.Decimal `json:"limit"`
}

// NewCardResponse masks card for output.
func NewCardResponse(card domain.VirtualCard) CardResponse {
	return CardResponse{
		ID:           card.ID,
		MaskedNumber: card.MaskedNumber(),
		Last4:        card.Last4(),
		Expiry:       card.Expiry,
		Type:         card.Type,
		IsActive:     card.IsActive,
		Currency:     card.Currency,
		Limit:        card.Limit,
	}
}

// HistoryResponse is one wallet's balance and activity.
type HistoryResponse struct {
	Wallet       domain.Wallet        `json:"wallet"`
	Transactions []domain.Transaction `json:"transactions"`
}
