package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of money movement.
type TransactionType string

const (
	TransactionTypeIncoming   TransactionType = "incoming"
	TransactionTypeOutgoing   TransactionType = "outgoing"
	TransactionTypeConversion TransactionType = "conversion"
)

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// DateLayout is the calendar-day format stored on transactions.
const DateLayout = "2006-01-02"

// Transaction is an immutable log entry. Exactly one of Transfer or Conversion
// is set for outgoing transfers and conversions respectively; top-ups and
// seeded entries carry neither.
type Transaction struct {
	ID          string             `json:"id"`
	Type        TransactionType    `json:"type"`
	Amount      decimal.Decimal    `json:"amount"`
	Currency    Currency           `json:"currency"`
	Description string             `json:"description"`
	Date        string             `json:"date"`
	Status      TransactionStatus  `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	Transfer    *TransferDetails   `json:"transfer,omitempty"`
	Conversion  *ConversionDetails `json:"conversion,omitempty"`
}

// TransferDetails describes an outgoing transfer to an external beneficiary.
type TransferDetails struct {
	RecipientName     string          `json:"recipient_name"`
	BankName          string          `json:"bank_name,omitempty"`
	AccountNumber     string          `json:"account_number"`
	RoutingNumber     string          `json:"routing_number,omitempty"`
	Purpose           string          `json:"purpose"`
	Fee               decimal.Decimal `json:"fee"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
	RecipientCurrency Currency        `json:"recipient_currency"`
	RecipientAmount   decimal.Decimal `json:"recipient_amount"`
}

// ConversionDetails describes a conversion between two owned wallets.
type ConversionDetails struct {
	ToCurrency      Currency        `json:"to_currency"`
	Fee             decimal.Decimal `json:"fee"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
}

// Fee returns the fee recorded on the transaction, zero when none applies.
func (t *Transaction) Fee() decimal.Decimal {
	switch {
	case t.Transfer != nil:
		return t.Transfer.Fee
	case t.Conversion != nil:
		return t.Conversion.Fee
	}
	return decimal.Zero
}

// ExchangeRate returns the rate recorded on the transaction, zero when none applies.
func (t *Transaction) ExchangeRate() decimal.Decimal {
	switch {
	case t.Transfer != nil:
		return t.Transfer.ExchangeRate
	case t.Conversion != nil:
		return t.Conversion.ExchangeRate
	}
	return decimal.Zero
}

// IsTerminal returns true if the transaction is in a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusCompleted || t.Status == TransactionStatusFailed
}

