package ledger

import (
	"fmt"
	"strings"
	"time"

	"zerah-finance/internal/core/domain"
	"zerah-finance/internal/core/exchange"
	"zerah-finance/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopupDescription labels every wallet top-up.
const TopupDescription = "Wallet Top-up via Zerah Direct"

const (
	prefixTopup      = "TOP"
	prefixConversion = "CNV"
	prefixTransfer   = "GLB"
)

// Outcome is a validated operation ready to be recorded.
type Outcome struct {
	Kind      domain.OperationKind
	Amount    decimal.Decimal
	Currency  domain.Currency
	Quote     *exchange.Quote   // send, convert
	Recipient *domain.Recipient // send
}

// IDGenerator returns a process-unique id carrying prefix.
type IDGenerator func(prefix string) string

// Builder turns outcomes into transactions.
type Builder struct {
	newID IDGenerator
	now   func() time.Time
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithIDGenerator overrides the id source.
func WithIDGenerator(g IDGenerator) BuilderOption {
	return func(b *Builder) { b.newID = g }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// NewBuilder creates a Builder using uuid ids and the wall clock by default.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		newID: func(prefix string) string {
			return prefix + "-" + strings.ToUpper(uuid.New().String())
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build records o as a completed transaction.
func (b *Builder) Build(o Outcome) (domain.Transaction, error) {
	now := b.now().UTC()
	tx := domain.Transaction{
		Amount:    o.Amount,
		Currency:  o.Currency,
		Date:      now.Format(domain.DateLayout),
		Status:    domain.TransactionStatusCompleted,
		CreatedAt: now,
	}

	switch o.Kind {
	case domain.OperationTopup:
		tx.ID = b.newID(prefixTopup)
		tx.Type = domain.TransactionTypeIncoming
		tx.Description = TopupDescription

	case domain.OperationConvert:
		if o.Quote == nil {
			return domain.Transaction{}, apperror.ErrInvalidInput("conversion requires a quote")
		}
		tx.ID = b.newID(prefixConversion)
		tx.Type = domain.TransactionTypeConversion
		tx.Description = fmt.Sprintf("Exchanged %s to %s", o.Quote.From, o.Quote.To)
		tx.Conversion = &domain.ConversionDetails{
			ToCurrency:      o.Quote.To,
			Fee:             o.Quote.Fee,
			NetAmount:       o.Quote.NetAmount,
			ConvertedAmount: o.Quote.ConvertedAmount,
			ExchangeRate:    o.Quote.Rate,
		}

	case domain.OperationSend:
		if o.Quote == nil || o.Recipient == nil {
			return domain.Transaction{}, apperror.ErrInvalidInput("transfer requires a quote and a recipient")
		}
		purpose := o.Recipient.Purpose
		if purpose == "" {
			purpose = domain.DefaultTransferPurpose
		}
		tx.ID = b.newID(prefixTransfer)
		tx.Type = domain.TransactionTypeOutgoing
		tx.Description = fmt.Sprintf("Transfer: %s to %s", purpose, o.Recipient.Name)
		tx.Transfer = &domain.TransferDetails{
			RecipientName:     o.Recipient.Name,
			BankName:          o.Recipient.BankName,
			AccountNumber:     o.Recipient.AccountNumber,
			RoutingNumber:     o.Recipient.RoutingNumber,
			Purpose:           purpose,
			Fee:               o.Quote.Fee,
			ExchangeRate:      o.Quote.Rate,
			RecipientCurrency: o.Quote.To,
			RecipientAmount:   o.Quote.ConvertedAmount,
		}

	default:
		return domain.Transaction{}, apperror.ErrInvalidInput("unknown operation " + string(o.Kind))
	}

	return tx, nil
}
