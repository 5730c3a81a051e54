package ports

import (
	"context"
	"time"

	"zerah-finance/internal/core/domain"
	"zerah-finance/internal/core/exchange"

	"github.com/shopspring/decimal"
)

// IdempotencyCache is the Redis-layer replay check for ledger operations.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RateLimitStore counts requests per key in fixed windows.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// CommitListener is notified after every committed operation. Failures are
// logged by the caller and never undo the commit.
type CommitListener interface {
	OnCommitted(ctx context.Context, commit domain.Commit) error
}

// GenerativeClient produces text from a prompt.
type GenerativeClient interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateRequest is the input to a GenerativeClient.
type GenerateRequest struct {
	Model  string
	Prompt string
}

// --- Service Ports (Business Logic) ---

// LedgerService owns the wallets and activity log and runs the operation state machine.
type LedgerService interface {
	InitiateOperation(ctx context.Context, req OperationRequest) (*domain.Transaction, error)
	Quote(ctx context.Context, req QuoteRequest) (*exchange.Quote, error)
	Wallets(ctx context.Context) domain.Wallets
	Transactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	Rates(ctx context.Context) []exchange.Rate
	Status(ctx context.Context) domain.OperationStatus
}

// OperationRequest holds the input for send, convert and topup.
type OperationRequest struct {
	Kind           domain.OperationKind
	Amount         decimal.Decimal
	From           string
	To             string            // convert: required; send: optional recipient currency
	Recipient      *domain.Recipient // send only
	IdempotencyKey string
}

// QuoteRequest prices an operation without committing it.
type QuoteRequest struct {
	Kind   domain.OperationKind // send or convert; selects the fee policy
	Amount decimal.Decimal
	From   string
	To     string
}

// TransactionFilter narrows the activity log.
type TransactionFilter struct {
	Currency string
	Type     string
	Limit    int
}

// CardService manages the virtual cards.
type CardService interface {
	List(ctx context.Context) []domain.VirtualCard
	SetActive(ctx context.Context, id string, active bool) (*domain.VirtualCard, error)
	ToggleFreeze(ctx context.Context, id string) (*domain.VirtualCard, error)
	SetLimit(ctx context.Context, id string, raw string) (*domain.VirtualCard, error)
}

// AssistantService answers questions about the user's activity.
type AssistantService interface {
	Ask(ctx context.Context, message string) (*domain.ChatMessage, error)
	History(ctx context.Context) []domain.ChatMessage
}

// ProfileService exposes the account holder and the business mode flag.
type ProfileService interface {
	Get(ctx context.Context) domain.Profile
	SetBusinessMode(ctx context.Context, enabled bool) domain.Profile
}

// ReportingService defines dashboard/reporting business logic.
type ReportingService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	Recent(ctx context.Context, n int) ([]domain.Transaction, error)
}

// DashboardRecentCount is the number of entries on the dashboard activity feed.
const DashboardRecentCount = 5

// DashboardStats holds aggregated statistics for the dashboard.
type DashboardStats struct {
	TotalTransactions int                                 `json:"total_transactions"`
	Incoming          int                                 `json:"incoming"`
	Outgoing          int                                 `json:"outgoing"`
	Conversions       int                                 `json:"conversions"`
	ByCurrency        map[domain.Currency]CurrencyTotals  `json:"by_currency"`
	Balances          map[domain.Currency]decimal.Decimal `json:"balances"`
}

// CurrencyTotals sums completed activity for one currency.
type CurrencyTotals struct {
	Incoming  decimal.Decimal `json:"incoming"`
	Outgoing  decimal.Decimal `json:"outgoing"`
	Converted decimal.Decimal `json:"converted"`
	Fees      decimal.Decimal `json:"fees"`
}

// AuditService records audited actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
