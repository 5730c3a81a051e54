package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"zerah-finance/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConversion() *domain.Transaction {
	return &domain.Transaction{
		ID:          "CNV-1",
		Type:        domain.TransactionTypeConversion,
		Amount:      decimal.NewFromInt(100),
		Currency:    domain.CurrencyUSD,
		Description: "Exchanged USD to NGN",
		Date:        "2024-03-09",
		Status:      domain.TransactionStatusCompleted,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		Conversion: &domain.ConversionDetails{
			ToCurrency:      domain.CurrencyNGN,
			Fee:             decimal.RequireFromString("0.50"),
			NetAmount:       decimal.RequireFromString("99.50"),
			ConvertedAmount: decimal.RequireFromString("144275.00"),
			ExchangeRate:    decimal.NewFromInt(1450),
		},
	}
}

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestConversion()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ledger_transactions").
		WithArgs(txn.ID, "conversion", "100.00", "USD", txn.Description, txn.Date,
			"completed", "0.50", pgxmock.AnyArg(), txn.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, txn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_Create_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ledger_transactions").WillReturnError(errors.New("relation does not exist"))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, newTestConversion())
	assert.ErrorContains(t, err, "insert ledger transaction")
}

func TestWalletRepo_UpsertBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	repo := NewWalletRepo(mock)
	repo.now = func() time.Time { return now }

	w := domain.SeedWallets()[3]

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO wallet_balances").
		WithArgs("4", "NGN", "1250000.00", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.NoError(t, repo.UpsertBalance(context.Background(), tx, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepo(mock)
	entry := &domain.AuditLog{
		ID:           uuid.New(),
		RequestID:    "req-1",
		Action:       domain.AuditActionCardFreeze,
		ResourceType: "card",
		ResourceID:   "c1",
		IPAddress:    "10.0.0.1",
		StatusCode:   200,
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(entry.ID, "req-1", "CARD_FREEZE", "card", "c1", "", "10.0.0.1", 200, entry.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}
