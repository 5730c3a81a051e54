package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"zerah-finance/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// transactionDetails is the JSONB payload holding the kind-specific fields.
type transactionDetails struct {
	Transfer   *domain.TransferDetails   `json:"transfer,omitempty"`
	Conversion *domain.ConversionDetails `json:"conversion,omitempty"`
}

// Create appends t to the journal. This MUST be called within a transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	details, err := json.Marshal(transactionDetails{Transfer: t.Transfer, Conversion: t.Conversion})
	if err != nil {
		return fmt.Errorf("encode transaction details: %w", err)
	}

	query := `INSERT INTO ledger_transactions (id, type, amount, currency, description, tx_date, status, fee, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING`

	_, err = tx.Exec(ctx, query,
		t.ID, string(t.Type), t.Amount.StringFixed(2), string(t.Currency),
		t.Description, t.Date, string(t.Status), t.Fee().StringFixed(2),
		details, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger transaction: %w", err)
	}
	return nil
}
