package postgres

import (
	"context"
	"fmt"
	"time"

	"zerah-finance/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
	now  func() time.Time
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool, now: time.Now}
}

// UpsertBalance records the latest balance of w. This MUST be called within a transaction.
func (r *WalletRepo) UpsertBalance(ctx context.Context, tx pgx.Tx, w domain.Wallet) error {
	query := `INSERT INTO wallet_balances (wallet_id, currency, balance, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (currency) DO UPDATE
		SET wallet_id = EXCLUDED.wallet_id, balance = EXCLUDED.balance, updated_at = EXCLUDED.updated_at`

	_, err := tx.Exec(ctx, query, w.ID, string(w.Currency), w.Balance.StringFixed(2), r.now().UTC())
	if err != nil {
		return fmt.Errorf("upsert wallet balance: %w", err)
	}
	return nil
}
