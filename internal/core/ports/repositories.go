package ports

import (
	"context"

	"zerah-finance/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WalletRepository writes balance snapshots to the journal database.
// The in-memory ledger stays authoritative; snapshots are never read back.
type WalletRepository interface {
	UpsertBalance(ctx context.Context, tx pgx.Tx, wallet domain.Wallet) error
}

// TransactionRepository appends committed transactions to the journal database.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
