package service

import (
	"context"
	"fmt"

	"zerah-finance/internal/core/domain"
	"zerah-finance/internal/core/ports"

	"github.com/rs/zerolog"
)

// JournalService mirrors committed operations into Postgres. It is a
// ports.CommitListener; the in-memory ledger remains the source of truth.
type JournalService struct {
	txRepo     ports.TransactionRepository
	walletRepo ports.WalletRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	txRepo ports.TransactionRepository,
	walletRepo ports.WalletRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *JournalService {
	return &JournalService{
		txRepo:     txRepo,
		walletRepo: walletRepo,
		transactor: transactor,
		log:        log,
	}
}

// OnCommitted writes the transaction and the resulting balances in one DB transaction.
func (s *JournalService) OnCommitted(ctx context.Context, commit domain.Commit) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin journal tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	tx := commit.Transaction
	if err := s.txRepo.Create(ctx, dbTx, &tx); err != nil {
		return fmt.Errorf("journal transaction %s: %w", tx.ID, err)
	}
	for _, w := range commit.Wallets {
		if err := s.walletRepo.UpsertBalance(ctx, dbTx, w); err != nil {
			return fmt.Errorf("journal balance %s: %w", w.Currency, err)
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit journal tx: %w", err)
	}

	s.log.Debug().Str("tx_id", tx.ID).Int("wallets", len(commit.Wallets)).Msg("journal written")
	return nil
}
