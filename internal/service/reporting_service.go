package service

import (
	"context"

	"zerah-finance/internal/core/domain"
	"zerah-finance/internal/core/ports"
	"zerah-finance/pkg/apperror"

	"github.com/shopspring/decimal"
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	ledger ports.LedgerService
}

// NewReportingService creates a new reporting service over the ledger.
func NewReportingService(ledger ports.LedgerService) ports.ReportingService {
	return &reportingService{ledger: ledger}
}

// GetDashboardStats aggregates the activity log and current balances.
func (s *reportingService) GetDashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	txs, err := s.ledger.Transactions(ctx, ports.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	stats := &ports.DashboardStats{
		TotalTransactions: len(txs),
		ByCurrency:        make(map[domain.Currency]ports.CurrencyTotals),
		Balances:          make(map[domain.Currency]decimal.Decimal),
	}

	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionTypeIncoming:
			stats.Incoming++
		case domain.TransactionTypeOutgoing:
			stats.Outgoing++
		case domain.TransactionTypeConversion:
			stats.Conversions++
		}
		if tx.Status != domain.TransactionStatusCompleted {
			continue
		}

		totals, ok := stats.ByCurrency[tx.Currency]
		if !ok {
			totals = ports.CurrencyTotals{
				Incoming: decimal.Zero, Outgoing: decimal.Zero,
				Converted: decimal.Zero, Fees: decimal.Zero,
			}
		}
		switch tx.Type {
		case domain.TransactionTypeIncoming:
			totals.Incoming = totals.Incoming.Add(tx.Amount)
		case domain.TransactionTypeOutgoing:
			totals.Outgoing = totals.Outgoing.Add(tx.Amount)
		case domain.TransactionTypeConversion:
			totals.Converted = totals.Converted.Add(tx.Amount)
		}
		totals.Fees = totals.Fees.Add(tx.Fee())
		stats.ByCurrency[tx.Currency] = totals
	}

	for _, w := range s.ledger.Wallets(ctx) {
		stats.Balances[w.Currency] = w.Balance
	}

	return stats, nil
}

// Recent returns the n latest transactions.
func (s *reportingService) Recent(ctx context.Context, n int) ([]domain.Transaction, error) {
	if n <= 0 || n > 100 {
		return nil, apperror.Validation("n must be between 1 and 100")
	}
	return s.ledger.Transactions(ctx, ports.TransactionFilter{Limit: n})
}
