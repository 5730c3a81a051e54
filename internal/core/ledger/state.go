package ledger

import "zerah-finance/internal/core/domain"

// State is an immutable snapshot of the wallets and the activity log.
// The log is ordered most recent first.
type State struct {
	wallets domain.Wallets
	log     []domain.Transaction
}

// NewState creates a State from the given wallets and log.
func NewState(wallets domain.Wallets, log []domain.Transaction) State {
	l := make([]domain.Transaction, len(log))
	copy(l, log)
	return State{wallets: wallets.Clone(), log: l}
}

// Wallets returns a copy of the wallet collection.
func (s State) Wallets() domain.Wallets {
	return s.wallets.Clone()
}

// Wallet returns the wallet for c.
func (s State) Wallet(c domain.Currency) (domain.Wallet, bool) {
	return s.wallets.Get(c)
}

// Len returns the number of log entries.
func (s State) Len() int {
	return len(s.log)
}

// Commit returns the successor state: wallets replaced wholesale and tx
// prepended to the log.
func (s State) Commit(wallets domain.Wallets, tx domain.Transaction) State {
	l := make([]domain.Transaction, 0, len(s.log)+1)
	l = append(l, tx)
	l = append(l, s.log...)
	return State{wallets: wallets.Clone(), log: l}
}

// Filter selects log entries. Zero values match everything.
type Filter struct {
	Currency domain.Currency
	Type     domain.TransactionType
	Limit    int
}

// Transactions returns the log entries matching f, most recent first.
func (s State) Transactions(f Filter) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(s.log))
	for _, tx := range s.log {
		if f.Currency != "" && tx.Currency != f.Currency {
			continue
		}
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		out = append(out, tx)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// History returns the entries recorded against c's wallet.
func (s State) History(c domain.Currency) []domain.Transaction {
	return s.Transactions(Filter{Currency: c})
}

// Recent returns at most n of the latest entries.
func (s State) Recent(n int) []domain.Transaction {
	if n <= 0 {
		return []domain.Transaction{}
	}
	return s.Transactions(Filter{Limit: n})
}
