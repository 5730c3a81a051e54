// Package ledger holds the pure wallet arithmetic, the append-only activity
// log and the transaction builder. Nothing here is safe for concurrent use on
// its own; the ledger service serializes access.
package ledger

import (
	"fmt"

	"zerah-finance/internal/core/domain"
	"zerah-finance/pkg/apperror"

	"github.com/shopspring/decimal"
)

// Direction is the side of a posting.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// Posting moves Amount into or out of the wallet for Currency.
type Posting struct {
	Direction Direction
	Currency  domain.Currency
	Amount    decimal.Decimal
}

// DebitOf builds a debit posting.
func DebitOf(c domain.Currency, amount decimal.Decimal) Posting {
	return Posting{Direction: Debit, Currency: c, Amount: amount}
}

// CreditOf builds a credit posting.
func CreditOf(c domain.Currency, amount decimal.Decimal) Posting {
	return Posting{Direction: Credit, Currency: c, Amount: amount}
}

// ApplyDebit returns a copy of wallets with amount removed from c's balance.
func ApplyDebit(wallets domain.Wallets, c domain.Currency, amount decimal.Decimal) (domain.Wallets, error) {
	return Apply(wallets, DebitOf(c, amount))
}

// ApplyCredit returns a copy of wallets with amount added to c's balance.
func ApplyCredit(wallets domain.Wallets, c domain.Currency, amount decimal.Decimal) (domain.Wallets, error) {
	return Apply(wallets, CreditOf(c, amount))
}

// Apply applies every posting to a copy of wallets. Either all postings
// succeed and the copy is returned, or the first failure is returned and the
// input is left as it was.
func Apply(wallets domain.Wallets, postings ...Posting) (domain.Wallets, error) {
	next := wallets.Clone()
	for _, p := range postings {
		if p.Amount.IsNegative() {
			return nil, apperror.ErrInvalidAmount()
		}
		i := next.Find(p.Currency)
		if i < 0 {
			return nil, fmt.Errorf("%s wallet: %w", p.Currency, apperror.ErrUnknownCurrency(string(p.Currency)))
		}
		switch p.Direction {
		case Debit:
			if next[i].Balance.LessThan(p.Amount) {
				return nil, apperror.ErrInsufficientFunds()
			}
			next[i].Balance = next[i].Balance.Sub(p.Amount)
		case Credit:
			next[i].Balance = next[i].Balance.Add(p.Amount)
		default:
			return nil, apperror.ErrInvalidInput("unknown posting direction " + string(p.Direction))
		}
	}
	return next, nil
}
