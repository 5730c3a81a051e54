// Package exchange holds the fixed rate table and the fee-aware conversion calculator.
package exchange

import (
	"fmt"
	"sort"

	"zerah-finance/internal/core/domain"
	"zerah-finance/pkg/apperror"

	"github.com/shopspring/decimal"
)

// Rate is one directed entry of the derived rate table.
type Rate struct {
	From domain.Currency `json:"from"`
	To   domain.Currency `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// RateTable stores one "units per USD" figure per currency and derives every
// pair from it, which keeps Lookup(a, b) and Lookup(b, a) reciprocal.
type RateTable struct {
	perUSD map[domain.Currency]decimal.Decimal
}

// DefaultRateTable returns the hard-coded simulation rates.
func DefaultRateTable() *RateTable {
	return &RateTable{perUSD: map[domain.Currency]decimal.Decimal{
		domain.CurrencyUSD: decimal.NewFromInt(1),
		domain.CurrencyEUR: decimal.RequireFromString("0.83"),
		domain.CurrencyGBP: decimal.RequireFromString("0.73"),
		domain.CurrencyNGN: decimal.NewFromInt(1450),
	}}
}

// NewRateTable builds a table from currency code -> units per USD.
func NewRateTable(perUSD map[string]decimal.Decimal) (*RateTable, error) {
	t := &RateTable{perUSD: make(map[domain.Currency]decimal.Decimal, len(perUSD))}
	for code, r := range perUSD {
		c, ok := domain.ParseCurrency(code)
		if !ok {
			return nil, apperror.ErrUnknownCurrency(code)
		}
		if !r.IsPositive() {
			return nil, apperror.ErrInvalidInput(fmt.Sprintf("rate for %s must be positive", c))
		}
		t.perUSD[c] = r
	}
	return t, nil
}

// Lookup returns r such that an amount in from times r is the amount in to.
func (t *RateTable) Lookup(from, to domain.Currency) (decimal.Decimal, error) {
	fromRate, ok := t.perUSD[from]
	if !ok {
		return decimal.Zero, apperror.ErrUnknownCurrency(string(from))
	}
	toRate, ok := t.perUSD[to]
	if !ok {
		return decimal.Zero, apperror.ErrUnknownCurrency(string(to))
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	return toRate.Div(fromRate), nil
}

// Pairs lists every directed pair between distinct currencies in the table.
func (t *RateTable) Pairs() []Rate {
	codes := make([]domain.Currency, 0, len(t.perUSD))
	for c := range t.perUSD {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	out := make([]Rate, 0, len(codes)*(len(codes)-1))
	for _, from := range codes {
		for _, to := range codes {
			if from == to {
				continue
			}
			out = append(out, Rate{From: from, To: to, Rate: t.perUSD[to].Div(t.perUSD[from])})
		}
	}
	return out
}
