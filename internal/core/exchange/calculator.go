package exchange

import (
	"zerah-finance/internal/core/domain"
	"zerah-finance/pkg/apperror"

	"github.com/shopspring/decimal"
)

// FeeKind selects how a FeePolicy computes its fee.
type FeeKind string

const (
	// FeeFlat charges Value on top of the principal, billed separately.
	FeeFlat FeeKind = "flat"
	// FeePercentage deducts amount*Value from the principal before conversion.
	FeePercentage FeeKind = "percentage"
)

// FeePolicy is the fee rule applied to a conversion.
type FeePolicy struct {
	Kind  FeeKind         `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// FlatFee returns a flat fee policy.
func FlatFee(v decimal.Decimal) FeePolicy { return FeePolicy{Kind: FeeFlat, Value: v} }

// PercentageFee returns a percentage fee policy; 0.005 means 0.5%.
func PercentageFee(v decimal.Decimal) FeePolicy { return FeePolicy{Kind: FeePercentage, Value: v} }

func (p FeePolicy) validate() error {
	if p.Kind != FeeFlat && p.Kind != FeePercentage {
		return apperror.ErrInvalidInput("unknown fee policy " + string(p.Kind))
	}
	if p.Value.IsNegative() {
		return apperror.ErrInvalidInput("fee value must not be negative")
	}
	return nil
}

// Quote is the priced outcome of a conversion. Amount is what the source
// wallet is debited; ConvertedAmount is what the destination receives.
type Quote struct {
	Amount          decimal.Decimal `json:"amount"`
	From            domain.Currency `json:"from"`
	To              domain.Currency `json:"to"`
	Fee             decimal.Decimal `json:"fee"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	Rate            decimal.Decimal `json:"rate"`
	Policy          FeePolicy       `json:"policy"`
}

// Calculator prices conversions against a RateTable.
type Calculator struct {
	rates *RateTable
}

// NewCalculator creates a Calculator backed by rates.
func NewCalculator(rates *RateTable) *Calculator {
	return &Calculator{rates: rates}
}

// Rates exposes the underlying table.
func (c *Calculator) Rates() *RateTable {
	return c.rates
}

// Convert prices amount of from into to under policy. Money values are
// rounded to two places; the rate is kept at full precision.
func (c *Calculator) Convert(amount decimal.Decimal, from, to domain.Currency, policy FeePolicy) (Quote, error) {
	if !amount.IsPositive() {
		return Quote{}, apperror.ErrInvalidAmount()
	}
	if err := policy.validate(); err != nil {
		return Quote{}, err
	}
	rate, err := c.rates.Lookup(from, to)
	if err != nil {
		return Quote{}, err
	}

	var fee, net decimal.Decimal
	switch policy.Kind {
	case FeePercentage:
		fee = domain.RoundMoney(amount.Mul(policy.Value))
		net = amount.Sub(fee)
	case FeeFlat:
		fee = domain.RoundMoney(policy.Value)
		net = amount
	}
	if !net.IsPositive() {
		return Quote{}, apperror.ErrInvalidAmount()
	}
	// Amounts too small to survive conversion would credit nothing.
	converted := domain.RoundMoney(net.Mul(rate))
	if !converted.IsPositive() {
		return Quote{}, apperror.ErrInvalidAmount()
	}

	return Quote{
		Amount:          amount,
		From:            from,
		To:              to,
		Fee:             fee,
		NetAmount:       net,
		ConvertedAmount: converted,
		Rate:            rate,
		Policy:          policy,
	}, nil
}
