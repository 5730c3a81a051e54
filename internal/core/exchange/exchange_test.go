package exchange

import (
	"errors"
	"testing"

	"zerah-finance/internal/core/domain"
	"zerah-finance/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRateTable_Lookup(t *testing.T) {
	rt := DefaultRateTable()

	tests := []struct {
		name     string
		from, to domain.Currency
		want     string
	}{
		{"same currency", domain.CurrencyEUR, domain.CurrencyEUR, "1"},
		{"usd to ngn", domain.CurrencyUSD, domain.CurrencyNGN, "1450"},
		{"usd to eur", domain.CurrencyUSD, domain.CurrencyEUR, "0.83"},
		{"usd to gbp", domain.CurrencyUSD, domain.CurrencyGBP, "0.73"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rt.Lookup(tt.from, tt.to)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}

func TestRateTable_InverseRelation(t *testing.T) {
	rt := DefaultRateTable()

	for _, a := range domain.Currencies {
		for _, b := range domain.Currencies {
			ab, err := rt.Lookup(a, b)
			require.NoError(t, err)
			ba, err := rt.Lookup(b, a)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, ab.Mul(ba).InexactFloat64(), 1e-9, "%s/%s", a, b)
		}
	}
}

func TestRateTable_UnknownCurrency(t *testing.T) {
	rt := DefaultRateTable()

	_, err := rt.Lookup(domain.CurrencyUSD, domain.Currency("JPY"))
	assert.True(t, errors.Is(err, apperror.ErrUnknownCurrency("")))

	_, err = rt.Lookup(domain.Currency("JPY"), domain.Currency("JPY"))
	assert.True(t, errors.Is(err, apperror.ErrUnknownCurrency("")), "same-currency pair still requires a known currency")
}

func TestNewRateTable(t *testing.T) {
	rt, err := NewRateTable(map[string]decimal.Decimal{"usd": dec("1"), "EUR": dec("0.9")})
	require.NoError(t, err)

	r, err := rt.Lookup(domain.CurrencyUSD, domain.CurrencyEUR)
	require.NoError(t, err)
	assert.True(t, r.Equal(dec("0.9")))

	_, err = rt.Lookup(domain.CurrencyUSD, domain.CurrencyNGN)
	assert.True(t, errors.Is(err, apperror.ErrUnknownCurrency("")), "missing entries must not fall back to 1")

	_, err = NewRateTable(map[string]decimal.Decimal{"JPY": dec("150")})
	assert.True(t, errors.Is(err, apperror.ErrUnknownCurrency("")))

	_, err = NewRateTable(map[string]decimal.Decimal{"USD": dec("0")})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput("")))
}

func TestRateTable_Pairs(t *testing.T) {
	pairs := DefaultRateTable().Pairs()
	require.Len(t, pairs, 12)

	for _, p := range pairs {
		assert.NotEqual(t, p.From, p.To)
		if p.From == domain.CurrencyUSD && p.To == domain.CurrencyNGN {
			assert.True(t, p.Rate.Equal(dec("1450")))
		}
	}
}

func TestCalculator_Convert(t *testing.T) {
	calc := NewCalculator(DefaultRateTable())

	tests := []struct {
		name                string
		amount              string
		from, to            domain.Currency
		policy              FeePolicy
		fee, net, converted string
	}{
		{
			name: "percentage fee usd to ngn", amount: "100",
			from: domain.CurrencyUSD, to: domain.CurrencyNGN, policy: PercentageFee(dec("0.005")),
			fee: "0.50", net: "99.50", converted: "144275.00",
		},
		{
			name: "flat fee keeps principal", amount: "100",
			from: domain.CurrencyUSD, to: domain.CurrencyNGN, policy: FlatFee(dec("2.50")),
			fee: "2.50", net: "100", converted: "145000",
		},
		{
			name: "same currency", amount: "10",
			from: domain.CurrencyGBP, to: domain.CurrencyGBP, policy: PercentageFee(dec("0.005")),
			fee: "0.05", net: "9.95", converted: "9.95",
		},
		{
			name: "percentage fee rounds half up", amount: "1",
			from: domain.CurrencyUSD, to: domain.CurrencyEUR, policy: PercentageFee(dec("0.005")),
			fee: "0.01", net: "0.99", converted: "0.82",
		},
		{
			name: "zero fee", amount: "1200",
			from: domain.CurrencyUSD, to: domain.CurrencyEUR, policy: PercentageFee(decimal.Zero),
			fee: "0", net: "1200", converted: "996",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := calc.Convert(dec(tt.amount), tt.from, tt.to, tt.policy)
			require.NoError(t, err)
			assert.True(t, q.Fee.Equal(dec(tt.fee)), "fee %s", q.Fee)
			assert.True(t, q.NetAmount.Equal(dec(tt.net)), "net %s", q.NetAmount)
			assert.True(t, q.ConvertedAmount.Equal(dec(tt.converted)), "converted %s", q.ConvertedAmount)
			assert.True(t, q.Amount.Equal(dec(tt.amount)))
		})
	}
}

func TestCalculator_Convert_Errors(t *testing.T) {
	calc := NewCalculator(DefaultRateTable())
	pct := PercentageFee(dec("0.005"))

	tests := []struct {
		name    string
		amount  string
		to      domain.Currency
		policy  FeePolicy
		wantErr *apperror.AppError
	}{
		{"zero amount", "0", domain.CurrencyEUR, pct, apperror.ErrInvalidAmount()},
		{"negative amount", "-5", domain.CurrencyEUR, pct, apperror.ErrInvalidAmount()},
		{"unknown currency", "10", domain.Currency("JPY"), pct, apperror.ErrUnknownCurrency("")},
		{"negative fee", "10", domain.CurrencyEUR, FlatFee(dec("-1")), apperror.ErrInvalidInput("")},
		{"unknown policy", "10", domain.CurrencyEUR, FeePolicy{Kind: "tiered"}, apperror.ErrInvalidInput("")},
		{"fee consumes principal", "10", domain.CurrencyEUR, PercentageFee(dec("1")), apperror.ErrInvalidAmount()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Convert(dec(tt.amount), domain.CurrencyUSD, tt.to, tt.policy)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestCalculator_Convert_RoundsToZero(t *testing.T) {
	calc := NewCalculator(DefaultRateTable())

	_, err := calc.Convert(dec("0.01"), domain.CurrencyNGN, domain.CurrencyUSD, PercentageFee(decimal.Zero))
	assert.True(t, errors.Is(err, apperror.ErrInvalidAmount()), "got %v", err)

	q, err := calc.Convert(dec("14.50"), domain.CurrencyNGN, domain.CurrencyUSD, PercentageFee(decimal.Zero))
	require.NoError(t, err)
	assert.True(t, q.ConvertedAmount.Equal(dec("0.01")), "got %s", q.ConvertedAmount)
}

func TestCalculator_RoundTripWithoutFees(t *testing.T) {
	calc := NewCalculator(DefaultRateTable())
	noFee := PercentageFee(decimal.Zero)

	tests := []struct {
		name   string
		amount string
		a, b   domain.Currency
	}{
		{"usd via ngn", "123.45", domain.CurrencyUSD, domain.CurrencyNGN},
		{"gbp via usd", "850.75", domain.CurrencyGBP, domain.CurrencyUSD},
		{"eur via usd", "3200.00", domain.CurrencyEUR, domain.CurrencyUSD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			there, err := calc.Convert(dec(tt.amount), tt.a, tt.b, noFee)
			require.NoError(t, err)
			back, err := calc.Convert(there.ConvertedAmount, tt.b, tt.a, noFee)
			require.NoError(t, err)
			assert.InDelta(t, dec(tt.amount).InexactFloat64(), back.ConvertedAmount.InexactFloat64(), 0.01)
		})
	}
}
