package dto

import (
	"strconv"
	"strings"

	"zerah-finance/pkg/apperror"

	"github.com/shopspring/decimal"
)

// Amount is a money value as sent by the client: a JSON number or a decimal
// string. Decoding never fails; Decimal reports malformed input as
// InvalidAmount so it is not mistaken for a shape error.
type Amount struct {
	raw string
}

// UnmarshalJSON keeps the raw token for Decimal.
func (a *Amount) UnmarshalJSON(b []byte) error {
	a.raw = strings.TrimSpace(string(b))
	return nil
}

// Decimal parses the amount. A missing, null or unparseable value is
// apperror.ErrInvalidAmount.
func (a Amount) Decimal() (decimal.Decimal, error) {
	s := a.raw
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if s == "" || s == "null" {
		return decimal.Zero, apperror.ErrInvalidAmount()
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperror.ErrInvalidAmount()
	}
	return d, nil
}
