package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CardType is the card network.
type CardType string

const (
	CardTypeVisa       CardType = "VISA"
	CardTypeMastercard CardType = "MASTERCARD"
)

// VirtualCard is a simulated card linked to a wallet currency.
type VirtualCard struct {
	ID         string          `json:"id"`
	CardNumber string          `json:"-"`
	Expiry     string          `json:"expiry"`
	CVV        string          `json:"-"`
	Type       CardType        `json:"type"`
	IsActive   bool            `json:"is_active"`
	Currency   Currency        `json:"currency"`
	Limit      decimal.Decimal `json:"limit"`
}

// Last4 returns the final four digits of the card number.
func (c *VirtualCard) Last4() string {
	n := strings.ReplaceAll(c.CardNumber, " ", "")
	if len(n) <= 4 {
		return n
	}
	return n[len(n)-4:]
}

// MaskedNumber renders the card number as "**** **** **** 5566".
func (c *VirtualCard) MaskedNumber() string {
	return "**** **** **** " + c.Last4()
}
