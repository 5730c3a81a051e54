package domain

import "github.com/shopspring/decimal"

// Wallet holds the balance for a single currency.
type Wallet struct {
	ID       string          `json:"id"`
	Currency Currency        `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	Symbol   string          `json:"symbol"`
}

// Wallets is the ordered wallet collection. At most one wallet per currency.
type Wallets []Wallet

// Find returns the index of the wallet for c, or -1.
func (ws Wallets) Find(c Currency) int {
	for i := range ws {
		if ws[i].Currency == c {
			return i
		}
	}
	return -1
}

// Get returns the wallet for c.
func (ws Wallets) Get(c Currency) (Wallet, bool) {
	if i := ws.Find(c); i >= 0 {
		return ws[i], true
	}
	return Wallet{}, false
}

// Clone returns a copy that shares no backing array with ws.
func (ws Wallets) Clone() Wallets {
	if ws == nil {
		return nil
	}
	out := make(Wallets, len(ws))
	copy(out, ws)
	return out
}
