package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedWallets returns the wallets every session starts with.
func SeedWallets() Wallets {
	return Wallets{
		{ID: "1", Currency: CurrencyUSD, Balance: decimal.RequireFromString("12450.50"), Symbol: CurrencyUSD.Symbol()},
		{ID: "2", Currency: CurrencyEUR, Balance: decimal.RequireFromString("3200.00"), Symbol: CurrencyEUR.Symbol()},
		{ID: "3", Currency: CurrencyGBP, Balance: decimal.RequireFromString("850.75"), Symbol: CurrencyGBP.Symbol()},
		{ID: "4", Currency: CurrencyNGN, Balance: decimal.RequireFromString("1250000.00"), Symbol: CurrencyNGN.Symbol()},
	}
}

// SeedTransactions returns the demo activity log, most recent first.
func SeedTransactions() []Transaction {
	entry := func(id string, typ TransactionType, amount string, c Currency, desc, date string) Transaction {
		created, _ := time.Parse(DateLayout, date)
		return Transaction{
			ID:          id,
			Type:        typ,
			Amount:      decimal.RequireFromString(amount),
			Currency:    c,
			Description: desc,
			Date:        date,
			Status:      TransactionStatusCompleted,
			CreatedAt:   created,
		}
	}
	return []Transaction{
		entry("t1", TransactionTypeIncoming, "5000", CurrencyUSD, "Freelance Payment - Upwork", "2023-11-20"),
		entry("t2", TransactionTypeOutgoing, "15.99", CurrencyUSD, "Netflix Subscription", "2023-11-19"),
		entry("t3", TransactionTypeConversion, "1200", CurrencyEUR, "USD to EUR Conversion", "2023-11-18"),
		entry("t4", TransactionTypeOutgoing, "450", CurrencyGBP, "International Transfer - Tuition", "2023-11-15"),
	}
}

// SeedCards returns the virtual cards every session starts with.
func SeedCards() []VirtualCard {
	return []VirtualCard{
		{
			ID:         "c1",
			CardNumber: "4582112233445566",
			Expiry:     "12/26",
			CVV:        "123",
			Type:       CardTypeVisa,
			IsActive:   true,
			Currency:   CurrencyUSD,
			Limit:      decimal.NewFromInt(5000),
		},
	}
}

// EmptyWallets returns the supported wallets with zero balances.
func EmptyWallets() Wallets {
	ws := SeedWallets()
	for i := range ws {
		ws[i].Balance = decimal.Zero
	}
	return ws
}
