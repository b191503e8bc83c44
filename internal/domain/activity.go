package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityEntry is one append-only line in an account's transaction history.
// AvailableBalance is the balance snapshot after the entry's delta applied.
type ActivityEntry struct {
	ID               int64
	AccountNumber    string
	Description      string
	Amount           decimal.Decimal
	AvailableBalance decimal.Decimal
	Date             time.Time
}
