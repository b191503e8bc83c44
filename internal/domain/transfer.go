package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// descriptionLimit is the number of leading characters of a transfer
// description that make it into activity entries.
const descriptionLimit = 12

// TransferProposal is a not-yet-committed transfer. It is built by the
// workflow on submission and lives only in the pending-transfer store until
// it is confirmed or overwritten. Fee holds the absolute fee amount, already
// resolved from the submitted percentage.
type TransferProposal struct {
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	Username    string          `json:"username"`
	Date        time.Time       `json:"date"`
}

// LedgerRecord is the persisted record of one confirmed transfer. Amount and
// Fee are always rounded to 2 decimal places. Records are created exactly
// once and never updated or deleted by this engine.
type LedgerRecord struct {
	ID          int64
	FromAccount string
	ToAccount   string
	Description string
	Amount      decimal.Decimal
	Fee         decimal.Decimal
	Username    string
	Date        time.Time
}

// Record returns the ledger record for a confirmed proposal. The sequence id
// is assigned by the repository on insert.
func (p *TransferProposal) Record() *LedgerRecord {
	return &LedgerRecord{
		FromAccount: p.FromAccount,
		ToAccount:   p.ToAccount,
		Description: p.Description,
		Amount:      p.Amount,
		Fee:         p.Fee,
		Username:    p.Username,
		Date:        p.Date,
	}
}

// TruncateDescription keeps the first 12 characters of a transfer
// description, or the whole string when it is shorter. Not word-boundary
// aware; counts characters, not bytes.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= descriptionLimit {
		return s
	}

	return string(runes[:descriptionLimit])
}
