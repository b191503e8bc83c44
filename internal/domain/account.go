package domain

import (
	"github.com/shopspring/decimal"
)

// AccountProfile holds the identity fields of a bank customer. Profiles are
// owned by the account directory; this engine only reads them.
type AccountProfile struct {
	Username string
	Name     string
	Surname  string
}

// CashPosition is one cash account: a public account number, its owner and
// the current available balance. InternalID is the database sequence id the
// balance sink is keyed by.
type CashPosition struct {
	InternalID  int64
	Number      string
	Username    string
	Description string
	Balance     decimal.Decimal
}
