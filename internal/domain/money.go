package domain

import (
	"github.com/shopspring/decimal"
)

// RoundMoney rounds a monetary value to 2 decimal places using banker's
// rounding (round half to even). Every rounded amount, fee and balance in
// the engine goes through this helper so the rounding mode cannot drift.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}
