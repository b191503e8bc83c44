package domain

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeFee converts a percentage fee rate into an absolute fee amount:
// amount * feeRatePercent / 100, rounded to 2 places (banker's rounding).
// It performs no validation; a zero amount simply yields a zero fee.
func ComputeFee(amount, feeRatePercent decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(feeRatePercent).Div(oneHundred))
}
