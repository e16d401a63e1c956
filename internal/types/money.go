package types

import (
	"github.com/shopspring/decimal"
)

// Monetary arithmetic helpers. All derived monetary fields must have passed
// through RoundAmount before being stored or compared; intermediate sums are
// carried at full precision and rounded once at the end.

// RoundAmount rounds an amount to the currency's minor-unit precision using
// round-half-away-from-zero.
func RoundAmount(amount decimal.Decimal, currency Currency) decimal.Decimal {
	return amount.Round(currency.Exponent())
}

// MultiplyAmounts multiplies two fixed-point values without rounding.
func MultiplyAmounts(a, b decimal.Decimal) decimal.Decimal {
	return a.Mul(b)
}

// AddAmounts adds two fixed-point values without rounding.
func AddAmounts(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

// PercentOf returns amount * rate / 100 at full precision.
func PercentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(decimal.NewFromInt(100))
}
