package pdf

import (
	"github.com/billaged/billaged/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// float64 carries minor-unit precision only up to this magnitude; larger
// amounts skip the grouped rendering and use the exact fixed-point form.
var maxGroupedAmount = decimal.NewFromInt(1_000_000_000_000)

// FormatAmount renders a monetary amount with the currency's symbol and the
// digit grouping/decimal convention of the region the currency maps to.
func FormatAmount(amount decimal.Decimal, currency types.Currency) string {
	rounded := types.RoundAmount(amount, currency)
	if rounded.Abs().GreaterThan(maxGroupedAmount) {
		return currency.Symbol() + rounded.StringFixed(currency.Exponent())
	}

	printer := message.NewPrinter(currency.Locale())
	value, _ := rounded.Float64()
	return currency.Symbol() + printer.Sprintf("%v",
		number.Decimal(value, number.Scale(int(currency.Exponent()))))
}

// FormatQuantity renders a quantity without trailing zeros
func FormatQuantity(quantity decimal.Decimal) string {
	return quantity.String()
}

// FormatPercent renders a tax rate as a percentage
func FormatPercent(rate decimal.Decimal) string {
	return rate.String() + "%"
}
