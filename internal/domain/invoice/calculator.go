package invoice

import (
	"github.com/billaged/billaged/internal/types"
	"github.com/shopspring/decimal"
)

// Totals holds the monetary aggregates derived from a list of line items.
type Totals struct {
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
}

// ComputeTotals recomputes each item's amount from its quantity and rate and
// derives the invoice aggregates. Client-supplied amounts are never trusted;
// the only mutation performed on the input is writing back each item's
// recomputed Amount. Same inputs always produce the same outputs.
func ComputeTotals(items []*LineItem, discountAmount decimal.Decimal, currency types.Currency) (*Totals, error) {
	if len(items) == 0 {
		return nil, NewValidationError("line_items", "at least one line item is required")
	}

	if discountAmount.IsNegative() {
		return nil, NewValidationError("discount_amount", "must be non negative")
	}

	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}

		item.Amount = types.RoundAmount(types.MultiplyAmounts(item.Quantity, item.Rate), currency)
		subtotal = types.AddAmounts(subtotal, item.Amount)
		tax = types.AddAmounts(tax, types.PercentOf(item.Amount, item.TaxRate))
	}

	subtotal = types.RoundAmount(subtotal, currency)
	tax = types.RoundAmount(tax, currency)

	total := types.RoundAmount(subtotal.Add(tax).Sub(discountAmount), currency)
	if total.IsNegative() {
		// a discount exceeding subtotal + tax is a caller mistake, not
		// something to clamp silently
		return nil, NewValidationError("discount_amount", "must not exceed subtotal plus tax")
	}

	return &Totals{
		Subtotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: discountAmount,
		TotalAmount:    total,
	}, nil
}

// RecomputeTotals re-runs the line item calculator on the invoice's own
// items and stores the results. Idempotent: recomputing an already-computed
// invoice yields identical aggregates.
func (i *Invoice) RecomputeTotals() error {
	totals, err := ComputeTotals(i.LineItems, i.DiscountAmount, i.Currency)
	if err != nil {
		return err
	}

	i.Subtotal = totals.Subtotal
	i.TaxAmount = totals.TaxAmount
	i.DiscountAmount = totals.DiscountAmount
	i.TotalAmount = totals.TotalAmount
	return nil
}
