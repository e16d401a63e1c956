package invoice

import (
	"testing"

	ierr "github.com/billaged/billaged/internal/errors"
	"github.com/billaged/billaged/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLineItem(qty, rate, taxRate string) *LineItem {
	return &LineItem{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
		Description: "Consulting services",
		Quantity:    decimal.RequireFromString(qty),
		Rate:        decimal.RequireFromString(rate),
		TaxRate:     decimal.RequireFromString(taxRate),
	}
}

func TestComputeTotals(t *testing.T) {
	items := []*LineItem{
		newLineItem("2", "100", "10"),
		newLineItem("1", "50", "0"),
	}

	totals, err := ComputeTotals(items, decimal.Zero, types.CurrencyUSD)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(200).Equal(items[0].Amount))
	assert.True(t, decimal.NewFromInt(50).Equal(items[1].Amount))
	assert.True(t, decimal.NewFromInt(250).Equal(totals.Subtotal), "subtotal %s", totals.Subtotal)
	assert.True(t, decimal.NewFromInt(20).Equal(totals.TaxAmount), "tax %s", totals.TaxAmount)
	assert.True(t, decimal.NewFromInt(270).Equal(totals.TotalAmount), "total %s", totals.TotalAmount)
}

func TestComputeTotalsFractionalRounding(t *testing.T) {
	// each item amount rounds individually before the subtotal sums them,
	// so 3 x 0.335 becomes 3 x 0.34, not round(1.005)
	items := []*LineItem{
		newLineItem("1", "0.335", "0"),
		newLineItem("1", "0.335", "0"),
		newLineItem("1", "0.335", "0"),
	}

	totals, err := ComputeTotals(items, decimal.Zero, types.CurrencyUSD)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("0.34").Equal(items[0].Amount))
	assert.True(t, decimal.RequireFromString("1.02").Equal(totals.Subtotal))
}

func TestComputeTotalsWithDiscount(t *testing.T) {
	items := []*LineItem{newLineItem("2", "100", "10")}

	totals, err := ComputeTotals(items, decimal.NewFromInt(20), types.CurrencyUSD)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(200).Equal(totals.Subtotal))
	assert.True(t, decimal.NewFromInt(20).Equal(totals.TaxAmount))
	assert.True(t, decimal.NewFromInt(200).Equal(totals.TotalAmount))
}

func TestComputeTotalsRejections(t *testing.T) {
	t.Run("no line items", func(t *testing.T) {
		_, err := ComputeTotals(nil, decimal.Zero, types.CurrencyUSD)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("negative discount", func(t *testing.T) {
		items := []*LineItem{newLineItem("1", "100", "0")}
		_, err := ComputeTotals(items, decimal.NewFromInt(-5), types.CurrencyUSD)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("discount exceeding subtotal plus tax", func(t *testing.T) {
		items := []*LineItem{newLineItem("1", "100", "0")}
		_, err := ComputeTotals(items, decimal.NewFromInt(150), types.CurrencyUSD)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("zero quantity item", func(t *testing.T) {
		item := newLineItem("0", "100", "0")
		_, err := ComputeTotals([]*LineItem{item}, decimal.Zero, types.CurrencyUSD)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("negative rate item", func(t *testing.T) {
		item := newLineItem("1", "-10", "0")
		_, err := ComputeTotals([]*LineItem{item}, decimal.Zero, types.CurrencyUSD)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("tax rate above 100", func(t *testing.T) {
		item := newLineItem("1", "100", "101")
		_, err := ComputeTotals([]*LineItem{item}, decimal.Zero, types.CurrencyUSD)
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestRecomputeTotalsIdempotent(t *testing.T) {
	inv := &Invoice{
		Currency: types.CurrencyUSD,
		LineItems: []*LineItem{
			newLineItem("3", "33.33", "18"),
			newLineItem("0.5", "120", "0"),
		},
		DiscountAmount: decimal.NewFromInt(10),
	}

	require.NoError(t, inv.RecomputeTotals())
	first := *inv

	require.NoError(t, inv.RecomputeTotals())
	assert.True(t, first.Subtotal.Equal(inv.Subtotal))
	assert.True(t, first.TaxAmount.Equal(inv.TaxAmount))
	assert.True(t, first.TotalAmount.Equal(inv.TotalAmount))

	expectedTotal := types.RoundAmount(inv.Subtotal.Add(inv.TaxAmount).Sub(inv.DiscountAmount), inv.Currency)
	assert.True(t, expectedTotal.Equal(inv.TotalAmount))
}
