package types

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency Currency
		want     string
	}{
		{
			name:     "no rounding needed",
			amount:   "100.00",
			currency: CurrencyUSD,
			want:     "100",
		},
		{
			name:     "round down below midpoint",
			amount:   "2.344",
			currency: CurrencyUSD,
			want:     "2.34",
		},
		{
			name:     "midpoint rounds away from zero",
			amount:   "2.345",
			currency: CurrencyUSD,
			want:     "2.35",
		},
		{
			name:     "negative midpoint rounds away from zero",
			amount:   "-2.345",
			currency: CurrencyUSD,
			want:     "-2.35",
		},
		{
			name:     "classic banker's rounding trap",
			amount:   "1.005",
			currency: CurrencyUSD,
			want:     "1.01",
		},
		{
			name:     "negative classic trap",
			amount:   "-1.005",
			currency: CurrencyEUR,
			want:     "-1.01",
		},
		{
			name:     "above midpoint rounds up",
			amount:   "0.996",
			currency: CurrencyGBP,
			want:     "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundAmount(decimal.RequireFromString(tt.amount), tt.currency)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
				"expected %s, got %s", tt.want, got)
		})
	}
}

func TestPercentOf(t *testing.T) {
	got := PercentOf(decimal.NewFromInt(250), decimal.NewFromInt(10))
	assert.True(t, decimal.NewFromInt(25).Equal(got))

	got = PercentOf(decimal.NewFromInt(200), decimal.Zero)
	assert.True(t, got.IsZero())

	// full precision is preserved, rounding happens at the caller
	got = PercentOf(decimal.RequireFromString("33.33"), decimal.RequireFromString("7.5"))
	assert.True(t, decimal.RequireFromString("2.49975").Equal(got))
}

func TestMultiplyAndAddAmounts(t *testing.T) {
	product := MultiplyAmounts(decimal.RequireFromString("1.5"), decimal.RequireFromString("99.99"))
	assert.True(t, decimal.RequireFromString("149.985").Equal(product))

	sum := AddAmounts(decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2"))
	assert.True(t, decimal.RequireFromString("0.3").Equal(sum))
}

func TestCurrencyValidate(t *testing.T) {
	assert.NoError(t, CurrencyUSD.Validate())
	assert.NoError(t, CurrencyINR.Validate())
	assert.Error(t, Currency("xyz").Validate())
	assert.Error(t, Currency("").Validate())
}

func TestDateFormat(t *testing.T) {
	date := time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "03/07/2025", DateFormatMDY.Format(date))
	assert.Equal(t, "07/03/2025", DateFormatDMY.Format(date))
	assert.Equal(t, "2025-03-07", DateFormatYMD.Format(date))

	assert.Error(t, DateFormat("MM-DD-YY").Validate())
}

func TestNumberingConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultNumberingConfig().Validate())

	bad := DefaultNumberingConfig()
	bad.SuffixLength = 0
	assert.Error(t, bad.Validate())

	bad = DefaultNumberingConfig()
	bad.StartSequence = 0
	assert.Error(t, bad.Validate())
}
