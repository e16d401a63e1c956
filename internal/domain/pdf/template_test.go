package pdf

import (
	"testing"

	"github.com/billaged/billaged/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefaultsFillsOmittedOptions(t *testing.T) {
	got := Template{}.WithDefaults()
	def := DefaultTemplate()

	assert.Equal(t, def.PrimaryColor, got.PrimaryColor)
	assert.Equal(t, def.HeadingFont, got.HeadingFont)
	assert.Equal(t, def.FooterText, got.FooterText)
	assert.Equal(t, def.Currency, got.Currency)
	assert.Equal(t, def.DateFormat, got.DateFormat)

	// omitted toggles fall back to true, the documented default
	require.NotNil(t, got.ShowLogo)
	require.NotNil(t, got.ShowCompanyDetails)
	require.NotNil(t, got.ShowPaymentTerms)
	assert.True(t, *got.ShowLogo)
	assert.True(t, *got.ShowCompanyDetails)
	assert.True(t, *got.ShowPaymentTerms)
}

func TestWithDefaultsKeepsExplicitFalse(t *testing.T) {
	got := Template{
		ShowCompanyDetails: lo.ToPtr(false),
		ShowPaymentTerms:   lo.ToPtr(false),
	}.WithDefaults()

	assert.False(t, *got.ShowCompanyDetails)
	assert.False(t, *got.ShowPaymentTerms)
	assert.True(t, *got.ShowLogo)
}

func TestWithDefaultsReplacesMalformedEnums(t *testing.T) {
	got := Template{
		Currency:   types.Currency("doge"),
		DateFormat: types.DateFormat("DD.MM.YY"),
	}.WithDefaults()

	assert.Equal(t, types.CurrencyUSD, got.Currency)
	assert.Equal(t, types.DateFormatMDY, got.DateFormat)
}

func TestWithDefaultsKeepsProvidedValues(t *testing.T) {
	got := Template{
		PrimaryColor: "#ff0000",
		Currency:     types.CurrencyEUR,
		DateFormat:   types.DateFormatYMD,
	}.WithDefaults()

	assert.Equal(t, "#ff0000", got.PrimaryColor)
	assert.Equal(t, types.CurrencyEUR, got.Currency)
	assert.Equal(t, types.DateFormatYMD, got.DateFormat)
}
