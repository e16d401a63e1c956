package types

import (
	ierr "github.com/billaged/billaged/internal/errors"
	"github.com/samber/lo"
	"golang.org/x/text/language"
)

// Currency is a supported ISO 4217 currency code (lowercase)
type Currency string

const (
	CurrencyUSD Currency = "usd"
	CurrencyEUR Currency = "eur"
	CurrencyGBP Currency = "gbp"
	CurrencyINR Currency = "inr"
	CurrencyAUD Currency = "aud"
	CurrencyCAD Currency = "cad"
	CurrencySGD Currency = "sgd"
)

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Validate() error {
	allowed := []Currency{
		CurrencyUSD,
		CurrencyEUR,
		CurrencyGBP,
		CurrencyINR,
		CurrencyAUD,
		CurrencyCAD,
		CurrencySGD,
	}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid currency").
			WithHint("Please provide a supported currency code").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// currencyInfo carries the display and formatting convention for a currency.
// The code determines the symbol, the minor-unit exponent and the region
// convention used for digit grouping.
type currencyInfo struct {
	symbol   string
	exponent int32
	locale   language.Tag
}

var currencyTable = map[Currency]currencyInfo{
	CurrencyUSD: {symbol: "$", exponent: 2, locale: language.AmericanEnglish},
	CurrencyEUR: {symbol: "€", exponent: 2, locale: language.German},
	CurrencyGBP: {symbol: "£", exponent: 2, locale: language.BritishEnglish},
	CurrencyINR: {symbol: "₹", exponent: 2, locale: language.MustParse("en-IN")},
	CurrencyAUD: {symbol: "AU$", exponent: 2, locale: language.MustParse("en-AU")},
	CurrencyCAD: {symbol: "CA$", exponent: 2, locale: language.MustParse("en-CA")},
	CurrencySGD: {symbol: "S$", exponent: 2, locale: language.MustParse("en-SG")},
}

// Symbol returns the symbol for the currency code.
// If the code is not found, it returns the code itself.
func (c Currency) Symbol() string {
	if info, ok := currencyTable[c]; ok {
		return info.symbol
	}
	return string(c)
}

// Exponent returns the number of minor-unit decimal places for the currency.
// All currently supported currencies use 2.
func (c Currency) Exponent() int32 {
	if info, ok := currencyTable[c]; ok {
		return info.exponent
	}
	return 2
}

// Locale returns the language tag whose grouping and decimal conventions
// are used when formatting amounts in this currency.
func (c Currency) Locale() language.Tag {
	if info, ok := currencyTable[c]; ok {
		return info.locale
	}
	return language.AmericanEnglish
}
