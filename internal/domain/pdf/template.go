package pdf

import (
	"github.com/billaged/billaged/internal/types"
	"github.com/samber/lo"
)

// Template holds the presentation options for a rendered invoice.
// Every field has a documented default; malformed or missing options fall
// back to their defaults instead of failing the render. The section
// toggles are pointers so that an omitted toggle is distinguishable from
// an explicit false.
type Template struct {
	PrimaryColor    string `json:"primary_color,omitempty"`
	SecondaryColor  string `json:"secondary_color,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	AccentColor     string `json:"accent_color,omitempty"`

	HeadingFont string `json:"heading_font,omitempty"`
	BodyFont    string `json:"body_font,omitempty"`

	ShowLogo           *bool `json:"show_logo,omitempty"`
	ShowCompanyDetails *bool `json:"show_company_details,omitempty"`
	ShowPaymentTerms   *bool `json:"show_payment_terms,omitempty"`

	PaymentTermsText   string `json:"payment_terms_text,omitempty"`
	FooterText         string `json:"footer_text,omitempty"`
	TermsAndConditions string `json:"terms_and_conditions,omitempty"`

	Currency   types.Currency   `json:"currency,omitempty"`
	DateFormat types.DateFormat `json:"date_format,omitempty"`
}

// DefaultTemplate returns the documented defaults for every option
func DefaultTemplate() Template {
	return Template{
		PrimaryColor:       "#1a1a2e",
		SecondaryColor:     "#4a4e69",
		TextColor:          "#22223b",
		BackgroundColor:    "#ffffff",
		AccentColor:        "#3b82f6",
		HeadingFont:        "Helvetica",
		BodyFont:           "Helvetica",
		ShowLogo:           lo.ToPtr(true),
		ShowCompanyDetails: lo.ToPtr(true),
		ShowPaymentTerms:   lo.ToPtr(true),
		FooterText:         "Thank you for your business",
		Currency:           types.CurrencyUSD,
		DateFormat:         types.DateFormatMDY,
	}
}

// WithDefaults fills every unset or unrecognized option from the defaults
func (t Template) WithDefaults() Template {
	def := DefaultTemplate()

	if t.PrimaryColor == "" {
		t.PrimaryColor = def.PrimaryColor
	}
	if t.SecondaryColor == "" {
		t.SecondaryColor = def.SecondaryColor
	}
	if t.TextColor == "" {
		t.TextColor = def.TextColor
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = def.BackgroundColor
	}
	if t.AccentColor == "" {
		t.AccentColor = def.AccentColor
	}
	if t.HeadingFont == "" {
		t.HeadingFont = def.HeadingFont
	}
	if t.BodyFont == "" {
		t.BodyFont = def.BodyFont
	}
	if t.ShowLogo == nil {
		t.ShowLogo = def.ShowLogo
	}
	if t.ShowCompanyDetails == nil {
		t.ShowCompanyDetails = def.ShowCompanyDetails
	}
	if t.ShowPaymentTerms == nil {
		t.ShowPaymentTerms = def.ShowPaymentTerms
	}
	if t.FooterText == "" {
		t.FooterText = def.FooterText
	}
	if t.Currency.Validate() != nil {
		t.Currency = def.Currency
	}
	if t.DateFormat.Validate() != nil {
		t.DateFormat = def.DateFormat
	}

	return t
}
