package invoice

import (
	"unicode/utf8"

	"github.com/billaged/billaged/internal/types"
	"github.com/shopspring/decimal"
)

// MaxDescriptionLength bounds the free-text description of a line item
const MaxDescriptionLength = 500

// LineItem represents a single billable row on an invoice. Line items are
// owned exclusively by their parent invoice and have no identity outside it.
type LineItem struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note,omitempty"`
	types.BaseModel
}

// Validate validates the invoice line item
func (i *LineItem) Validate() error {
	if i.Description == "" {
		return NewValidationError("description", "must not be empty")
	}

	if utf8.RuneCountInString(i.Description) > MaxDescriptionLength {
		return NewValidationError("description", "must be at most 500 characters")
	}

	if !i.Quantity.IsPositive() {
		return NewValidationError("quantity", "must be greater than zero")
	}

	if i.Rate.IsNegative() {
		return NewValidationError("rate", "must be non negative")
	}

	if i.TaxRate.IsNegative() || i.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return NewValidationError("tax_rate", "must be between 0 and 100")
	}

	return nil
}
