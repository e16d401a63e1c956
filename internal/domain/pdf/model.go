package pdf

import (
	"encoding/json"
	"time"

	"github.com/billaged/billaged/internal/types"
	"github.com/shopspring/decimal"
)

// InvoiceData represents the data model for invoice document rendering.
// It is a read-only projection of a fully computed invoice; the renderer
// never mutates it.
type InvoiceData struct {
	ID             string          `json:"id"`
	InvoiceNumber  string          `json:"invoice_number"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"payment_status"`
	Currency       types.Currency  `json:"currency"`
	IssueDate      CustomTime      `json:"issue_date"`
	DueDate        CustomTime      `json:"due_date"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	PaymentDate    *time.Time      `json:"payment_date,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Terms          string          `json:"terms,omitempty"`

	// Company information
	Biller    *BillerInfo    `json:"biller"`
	Recipient *RecipientInfo `json:"recipient"`
	Project   *ProjectInfo   `json:"project,omitempty"`

	// Line items
	LineItems []LineItemData `json:"line_items"`
}

// BillerInfo contains company information for the invoice issuer
type BillerInfo struct {
	Name    string      `json:"name"`
	Email   string      `json:"email,omitempty"`
	Phone   string      `json:"phone,omitempty"`
	Website string      `json:"website,omitempty"`
	TaxID   string      `json:"tax_id,omitempty"`
	Address AddressInfo `json:"address"`
}

// RecipientInfo contains client information for the invoice recipient
type RecipientInfo struct {
	Name    string      `json:"name"`
	Email   string      `json:"email,omitempty"`
	Address AddressInfo `json:"address"`
}

// ProjectInfo identifies the project an invoice bills against
type ProjectInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// AddressInfo represents a physical address
type AddressInfo struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// LineItemData represents an invoice line item for document rendering
type LineItemData struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note,omitempty"`
}

type CustomTime struct {
	time.Time
}

func (ct CustomTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(ct.Format("2006-01-02")) // Format to YYYY-MM-DD
}

func (ct *CustomTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return err
	}
	ct.Time = t
	return nil
}
