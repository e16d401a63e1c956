package dto

import (
	"context"
	"time"

	"github.com/billaged/billaged/internal/domain/invoice"
	ierr "github.com/billaged/billaged/internal/errors"
	"github.com/billaged/billaged/internal/types"
	"github.com/billaged/billaged/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateInvoiceLineItemRequest carries one client-supplied line item.
// The item amount is always recomputed server side and never accepted
// from the request.
type CreateInvoiceLineItemRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Rate        decimal.Decimal `json:"rate"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Note        string          `json:"note,omitempty"`
}

func (r *CreateInvoiceLineItemRequest) ToLineItem(ctx context.Context) *invoice.LineItem {
	return &invoice.LineItem{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
		Description: r.Description,
		Quantity:    r.Quantity,
		Rate:        r.Rate,
		TaxRate:     r.TaxRate,
		Note:        r.Note,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

// CreateInvoiceRequest is the payload for creating an invoice
type CreateInvoiceRequest struct {
	ClientID       string                         `json:"client_id" validate:"required"`
	ProjectID      *string                        `json:"project_id,omitempty"`
	InvoiceNumber  *string                        `json:"invoice_number,omitempty"`
	IssueDate      *time.Time                     `json:"issue_date,omitempty"`
	DueDate        *time.Time                     `json:"due_date" validate:"required"`
	Currency       types.Currency                 `json:"currency"`
	DiscountAmount decimal.Decimal                `json:"discount_amount"`
	LineItems      []CreateInvoiceLineItemRequest `json:"line_items" validate:"required,min=1,dive"`
	Notes          string                         `json:"notes,omitempty"`
	Terms          string                         `json:"terms,omitempty"`
	TermsText      string                         `json:"terms_and_conditions,omitempty"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.Currency != "" {
		if err := r.Currency.Validate(); err != nil {
			return err
		}
	}

	if r.DiscountAmount.IsNegative() {
		return ierr.NewError("invalid discount").
			WithHint("discount_amount must be non negative").
			Mark(ierr.ErrValidation)
	}

	if r.InvoiceNumber != nil && *r.InvoiceNumber == "" {
		return ierr.NewError("invalid invoice number").
			WithHint("invoice_number must not be empty when provided").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToInvoice converts the request to a domain invoice with derived fields
// still unset; the service recomputes totals and derives statuses.
func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context) *invoice.Invoice {
	issueDate := time.Now().UTC()
	if r.IssueDate != nil {
		issueDate = r.IssueDate.UTC()
	}

	currency := r.Currency
	if currency == "" {
		currency = types.CurrencyUSD
	}

	inv := &invoice.Invoice{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		ClientID:       r.ClientID,
		ProjectID:      r.ProjectID,
		IssueDate:      issueDate,
		DueDate:        r.DueDate.UTC(),
		Currency:       currency,
		DiscountAmount: r.DiscountAmount,
		Status:         types.InvoiceStatusDraft,
		PaymentStatus:  types.PaymentStatusUnpaid,
		PaidAmount:     decimal.Zero,
		Notes:          r.Notes,
		Terms:          r.Terms,
		TermsText:      r.TermsText,
		Version:        1,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}

	inv.LineItems = make([]*invoice.LineItem, len(r.LineItems))
	for i, item := range r.LineItems {
		lineItem := item.ToLineItem(ctx)
		lineItem.InvoiceID = inv.ID
		inv.LineItems[i] = lineItem
	}

	return inv
}

// UpdateInvoiceRequest edits a draft invoice. Only supplied fields change.
type UpdateInvoiceRequest struct {
	DueDate        *time.Time                     `json:"due_date,omitempty"`
	DiscountAmount *decimal.Decimal               `json:"discount_amount,omitempty"`
	LineItems      []CreateInvoiceLineItemRequest `json:"line_items,omitempty" validate:"omitempty,min=1,dive"`
	Notes          *string                        `json:"notes,omitempty"`
	Terms          *string                        `json:"terms,omitempty"`
	TermsText      *string                        `json:"terms_and_conditions,omitempty"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.DiscountAmount != nil && r.DiscountAmount.IsNegative() {
		return ierr.NewError("invalid discount").
			WithHint("discount_amount must be non negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// RecordPaymentRequest posts a payment against an invoice
type RecordPaymentRequest struct {
	Amount        decimal.Decimal      `json:"amount" validate:"required"`
	Method        *types.PaymentMethod `json:"payment_method,omitempty"`
	TransactionID string               `json:"transaction_id,omitempty"`
	Notes         string               `json:"payment_notes,omitempty"`
}

func (r *RecordPaymentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if !r.Amount.IsPositive() {
		return ierr.NewError("invalid payment amount").
			WithHint("amount must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	if r.Method != nil {
		if err := r.Method.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	*invoice.Invoice
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{Invoice: inv}
}
