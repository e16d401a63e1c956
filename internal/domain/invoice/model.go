package invoice

import (
	"time"

	"github.com/billaged/billaged/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice represents the invoice domain model. The monetary aggregates
// (Subtotal, TaxAmount, TotalAmount) and both status fields are derived;
// they are recomputed by the calculator and the status derivation and are
// never accepted from client input.
type Invoice struct {
	ID             string               `json:"id"`
	InvoiceNumber  string               `json:"invoice_number"`
	ClientID       string               `json:"client_id"`
	ProjectID      *string              `json:"project_id,omitempty"`
	IssueDate      time.Time            `json:"issue_date"`
	DueDate        time.Time            `json:"due_date"`
	LineItems      []*LineItem          `json:"line_items"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	TaxAmount      decimal.Decimal      `json:"tax_amount"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	TotalAmount    decimal.Decimal      `json:"total_amount"`
	Currency       types.Currency       `json:"currency"`
	Status         types.InvoiceStatus  `json:"status"`
	PaymentStatus  types.PaymentStatus  `json:"payment_status"`
	PaidAmount     decimal.Decimal      `json:"paid_amount"`
	PaymentDate    *time.Time           `json:"payment_date,omitempty"`
	PaymentMethod  *types.PaymentMethod `json:"payment_method,omitempty"`
	TransactionID  string               `json:"transaction_id,omitempty"`
	PaymentNotes   string               `json:"payment_notes,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	Terms          string               `json:"terms,omitempty"`
	TermsText      string               `json:"terms_and_conditions,omitempty"`
	Version        int                  `json:"version"`
	types.BaseModel
}

// GetRemainingAmount returns the amount still owed
func (i *Invoice) GetRemainingAmount() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// IsCancelled reports whether the invoice is in its terminal cancelled state
func (i *Invoice) IsCancelled() bool {
	return i.Status == types.InvoiceStatusCancelled
}

// Validate checks both user-input constraints and the derived-state
// invariants that must hold after any mutation. Input problems surface as
// validation errors; derived-state inconsistencies surface as invariant
// violations so that callers can alert on them.
func (i *Invoice) Validate() error {
	if i.ClientID == "" {
		return NewValidationError("client_id", "is required")
	}

	if i.DueDate.IsZero() {
		return NewValidationError("due_date", "is required")
	}

	if len(i.LineItems) == 0 {
		return NewValidationError("line_items", "at least one line item is required")
	}

	for _, item := range i.LineItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	if err := i.Currency.Validate(); err != nil {
		return err
	}

	if err := i.Status.Validate(); err != nil {
		return err
	}

	if err := i.PaymentStatus.Validate(); err != nil {
		return err
	}

	if i.PaymentMethod != nil {
		if err := i.PaymentMethod.Validate(); err != nil {
			return err
		}
	}

	// amount invariants
	if i.Subtotal.IsNegative() {
		return NewInvariantViolation("subtotal", "must be non negative", ">= 0", i.Subtotal)
	}

	if i.TaxAmount.IsNegative() {
		return NewInvariantViolation("tax_amount", "must be non negative", ">= 0", i.TaxAmount)
	}

	if i.TotalAmount.IsNegative() {
		return NewInvariantViolation("total_amount", "must be non negative", ">= 0", i.TotalAmount)
	}

	if i.PaidAmount.IsNegative() {
		return NewInvariantViolation("paid_amount", "must be non negative", ">= 0", i.PaidAmount)
	}

	if i.PaidAmount.GreaterThan(i.TotalAmount) {
		return NewValidationError("paid_amount", "must be less than or equal to total_amount")
	}

	expectedTotal := types.RoundAmount(i.Subtotal.Add(i.TaxAmount).Sub(i.DiscountAmount), i.Currency)
	if !i.TotalAmount.Equal(expectedTotal) {
		return NewInvariantViolation("total_amount",
			"must equal subtotal + tax_amount - discount_amount",
			expectedTotal, i.TotalAmount)
	}

	// status consistency invariants
	if i.PaymentStatus == types.PaymentStatusPaid && i.PaidAmount.LessThan(i.TotalAmount) {
		return NewInvariantViolation("payment_status",
			"paid requires paid_amount >= total_amount",
			types.PaymentStatusPartial, i.PaymentStatus)
	}

	if i.PaymentStatus == types.PaymentStatusUnpaid && i.PaidAmount.IsPositive() {
		return NewInvariantViolation("payment_status",
			"unpaid requires paid_amount == 0",
			types.PaymentStatusPartial, i.PaymentStatus)
	}

	if i.Status == types.InvoiceStatusPaid && i.PaymentStatus != types.PaymentStatusPaid {
		return NewInvariantViolation("status",
			"status paid requires payment_status paid",
			types.PaymentStatusPaid, i.PaymentStatus)
	}

	return nil
}
