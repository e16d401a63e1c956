package invoice

import (
	"time"

	"github.com/billaged/billaged/internal/types"
	"github.com/shopspring/decimal"
)

// DeriveStatus re-derives payment_status, status and payment_date from the
// invoice's total, paid amount and the supplied clock time. It is invoked
// after every totals recompute and every payment recording event.
//
// Cancelled invoices are excluded from derivation entirely. The function
// never promotes a draft to sent (that is an explicit caller decision); the
// only workflow transition it performs besides marking paid is the downgrade
// of a sent invoice into overdue.
func (i *Invoice) DeriveStatus(now time.Time) {
	if i.IsCancelled() {
		return
	}

	switch {
	case i.TotalAmount.IsPositive() && i.PaidAmount.GreaterThanOrEqual(i.TotalAmount):
		i.PaymentStatus = types.PaymentStatusPaid
		i.Status = types.InvoiceStatusPaid
		if i.PaymentDate == nil {
			i.PaymentDate = &now
		}
	case i.PaidAmount.IsPositive():
		i.PaymentStatus = types.PaymentStatusPartial
	default:
		i.PaymentStatus = types.PaymentStatusUnpaid
	}

	if i.Status == types.InvoiceStatusSent &&
		i.PaymentStatus != types.PaymentStatusPaid &&
		now.After(i.DueDate) {
		i.Status = types.InvoiceStatusOverdue
	}
}

// ValidatePayment checks a payment posting of the given amount against the
// invoice's current state. paid_amount is monotonic: postings must be
// positive, and the cumulative amount may never exceed the total. A decrease
// requires a refund operation, which is outside this engine's scope.
func (i *Invoice) ValidatePayment(amount decimal.Decimal) error {
	if i.IsCancelled() {
		return NewValidationError("status", "cannot record payment on a cancelled invoice")
	}

	if !amount.IsPositive() {
		return NewValidationError("amount", "must be greater than zero")
	}

	if i.PaidAmount.Add(amount).GreaterThan(i.TotalAmount) {
		return NewValidationError("amount", "would exceed the invoice total")
	}

	return nil
}

// ApplyPayment records a payment posting and re-derives the status fields.
// The payment metadata is only overwritten when supplied.
func (i *Invoice) ApplyPayment(amount decimal.Decimal, method *types.PaymentMethod, transactionID, notes string, now time.Time) error {
	if err := i.ValidatePayment(amount); err != nil {
		return err
	}

	i.PaidAmount = i.PaidAmount.Add(amount)
	if method != nil {
		i.PaymentMethod = method
	}
	if transactionID != "" {
		i.TransactionID = transactionID
	}
	if notes != "" {
		i.PaymentNotes = notes
	}

	i.DeriveStatus(now)
	return nil
}
