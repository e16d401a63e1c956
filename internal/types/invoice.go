package types

import (
	"time"

	ierr "github.com/billaged/billaged/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus represents the workflow stage of an invoice in its lifecycle
type InvoiceStatus string

const (
	// InvoiceStatusDraft indicates the invoice can still be modified
	InvoiceStatusDraft InvoiceStatus = "DRAFT"
	// InvoiceStatusSent indicates the invoice was issued to the client
	InvoiceStatusSent InvoiceStatus = "SENT"
	// InvoiceStatusPaid indicates the invoice is fully paid
	InvoiceStatusPaid InvoiceStatus = "PAID"
	// InvoiceStatusOverdue indicates a sent invoice passed its due date unpaid
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
	// InvoiceStatusCancelled is terminal; no transition leaves it
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusSent,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
		InvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentStatus is derived purely from paid amount vs. total amount
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) Validate() error {
	allowed := []PaymentStatus{
		PaymentStatusUnpaid,
		PaymentStatusPartial,
		PaymentStatusPaid,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid payment status").
			WithHint("Please provide a valid payment status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodPaypal       PaymentMethod = "PAYPAL"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) Validate() error {
	allowed := []PaymentMethod{
		PaymentMethodBankTransfer,
		PaymentMethodCard,
		PaymentMethodCash,
		PaymentMethodCheque,
		PaymentMethodUPI,
		PaymentMethodPaypal,
		PaymentMethodOther,
	}
	if !lo.Contains(allowed, m) {
		return ierr.NewError("invalid payment method").
			WithHint("Please provide a valid payment method").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DateFormat selects one of the fixed date rendering patterns
type DateFormat string

const (
	DateFormatMDY DateFormat = "MM/DD/YYYY"
	DateFormatDMY DateFormat = "DD/MM/YYYY"
	DateFormatYMD DateFormat = "YYYY-MM-DD"
)

func (f DateFormat) String() string {
	return string(f)
}

func (f DateFormat) Validate() error {
	allowed := []DateFormat{
		DateFormatMDY,
		DateFormatDMY,
		DateFormatYMD,
	}
	if !lo.Contains(allowed, f) {
		return ierr.NewError("invalid date format").
			WithHint("Please provide a valid date format").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Layout returns the Go time layout for the format
func (f DateFormat) Layout() string {
	switch f {
	case DateFormatDMY:
		return "02/01/2006"
	case DateFormatYMD:
		return "2006-01-02"
	default:
		return "01/02/2006"
	}
}

// Format renders t using the format's layout
func (f DateFormat) Format(t time.Time) string {
	return t.Format(f.Layout())
}

const (
	// InvoiceDefaultDueDays is the default number of days after the issue
	// date when payment is due
	InvoiceDefaultDueDays = 30
)

// NumberingConfig represents the configuration for automatic invoice number
// generation. Generated numbers follow the pattern
// {prefix}{separator}{zero-padded sequence}, e.g. "INV-00042" for
// prefix "INV", separator "-" and suffix length 5.
//
// The sequence suffix is zero padded to a fixed width so that
// lexicographic comparison of numbers sharing a prefix agrees with
// numeric comparison.
type NumberingConfig struct {
	Prefix        string `json:"prefix" mapstructure:"prefix"`
	Separator     string `json:"separator" mapstructure:"separator"`
	SuffixLength  int    `json:"suffix_length" mapstructure:"suffix_length"`
	StartSequence int64  `json:"start_sequence" mapstructure:"start_sequence"`
}

// DefaultNumberingConfig returns the numbering scheme used when the
// configuration does not override it.
func DefaultNumberingConfig() NumberingConfig {
	return NumberingConfig{
		Prefix:        "INV",
		Separator:     "-",
		SuffixLength:  5,
		StartSequence: 1,
	}
}

func (c NumberingConfig) Validate() error {
	if c.SuffixLength < 1 {
		return ierr.NewError("invalid numbering config").
			WithHint("suffix_length must be at least 1").
			Mark(ierr.ErrValidation)
	}
	if c.StartSequence < 1 {
		return ierr.NewError("invalid numbering config").
			WithHint("start_sequence must be at least 1").
			Mark(ierr.ErrValidation)
	}
	return nil
}
