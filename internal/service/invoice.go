package service

import (
	"context"
	"time"

	"github.com/billaged/billaged/internal/api/dto"
	"github.com/billaged/billaged/internal/config"
	"github.com/billaged/billaged/internal/domain/invoice"
	pdfdomain "github.com/billaged/billaged/internal/domain/pdf"
	ierr "github.com/billaged/billaged/internal/errors"
	"github.com/billaged/billaged/internal/logger"
	"github.com/billaged/billaged/internal/pdf"
	"github.com/billaged/billaged/internal/pdfgen"
	"github.com/billaged/billaged/internal/types"
)

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	RecordPayment(ctx context.Context, id string, req dto.RecordPaymentRequest) (*dto.InvoiceResponse, error)
	MarkSent(ctx context.Context, id string) error
	CancelInvoice(ctx context.Context, id string) error
	RefreshInvoiceStatus(ctx context.Context, id string, now time.Time) error
	RenderInvoice(ctx context.Context, id string, tpl pdfdomain.Template) (*pdfdomain.Document, error)
	RenderInvoicePDF(ctx context.Context, id string, tpl pdfdomain.Template) ([]byte, error)
}

// ServiceParams holds the dependencies for the invoice service
type ServiceParams struct {
	Logger      *logger.Logger
	Config      *config.Configuration
	InvoiceRepo invoice.Repository
	ProfileRepo pdfdomain.ProfileRepository
	Renderer    pdfgen.Renderer
}

type invoiceService struct {
	ServiceParams
	paginator *pdf.Paginator
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
		paginator:     pdf.NewPaginator(params.Config.Pdf.Layout),
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Currency == "" {
		req.Currency = types.Currency(s.Config.Invoice.DefaultCurrency)
	}

	inv := req.ToInvoice(ctx)

	if err := inv.RecomputeTotals(); err != nil {
		return nil, err
	}
	inv.DeriveStatus(time.Now().UTC())

	numbering := s.Config.Invoice.Numbering
	if req.InvoiceNumber != nil {
		// manually supplied numbers bypass the generator but are still
		// checked for uniqueness before commit
		inv.InvoiceNumber = *req.InvoiceNumber
		if err := s.checkNumberAvailable(ctx, inv.InvoiceNumber, numbering); err != nil {
			return nil, err
		}
	} else {
		seq, err := s.InvoiceRepo.NextSequence(ctx, numbering.Prefix)
		if err != nil {
			return nil, err
		}
		inv.InvoiceNumber = invoice.FormatNumber(numbering, seq)
	}

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	err := s.InvoiceRepo.Create(ctx, inv)
	if ierr.IsAlreadyExists(err) && req.InvoiceNumber == nil {
		// another writer raced us to this number; re-derive from the
		// atomic counter and resubmit once
		seq, seqErr := s.InvoiceRepo.NextSequence(ctx, numbering.Prefix)
		if seqErr != nil {
			return nil, seqErr
		}
		inv.InvoiceNumber = invoice.FormatNumber(numbering, seq)
		err = s.InvoiceRepo.Create(ctx, inv)
	}
	if err != nil {
		s.Logger.Errorw("failed to create invoice",
			"error", err,
			"client_id", req.ClientID,
			"invoice_number", inv.InvoiceNumber)
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"total_amount", inv.TotalAmount,
		"client_id", inv.ClientID)

	return dto.NewInvoiceResponse(inv), nil
}

// checkNumberAvailable distinguishes a duplicate manual number from other
// validation failures before commit; Create still enforces uniqueness.
func (s *invoiceService) checkNumberAvailable(ctx context.Context, number string, cfg types.NumberingConfig) error {
	existing, err := s.InvoiceRepo.ListNumbers(ctx, cfg.Prefix)
	if err != nil {
		return err
	}
	for _, n := range existing {
		if n == number {
			return ierr.NewError("duplicate invoice number").
				WithHintf("invoice number %s is already in use", number).
				WithReportableDetails(map[string]any{
					"invoice_number": number,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
	}
	return nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.IsCancelled() {
		return nil, ierr.NewError("invoice is cancelled").
			WithHint("cancelled invoices cannot be modified").
			Mark(ierr.ErrInvalidOperation)
	}

	// financial edits are restricted to drafts
	financialEdit := len(req.LineItems) > 0 || req.DiscountAmount != nil || req.DueDate != nil
	if financialEdit && inv.Status != types.InvoiceStatusDraft {
		return nil, ierr.NewError("invoice is not a draft").
			WithHintf("line items can only be edited while the invoice is a draft, current status is %s", inv.Status).
			Mark(ierr.ErrInvalidOperation)
	}

	if len(req.LineItems) > 0 {
		items := make([]*invoice.LineItem, len(req.LineItems))
		for i, item := range req.LineItems {
			lineItem := item.ToLineItem(ctx)
			lineItem.InvoiceID = inv.ID
			items[i] = lineItem
		}
		inv.LineItems = items
	}
	if req.DiscountAmount != nil {
		inv.DiscountAmount = *req.DiscountAmount
	}
	if req.DueDate != nil {
		inv.DueDate = req.DueDate.UTC()
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	if req.Terms != nil {
		inv.Terms = *req.Terms
	}
	if req.TermsText != nil {
		inv.TermsText = *req.TermsText
	}

	if err := inv.RecomputeTotals(); err != nil {
		return nil, err
	}
	inv.DeriveStatus(time.Now().UTC())

	if err := inv.Validate(); err != nil {
		return nil, err
	}

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) RecordPayment(ctx context.Context, id string, req dto.RecordPaymentRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := inv.ValidatePayment(req.Amount); err != nil {
		return nil, err
	}

	// the paid amount moves through an atomic increment so concurrent
	// postings cannot lose writes; the repository rejects overpayment
	if _, err := s.InvoiceRepo.IncrementPaid(ctx, id, req.Amount); err != nil {
		return nil, err
	}

	// the posting is committed at this point, so a lost version race on
	// the status write is re-read and rederived here instead of surfacing
	// a retryable conflict for an already-applied payment. A conflict
	// means another writer committed, so each pass makes progress.
	for {
		inv, err = s.InvoiceRepo.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		if req.Method != nil {
			inv.PaymentMethod = req.Method
		}
		if req.TransactionID != "" {
			inv.TransactionID = req.TransactionID
		}
		if req.Notes != "" {
			inv.PaymentNotes = req.Notes
		}

		inv.DeriveStatus(time.Now().UTC())

		if err := inv.Validate(); err != nil {
			return nil, err
		}

		err = s.InvoiceRepo.Update(ctx, inv)
		if err == nil {
			break
		}
		if !ierr.IsVersionConflict(err) {
			return nil, err
		}
	}

	s.Logger.Infow("recorded payment",
		"invoice_id", inv.ID,
		"amount", req.Amount,
		"paid_amount", inv.PaidAmount,
		"payment_status", inv.PaymentStatus)

	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) MarkSent(ctx context.Context, id string) error {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if inv.Status != types.InvoiceStatusDraft {
		return ierr.NewError("invalid status transition").
			WithHintf("only draft invoices can be sent, current status is %s", inv.Status).
			Mark(ierr.ErrInvalidOperation)
	}

	inv.Status = types.InvoiceStatusSent
	inv.DeriveStatus(time.Now().UTC())

	return s.InvoiceRepo.Update(ctx, inv)
}

func (s *invoiceService) CancelInvoice(ctx context.Context, id string) error {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if inv.IsCancelled() {
		return ierr.NewError("invoice already cancelled").
			WithHint("the invoice is already cancelled").
			Mark(ierr.ErrInvalidOperation)
	}

	if inv.Status == types.InvoiceStatusPaid {
		return ierr.NewError("invoice already paid").
			WithHint("paid invoices cannot be cancelled").
			Mark(ierr.ErrInvalidOperation)
	}

	inv.Status = types.InvoiceStatusCancelled

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	s.Logger.Infow("cancelled invoice", "invoice_id", inv.ID, "invoice_number", inv.InvoiceNumber)
	return nil
}

// RefreshInvoiceStatus re-runs the status derivation against the supplied
// clock; the overdue sweep calls this for every sent invoice.
func (s *invoiceService) RefreshInvoiceStatus(ctx context.Context, id string, now time.Time) error {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	prevStatus := inv.Status
	prevPayment := inv.PaymentStatus
	inv.DeriveStatus(now)

	if inv.Status == prevStatus && inv.PaymentStatus == prevPayment {
		return nil
	}

	s.Logger.Infow("invoice status changed",
		"invoice_id", inv.ID,
		"from", prevStatus,
		"to", inv.Status)

	return s.InvoiceRepo.Update(ctx, inv)
}

func (s *invoiceService) RenderInvoice(ctx context.Context, id string, tpl pdfdomain.Template) (*pdfdomain.Document, error) {
	data, err := s.buildInvoiceData(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.paginator.Paginate(data, tpl), nil
}

func (s *invoiceService) RenderInvoicePDF(ctx context.Context, id string, tpl pdfdomain.Template) ([]byte, error) {
	data, err := s.buildInvoiceData(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := s.paginator.Paginate(data, tpl)
	return s.Renderer.Compile(doc, tpl, s.Config.Pdf.Layout)
}

func (s *invoiceService) buildInvoiceData(ctx context.Context, id string) (*pdfdomain.InvoiceData, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	biller, err := s.ProfileRepo.GetBiller(ctx)
	if err != nil {
		return nil, err
	}

	recipient, err := s.ProfileRepo.GetClient(ctx, inv.ClientID)
	if err != nil {
		return nil, err
	}

	var project *pdfdomain.ProjectInfo
	if inv.ProjectID != nil {
		project, err = s.ProfileRepo.GetProject(ctx, *inv.ProjectID)
		if err != nil {
			return nil, err
		}
	}

	data := &pdfdomain.InvoiceData{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		Status:         inv.Status.String(),
		PaymentStatus:  inv.PaymentStatus.String(),
		Currency:       inv.Currency,
		IssueDate:      pdfdomain.CustomTime{Time: inv.IssueDate},
		DueDate:        pdfdomain.CustomTime{Time: inv.DueDate},
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		DiscountAmount: inv.DiscountAmount,
		TotalAmount:    inv.TotalAmount,
		PaidAmount:     inv.PaidAmount,
		PaymentDate:    inv.PaymentDate,
		Notes:          inv.Notes,
		Terms:          inv.Terms,
		Biller:         biller,
		Recipient:      recipient,
		Project:        project,
	}

	data.LineItems = make([]pdfdomain.LineItemData, len(inv.LineItems))
	for i, item := range inv.LineItems {
		data.LineItems[i] = pdfdomain.LineItemData{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			TaxRate:     item.TaxRate,
			Amount:      item.Amount,
			Note:        item.Note,
		}
	}

	return data, nil
}
