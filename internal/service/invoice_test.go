package service

import (
	"sync"
	"testing"
	"time"

	"github.com/billaged/billaged/internal/api/dto"
	pdfdomain "github.com/billaged/billaged/internal/domain/pdf"
	ierr "github.com/billaged/billaged/internal/errors"
	"github.com/billaged/billaged/internal/testutil"
	"github.com/billaged/billaged/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  InvoiceService
	testData struct {
		dueDate time.Time
	}
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.testData.dueDate = time.Now().UTC().AddDate(0, 0, 30)
}

func (s *InvoiceServiceSuite) TearDownTest() {
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *InvoiceServiceSuite) setupService() {
	s.service = NewInvoiceService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		InvoiceRepo: s.GetStores().InvoiceRepo,
		ProfileRepo: s.GetStores().ProfileRepo,
	})
}

func (s *InvoiceServiceSuite) newCreateRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		ClientID: "client-1",
		DueDate:  &s.testData.dueDate,
		LineItems: []dto.CreateInvoiceLineItemRequest{
			{
				Description: "Engineering services",
				Quantity:    decimal.NewFromInt(2),
				Rate:        decimal.NewFromInt(100),
				TaxRate:     decimal.NewFromInt(10),
			},
			{
				Description: "Code review",
				Quantity:    decimal.NewFromInt(1),
				Rate:        decimal.NewFromInt(50),
			},
		},
	}
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)
	s.NotNil(resp)

	s.Equal("INV-00001", resp.InvoiceNumber)
	s.Equal(types.InvoiceStatusDraft, resp.Status)
	s.Equal(types.PaymentStatusUnpaid, resp.PaymentStatus)
	s.Equal(types.CurrencyUSD, resp.Currency)

	s.True(decimal.NewFromInt(250).Equal(resp.Subtotal), "subtotal %s", resp.Subtotal)
	s.True(decimal.NewFromInt(20).Equal(resp.TaxAmount), "tax %s", resp.TaxAmount)
	s.True(decimal.NewFromInt(270).Equal(resp.TotalAmount), "total %s", resp.TotalAmount)
	s.True(resp.PaidAmount.IsZero())

	// line item amounts are recomputed server side
	s.True(decimal.NewFromInt(200).Equal(resp.LineItems[0].Amount))
	s.True(decimal.NewFromInt(50).Equal(resp.LineItems[1].Amount))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceSequentialNumbers() {
	first, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)
	second, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	s.Equal("INV-00001", first.InvoiceNumber)
	s.Equal("INV-00002", second.InvoiceNumber)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceManualNumber() {
	req := s.newCreateRequest()
	req.InvoiceNumber = lo.ToPtr("CUSTOM-001")

	resp, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.Equal("CUSTOM-001", resp.InvoiceNumber)

	// reusing the same number conflicts
	dup := s.newCreateRequest()
	dup.InvoiceNumber = lo.ToPtr("CUSTOM-001")
	_, err = s.service.CreateInvoice(s.GetContext(), dup)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceConcurrent() {
	const writers = 100

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}

	numbers, err := s.GetStores().InvoiceRepo.ListNumbers(s.GetContext(), "INV")
	s.NoError(err)
	s.Len(numbers, writers)
	s.Len(lo.Uniq(numbers), writers)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceRejections() {
	s.Run("missing client", func() {
		req := s.newCreateRequest()
		req.ClientID = ""
		_, err := s.service.CreateInvoice(s.GetContext(), req)
		s.True(ierr.IsValidation(err))
	})

	s.Run("no line items", func() {
		req := s.newCreateRequest()
		req.LineItems = nil
		_, err := s.service.CreateInvoice(s.GetContext(), req)
		s.True(ierr.IsValidation(err))
	})

	s.Run("unsupported currency", func() {
		req := s.newCreateRequest()
		req.Currency = types.Currency("xyz")
		_, err := s.service.CreateInvoice(s.GetContext(), req)
		s.True(ierr.IsValidation(err))
	})

	s.Run("negative discount", func() {
		req := s.newCreateRequest()
		req.DiscountAmount = decimal.NewFromInt(-5)
		_, err := s.service.CreateInvoice(s.GetContext(), req)
		s.True(ierr.IsValidation(err))
	})

	s.Run("discount exceeding subtotal plus tax", func() {
		req := s.newCreateRequest()
		req.DiscountAmount = decimal.NewFromInt(1000)
		_, err := s.service.CreateInvoice(s.GetContext(), req)
		s.True(ierr.IsValidation(err))
	})
}

func (s *InvoiceServiceSuite) TestGetInvoice() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	got, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(created.InvoiceNumber, got.InvoiceNumber)

	_, err = s.service.GetInvoice(s.GetContext(), "inv_missing")
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceDraft() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	resp, err := s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		LineItems: []dto.CreateInvoiceLineItemRequest{
			{
				Description: "Revised scope",
				Quantity:    decimal.NewFromInt(1),
				Rate:        decimal.NewFromInt(500),
			},
		},
		DiscountAmount: lo.ToPtr(decimal.NewFromInt(50)),
	})
	s.NoError(err)

	s.True(decimal.NewFromInt(500).Equal(resp.Subtotal))
	s.True(decimal.NewFromInt(450).Equal(resp.TotalAmount))
	s.Len(resp.LineItems, 1)
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceFinancialEditsLockAfterSend() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)
	s.NoError(s.service.MarkSent(s.GetContext(), created.ID))

	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		DiscountAmount: lo.ToPtr(decimal.NewFromInt(10)),
	})
	s.True(ierr.IsInvalidOperation(err))

	// non-financial fields stay editable
	resp, err := s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Notes: lo.ToPtr("wire transfer preferred"),
	})
	s.NoError(err)
	s.Equal("wire transfer preferred", resp.Notes)
}

func (s *InvoiceServiceSuite) TestRecordPayment() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)
	s.NoError(s.service.MarkSent(s.GetContext(), created.ID))

	method := types.PaymentMethodBankTransfer
	resp, err := s.service.RecordPayment(s.GetContext(), created.ID, dto.RecordPaymentRequest{
		Amount:        decimal.NewFromInt(100),
		Method:        &method,
		TransactionID: "txn-1",
	})
	s.NoError(err)
	s.Equal(types.PaymentStatusPartial, resp.PaymentStatus)
	s.Equal(types.InvoiceStatusSent, resp.Status)
	s.True(decimal.NewFromInt(100).Equal(resp.PaidAmount))

	resp, err = s.service.RecordPayment(s.GetContext(), created.ID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(170),
	})
	s.NoError(err)
	s.Equal(types.PaymentStatusPaid, resp.PaymentStatus)
	s.Equal(types.InvoiceStatusPaid, resp.Status)
	s.NotNil(resp.PaymentDate)
	s.Equal("txn-1", resp.TransactionID)
}

func (s *InvoiceServiceSuite) TestRecordPaymentConcurrent() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)
	s.NoError(s.service.MarkSent(s.GetContext(), created.ID))

	// nine postings of 30 settle the 270 total; version races on the
	// status write are absorbed internally, so every posting succeeds
	const payers = 9
	var wg sync.WaitGroup
	errs := make(chan error, payers)
	for i := 0; i < payers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.RecordPayment(s.GetContext(), created.ID, dto.RecordPaymentRequest{
				Amount: decimal.NewFromInt(30),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}

	got, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.True(decimal.NewFromInt(270).Equal(got.PaidAmount), "paid %s", got.PaidAmount)
	s.Equal(types.PaymentStatusPaid, got.PaymentStatus)
	s.Equal(types.InvoiceStatusPaid, got.Status)
}

func (s *InvoiceServiceSuite) TestRecordPaymentRejectsOverpayment() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	_, err = s.service.RecordPayment(s.GetContext(), created.ID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(271),
	})
	s.True(ierr.IsValidation(err))

	got, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.True(got.PaidAmount.IsZero())
}

func (s *InvoiceServiceSuite) TestRecordPaymentOnCancelledInvoice() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)
	s.NoError(s.service.CancelInvoice(s.GetContext(), created.ID))

	_, err = s.service.RecordPayment(s.GetContext(), created.ID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(10),
	})
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestDraftPaidInFullSkipsSent() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	resp, err := s.service.RecordPayment(s.GetContext(), created.ID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(270),
	})
	s.NoError(err)
	s.Equal(types.InvoiceStatusPaid, resp.Status)
	s.Equal(types.PaymentStatusPaid, resp.PaymentStatus)
}

func (s *InvoiceServiceSuite) TestMarkSent() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	s.NoError(s.service.MarkSent(s.GetContext(), created.ID))

	got, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, got.Status)

	// sending twice is not a valid transition
	err = s.service.MarkSent(s.GetContext(), created.ID)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestCancelInvoice() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	s.NoError(s.service.CancelInvoice(s.GetContext(), created.ID))

	got, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusCancelled, got.Status)

	// cancelled is terminal
	err = s.service.CancelInvoice(s.GetContext(), created.ID)
	s.True(ierr.IsInvalidOperation(err))

	_, err = s.service.UpdateInvoice(s.GetContext(), created.ID, dto.UpdateInvoiceRequest{
		Notes: lo.ToPtr("too late"),
	})
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestCancelPaidInvoiceRejected() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	_, err = s.service.RecordPayment(s.GetContext(), created.ID, dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(270),
	})
	s.NoError(err)

	err = s.service.CancelInvoice(s.GetContext(), created.ID)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestRefreshInvoiceStatusOverdue() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)
	s.NoError(s.service.MarkSent(s.GetContext(), created.ID))

	// before the due date nothing changes
	s.NoError(s.service.RefreshInvoiceStatus(s.GetContext(), created.ID, s.testData.dueDate.AddDate(0, 0, -1)))
	got, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusSent, got.Status)

	s.NoError(s.service.RefreshInvoiceStatus(s.GetContext(), created.ID, s.testData.dueDate.AddDate(0, 0, 1)))
	got, err = s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusOverdue, got.Status)
}

func (s *InvoiceServiceSuite) TestRenderInvoice() {
	s.GetStores().ProfileRepo.AddClient("client-1", &pdfdomain.RecipientInfo{
		Name: "Globex Corporation",
	})

	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	doc, err := s.service.RenderInvoice(s.GetContext(), created.ID, pdfdomain.DefaultTemplate())
	s.NoError(err)
	s.NotEmpty(doc.Pages)

	var blocks []string
	for _, text := range doc.Pages[0].Texts {
		blocks = append(blocks, text.Text)
	}
	s.Contains(blocks, "INV-00001")
	s.Contains(blocks, "Globex Corporation")
}

func (s *InvoiceServiceSuite) TestRenderInvoiceUnknownClient() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.newCreateRequest())
	s.NoError(err)

	_, err = s.service.RenderInvoice(s.GetContext(), created.ID, pdfdomain.DefaultTemplate())
	s.True(ierr.IsNotFound(err))
}
