package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/billaged/billaged/internal/domain/invoice"
	ierr "github.com/billaged/billaged/internal/errors"
	"github.com/shopspring/decimal"
)

// InMemoryInvoiceStore implements invoice.Repository with the same
// concurrency contract a real database would provide: a unique index on
// invoice numbers, an atomic per-prefix sequence, version-checked updates
// and an atomic paid-amount increment.
type InMemoryInvoiceStore struct {
	mu        sync.Mutex
	invoices  map[string]*invoice.Invoice
	numbers   map[string]string // invoice number -> invoice id
	sequences map[string]int64  // prefix -> last issued value
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices:  make(map[string]*invoice.Invoice),
		numbers:   make(map[string]string),
		sequences: make(map[string]int64),
	}
}

// Helper to deep copy an invoice
func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}

	out := *inv
	if inv.ProjectID != nil {
		projectID := *inv.ProjectID
		out.ProjectID = &projectID
	}
	if inv.PaymentDate != nil {
		paymentDate := *inv.PaymentDate
		out.PaymentDate = &paymentDate
	}
	if inv.PaymentMethod != nil {
		method := *inv.PaymentMethod
		out.PaymentMethod = &method
	}
	if inv.LineItems != nil {
		out.LineItems = make([]*invoice.LineItem, len(inv.LineItems))
		for i, item := range inv.LineItems {
			itemCopy := *item
			out.LineItems[i] = &itemCopy
		}
	}
	return &out
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID]; exists {
		return ierr.NewError("invoice already exists").
			WithHintf("invoice %s already exists", inv.ID).
			Mark(ierr.ErrAlreadyExists)
	}

	if _, taken := s.numbers[inv.InvoiceNumber]; taken {
		return ierr.NewError("duplicate invoice number").
			WithHintf("invoice number %s is already in use", inv.InvoiceNumber).
			Mark(ierr.ErrAlreadyExists)
	}

	s.invoices[inv.ID] = copyInvoice(inv)
	s.numbers[inv.InvoiceNumber] = inv.ID
	return nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, exists := s.invoices[id]
	if !exists {
		return nil, ierr.NewError("invoice not found").
			WithHintf("invoice %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.invoices[inv.ID]
	if !exists {
		return ierr.NewError("invoice not found").
			WithHintf("invoice %s not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}

	if stored.Version != inv.Version {
		return ierr.NewError("stale invoice version").
			WithHintf("invoice %s was modified concurrently", inv.ID).
			Mark(ierr.ErrVersionConflict)
	}

	updated := copyInvoice(inv)
	updated.Version++
	s.invoices[inv.ID] = updated
	return nil
}

func (s *InMemoryInvoiceStore) ListNumbers(ctx context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var numbers []string
	for number := range s.numbers {
		if strings.HasPrefix(number, prefix) {
			numbers = append(numbers, number)
		}
	}
	sort.Strings(numbers)
	return numbers, nil
}

func (s *InMemoryInvoiceStore) NextSequence(ctx context.Context, prefix string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequences[prefix]++
	return s.sequences[prefix], nil
}

func (s *InMemoryInvoiceStore) IncrementPaid(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, exists := s.invoices[id]
	if !exists {
		return decimal.Zero, ierr.NewError("invoice not found").
			WithHintf("invoice %s not found", id).
			Mark(ierr.ErrNotFound)
	}

	if !delta.IsPositive() {
		return decimal.Zero, ierr.NewError("invalid payment amount").
			WithHint("amount must be greater than zero").
			Mark(ierr.ErrValidation)
	}

	newPaid := inv.PaidAmount.Add(delta)
	if newPaid.GreaterThan(inv.TotalAmount) {
		return decimal.Zero, ierr.NewError("payment exceeds total").
			WithHintf("paying %s more would exceed the invoice total", delta).
			Mark(ierr.ErrValidation)
	}

	// the increment is a write: bumping the version fails any in-flight
	// full-record Update holding a pre-increment read
	inv.PaidAmount = newPaid
	inv.Version++
	return newPaid, nil
}

// Clear removes all stored invoices and resets sequences
func (s *InMemoryInvoiceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = make(map[string]*invoice.Invoice)
	s.numbers = make(map[string]string)
	s.sequences = make(map[string]int64)
}
