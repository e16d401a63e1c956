package invoice

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for invoice persistence operations.
//
// Two operations carry correctness-critical concurrency contracts:
//
//   - Create must enforce a uniqueness constraint on the invoice number and
//     fail with an already-exists conflict on duplicates, so that callers
//     can re-derive and resubmit.
//   - NextSequence must be an atomic increment-and-return per prefix;
//     unsynchronized read-max-then-add-one is unsafe under concurrent
//     creation and must not back this method.
type Repository interface {
	// Create persists a new invoice. Conflicts on a duplicate invoice number.
	Create(ctx context.Context, inv *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update persists an existing invoice using optimistic concurrency on
	// its version; a stale version fails with a version conflict.
	Update(ctx context.Context, inv *Invoice) error

	// ListNumbers returns every invoice number issued with the prefix,
	// in ascending order
	ListNumbers(ctx context.Context, prefix string) ([]string, error)

	// NextSequence atomically increments and returns the number sequence
	// for the prefix
	NextSequence(ctx context.Context, prefix string) (int64, error)

	// IncrementPaid atomically adds delta to the invoice's paid amount and
	// returns the new value. Fails with a validation error when the result
	// would exceed the total, so concurrent postings cannot overpay. The
	// increment advances the record version, so an Update holding a
	// pre-increment read fails its version check instead of clobbering
	// the posting.
	IncrementPaid(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error)
}
