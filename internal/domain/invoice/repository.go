package invoice

import (
	"context"
	"time"

	"github.com/clientdesk/clientdesk/internal/types"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create creates a new invoice with its line items. Fails with an
	// already-exists error when the invoice number is taken.
	Create(ctx context.Context, inv *Invoice) error

	// Get retrieves an invoice with its line items
	Get(ctx context.Context, id string) (*Invoice, error)

	// List retrieves invoices matching the filter
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)

	// ListOverdueCandidates retrieves unpaid or partially paid invoices
	// whose due date has passed
	ListOverdueCandidates(ctx context.Context, now time.Time) ([]*Invoice, error)

	// Update persists a modified invoice. The stored version must match
	// inv.Version; a mismatch fails with a version conflict.
	Update(ctx context.Context, inv *Invoice) error

	// NextInvoiceSequence atomically allocates the next number in the
	// per-period invoice sequence.
	NextInvoiceSequence(ctx context.Context, periodKey string) (int, error)
}
