package memory

import (
	"context"
	"sync"
	"time"

	"github.com/clientdesk/clientdesk/internal/domain/invoice"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/samber/lo"
)

// InvoiceStore implements invoice.Repository
type InvoiceStore struct {
	store *InMemoryStore[*invoice.Invoice]

	mu        sync.Mutex
	numbers   map[string]string // invoice number -> invoice id
	sequences map[string]int    // period key -> last allocated sequence
}

// NewInvoiceStore creates a new in-memory invoice store
func NewInvoiceStore() *InvoiceStore {
	return &InvoiceStore{
		store:     NewInMemoryStore[*invoice.Invoice](),
		numbers:   make(map[string]string),
		sequences: make(map[string]int),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	copied := *inv
	if inv.SubscriptionID != nil {
		copied.SubscriptionID = lo.ToPtr(*inv.SubscriptionID)
	}
	if inv.ProjectID != nil {
		copied.ProjectID = lo.ToPtr(*inv.ProjectID)
	}
	copied.LineItems = lo.Map(inv.LineItems, func(li *invoice.LineItem, _ int) *invoice.LineItem {
		liCopy := *li
		liCopy.Metadata = lo.Assign(types.Metadata{}, li.Metadata)
		return &liCopy
	})
	copied.ReminderNotes = append([]invoice.ReminderNote(nil), inv.ReminderNotes...)
	return &copied
}

func (r *InvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}
	if inv.EnvironmentID == "" {
		inv.EnvironmentID = types.GetEnvironmentID(ctx)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, taken := r.numbers[inv.InvoiceNumber]; taken && existingID != inv.ID {
		return ierr.NewError("invoice number already taken").
			WithHint("An invoice with this number already exists").
			WithReportableDetails(map[string]interface{}{
				"invoice_number": inv.InvoiceNumber,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	if err := r.store.Create(ctx, inv.ID, copyInvoice(inv)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			WithReportableDetails(map[string]interface{}{
				"id": inv.ID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	r.numbers[inv.InvoiceNumber] = inv.ID
	return nil
}

func (r *InvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (r *InvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	if filter == nil {
		filter = types.NewInvoiceFilter()
	}
	items := r.store.List(ctx, func(inv *invoice.Invoice) bool {
		if inv.Status != filter.GetStatus() {
			return false
		}
		if len(filter.InvoiceIDs) > 0 && !lo.Contains(filter.InvoiceIDs, inv.ID) {
			return false
		}
		if len(filter.ClientIDs) > 0 && !lo.Contains(filter.ClientIDs, inv.ClientID) {
			return false
		}
		if len(filter.SubscriptionIDs) > 0 && (inv.SubscriptionID == nil || !lo.Contains(filter.SubscriptionIDs, *inv.SubscriptionID)) {
			return false
		}
		if len(filter.InvoiceStatuses) > 0 && !lo.Contains(filter.InvoiceStatuses, inv.InvoiceStatus) {
			return false
		}
		if filter.DueDateBefore != nil && !inv.DueDate.Before(*filter.DueDateBefore) {
			return false
		}
		return true
	})
	return lo.Map(items, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func (r *InvoiceStore) ListOverdueCandidates(ctx context.Context, now time.Time) ([]*invoice.Invoice, error) {
	items := r.store.List(ctx, func(inv *invoice.Invoice) bool {
		if inv.Status != types.StatusPublished {
			return false
		}
		if inv.InvoiceStatus != types.InvoiceStatusUnpaid && inv.InvoiceStatus != types.InvoiceStatusPartiallyPaid {
			return false
		}
		return inv.DueDate.Before(now)
	})
	return lo.Map(items, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func (r *InvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}
	err := r.store.Mutate(ctx, inv.ID, func(existing *invoice.Invoice) (*invoice.Invoice, error) {
		if existing.Version != inv.Version {
			return nil, ierr.NewError("invoice version conflict").
				WithHint("The invoice was modified concurrently").
				WithReportableDetails(map[string]interface{}{
					"id":               inv.ID,
					"expected_version": inv.Version,
					"stored_version":   existing.Version,
				}).
				Mark(ierr.ErrVersionConflict)
		}
		next := copyInvoice(inv)
		next.Version++
		return next, nil
	})
	if err != nil {
		if ierr.IsVersionConflict(err) {
			return err
		}
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			WithReportableDetails(map[string]interface{}{
				"id": inv.ID,
			}).
			Mark(ierr.ErrNotFound)
	}
	inv.Version++
	return nil
}

// NextInvoiceSequence allocates the next number in the per-period
// sequence. Allocation is atomic; a gap can appear when invoice
// creation fails after allocation, which is acceptable for invoice
// numbering.
func (r *InvoiceStore) NextInvoiceSequence(ctx context.Context, periodKey string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sequences[periodKey]++
	return r.sequences[periodKey], nil
}
