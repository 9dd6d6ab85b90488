package memory

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/domain/payment"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/samber/lo"
)

// PaymentStore implements payment.Repository
type PaymentStore struct {
	store *InMemoryStore[*payment.Payment]
}

// NewPaymentStore creates a new in-memory payment store
func NewPaymentStore() *PaymentStore {
	return &PaymentStore{
		store: NewInMemoryStore[*payment.Payment](),
	}
}

func copyPayment(p *payment.Payment) *payment.Payment {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

func (r *PaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").Mark(ierr.ErrValidation)
	}
	if p.EnvironmentID == "" {
		p.EnvironmentID = types.GetEnvironmentID(ctx)
	}
	if err := r.store.Create(ctx, p.ID, copyPayment(p)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create payment").
			WithReportableDetails(map[string]interface{}{
				"id": p.ID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (r *PaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	p, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("payment not found").
			WithHint("Payment not found").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyPayment(p), nil
}

func (r *PaymentStore) ListByInvoice(ctx context.Context, invoiceID string) ([]*payment.Payment, error) {
	items := r.store.List(ctx, func(p *payment.Payment) bool {
		return p.Status == types.StatusPublished && p.InvoiceID == invoiceID
	})
	return lo.Map(items, func(p *payment.Payment, _ int) *payment.Payment {
		return copyPayment(p)
	}), nil
}

func (r *PaymentStore) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	if filter == nil {
		filter = types.NewPaymentFilter()
	}
	items := r.store.List(ctx, func(p *payment.Payment) bool {
		if p.Status != filter.GetStatus() {
			return false
		}
		if len(filter.PaymentIDs) > 0 && !lo.Contains(filter.PaymentIDs, p.ID) {
			return false
		}
		if len(filter.InvoiceIDs) > 0 && !lo.Contains(filter.InvoiceIDs, p.InvoiceID) {
			return false
		}
		if len(filter.PaymentStatuses) > 0 && !lo.Contains(filter.PaymentStatuses, p.PaymentStatus) {
			return false
		}
		return true
	})
	return lo.Map(items, func(p *payment.Payment, _ int) *payment.Payment {
		return copyPayment(p)
	}), nil
}

func (r *PaymentStore) Update(ctx context.Context, p *payment.Payment) error {
	if p == nil {
		return ierr.NewError("payment cannot be nil").Mark(ierr.ErrValidation)
	}
	if err := r.store.Update(ctx, p.ID, copyPayment(p)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update payment").
			WithReportableDetails(map[string]interface{}{
				"id": p.ID,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *PaymentStore) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete payment").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
