package payment

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/types"
)

// Repository defines the interface for payment persistence operations
type Repository interface {
	// Create creates a new payment
	Create(ctx context.Context, p *Payment) error

	// Get retrieves a payment by id
	Get(ctx context.Context, id string) (*Payment, error)

	// ListByInvoice retrieves all payments recorded against an invoice
	ListByInvoice(ctx context.Context, invoiceID string) ([]*Payment, error)

	// List retrieves payments matching the filter
	List(ctx context.Context, filter *types.PaymentFilter) ([]*Payment, error)

	// Update persists a modified payment
	Update(ctx context.Context, p *Payment) error

	// Delete removes a payment
	Delete(ctx context.Context, id string) error
}
