package subscription

import (
	"context"
	"time"

	"github.com/clientdesk/clientdesk/internal/types"
)

// Repository defines the interface for subscription persistence operations
type Repository interface {
	// Create creates a new subscription
	Create(ctx context.Context, sub *Subscription) error

	// Get retrieves a subscription by id
	Get(ctx context.Context, id string) (*Subscription, error)

	// List retrieves subscriptions matching the filter
	List(ctx context.Context, filter *types.SubscriptionFilter) ([]*Subscription, error)

	// ListDue retrieves active subscriptions due for billing at now
	ListDue(ctx context.Context, now time.Time) ([]*Subscription, error)

	// Update persists a modified subscription. The stored version must
	// match sub.Version; on success the stored version is bumped.
	// A mismatch fails with a version conflict.
	Update(ctx context.Context, sub *Subscription) error
}
