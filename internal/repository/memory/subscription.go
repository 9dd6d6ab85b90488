package memory

import (
	"context"
	"time"

	"github.com/clientdesk/clientdesk/internal/domain/subscription"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/samber/lo"
)

// SubscriptionStore implements subscription.Repository
type SubscriptionStore struct {
	store *InMemoryStore[*subscription.Subscription]
}

// NewSubscriptionStore creates a new in-memory subscription store
func NewSubscriptionStore() *SubscriptionStore {
	return &SubscriptionStore{
		store: NewInMemoryStore[*subscription.Subscription](),
	}
}

func copySubscription(s *subscription.Subscription) *subscription.Subscription {
	if s == nil {
		return nil
	}
	copied := *s
	if s.EndDate != nil {
		copied.EndDate = lo.ToPtr(*s.EndDate)
	}
	return &copied
}

func (r *SubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription cannot be nil").Mark(ierr.ErrValidation)
	}
	if sub.EnvironmentID == "" {
		sub.EnvironmentID = types.GetEnvironmentID(ctx)
	}
	if err := r.store.Create(ctx, sub.ID, copySubscription(sub)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create subscription").
			WithReportableDetails(map[string]interface{}{
				"id": sub.ID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (r *SubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copySubscription(sub), nil
}

func (r *SubscriptionStore) List(ctx context.Context, filter *types.SubscriptionFilter) ([]*subscription.Subscription, error) {
	if filter == nil {
		filter = types.NewSubscriptionFilter()
	}
	items := r.store.List(ctx, func(s *subscription.Subscription) bool {
		if s.Status != filter.GetStatus() {
			return false
		}
		if len(filter.SubscriptionIDs) > 0 && !lo.Contains(filter.SubscriptionIDs, s.ID) {
			return false
		}
		if len(filter.ClientIDs) > 0 && !lo.Contains(filter.ClientIDs, s.ClientID) {
			return false
		}
		if filter.SubscriptionStatus != nil && s.SubscriptionStatus != *filter.SubscriptionStatus {
			return false
		}
		if filter.NextDueBefore != nil && !s.NextDueDate.Before(*filter.NextDueBefore) {
			return false
		}
		return true
	})
	return lo.Map(items, func(s *subscription.Subscription, _ int) *subscription.Subscription {
		return copySubscription(s)
	}), nil
}

func (r *SubscriptionStore) ListDue(ctx context.Context, now time.Time) ([]*subscription.Subscription, error) {
	items := r.store.List(ctx, func(s *subscription.Subscription) bool {
		return s.Status == types.StatusPublished && s.IsDue(now)
	})
	return lo.Map(items, func(s *subscription.Subscription, _ int) *subscription.Subscription {
		return copySubscription(s)
	}), nil
}

func (r *SubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription cannot be nil").Mark(ierr.ErrValidation)
	}
	err := r.store.Mutate(ctx, sub.ID, func(existing *subscription.Subscription) (*subscription.Subscription, error) {
		if existing.Version != sub.Version {
			return nil, ierr.NewError("subscription version conflict").
				WithHint("The subscription was modified concurrently").
				WithReportableDetails(map[string]interface{}{
					"id":               sub.ID,
					"expected_version": sub.Version,
					"stored_version":   existing.Version,
				}).
				Mark(ierr.ErrVersionConflict)
		}
		next := copySubscription(sub)
		next.Version++
		return next, nil
	})
	if err != nil {
		if ierr.IsVersionConflict(err) {
			return err
		}
		return ierr.WithError(err).
			WithHint("Failed to update subscription").
			WithReportableDetails(map[string]interface{}{
				"id": sub.ID,
			}).
			Mark(ierr.ErrNotFound)
	}
	sub.Version++
	return nil
}
