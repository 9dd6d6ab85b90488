package memory

import (
	"context"
	"fmt"

	"github.com/clientdesk/clientdesk/internal/domain/compensation"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/samber/lo"
)

// CompensationStore implements compensation.Repository. Forecasts are
// keyed by their (employee, month, year) period key, so Upsert is a
// plain overwrite at the key.
type CompensationStore struct {
	store *InMemoryStore[*compensation.Forecast]
}

// NewCompensationStore creates a new in-memory forecast store
func NewCompensationStore() *CompensationStore {
	return &CompensationStore{
		store: NewInMemoryStore[*compensation.Forecast](),
	}
}

func forecastStoreKey(key types.PeriodKey) string {
	return fmt.Sprintf("%s:%04d-%02d", key.EmployeeID, key.Year, key.Month)
}

func copyForecast(f *compensation.Forecast) *compensation.Forecast {
	if f == nil {
		return nil
	}
	copied := *f
	if f.NotifiedAmount != nil {
		copied.NotifiedAmount = lo.ToPtr(*f.NotifiedAmount)
	}
	if f.NotificationDate != nil {
		copied.NotificationDate = lo.ToPtr(*f.NotificationDate)
	}
	return &copied
}

func (r *CompensationStore) GetByKey(ctx context.Context, key types.PeriodKey) (*compensation.Forecast, error) {
	f, err := r.store.Get(ctx, forecastStoreKey(key))
	if err != nil {
		return nil, ierr.NewError("compensation forecast not found").
			WithHint("Compensation forecast not found").
			WithReportableDetails(map[string]interface{}{
				"employee_id": key.EmployeeID,
				"month":       key.Month,
				"year":        key.Year,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyForecast(f), nil
}

func (r *CompensationStore) Upsert(ctx context.Context, f *compensation.Forecast) error {
	if f == nil {
		return ierr.NewError("forecast cannot be nil").Mark(ierr.ErrValidation)
	}
	if f.EnvironmentID == "" {
		f.EnvironmentID = types.GetEnvironmentID(ctx)
	}
	storeKey := forecastStoreKey(f.Key())
	if err := r.store.Update(ctx, storeKey, copyForecast(f)); err != nil {
		return r.createAtKey(ctx, storeKey, f)
	}
	return nil
}

func (r *CompensationStore) createAtKey(ctx context.Context, storeKey string, f *compensation.Forecast) error {
	if err := r.store.Create(ctx, storeKey, copyForecast(f)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to upsert compensation forecast").
			WithReportableDetails(map[string]interface{}{
				"employee_id": f.EmployeeID,
				"month":       f.Month,
				"year":        f.Year,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *CompensationStore) List(ctx context.Context, filter *types.CompensationForecastFilter) ([]*compensation.Forecast, error) {
	if filter == nil {
		filter = types.NewCompensationForecastFilter()
	}
	items := r.store.List(ctx, func(f *compensation.Forecast) bool {
		if f.Status != filter.GetStatus() {
			return false
		}
		if len(filter.EmployeeIDs) > 0 && !lo.Contains(filter.EmployeeIDs, f.EmployeeID) {
			return false
		}
		if filter.Month != nil && f.Month != *filter.Month {
			return false
		}
		if filter.Year != nil && f.Year != *filter.Year {
			return false
		}
		if filter.NotifiedOnly != nil && f.Notified() != *filter.NotifiedOnly {
			return false
		}
		return true
	})
	return lo.Map(items, func(f *compensation.Forecast, _ int) *compensation.Forecast {
		return copyForecast(f)
	}), nil
}

func (r *CompensationStore) ListUnnotified(ctx context.Context, month, year int) ([]*compensation.Forecast, error) {
	items := r.store.List(ctx, func(f *compensation.Forecast) bool {
		return f.Status == types.StatusPublished && f.Month == month && f.Year == year && !f.Notified()
	})
	return lo.Map(items, func(f *compensation.Forecast, _ int) *compensation.Forecast {
		return copyForecast(f)
	}), nil
}

func (r *CompensationStore) Update(ctx context.Context, f *compensation.Forecast) error {
	if f == nil {
		return ierr.NewError("forecast cannot be nil").Mark(ierr.ErrValidation)
	}
	err := r.store.Mutate(ctx, forecastStoreKey(f.Key()), func(existing *compensation.Forecast) (*compensation.Forecast, error) {
		if existing.Version != f.Version {
			return nil, ierr.NewError("forecast version conflict").
				WithHint("The forecast was modified concurrently").
				WithReportableDetails(map[string]interface{}{
					"employee_id":      f.EmployeeID,
					"month":            f.Month,
					"year":             f.Year,
					"expected_version": f.Version,
					"stored_version":   existing.Version,
				}).
				Mark(ierr.ErrVersionConflict)
		}
		next := copyForecast(f)
		next.Version++
		return next, nil
	})
	if err != nil {
		if ierr.IsVersionConflict(err) {
			return err
		}
		return ierr.WithError(err).
			WithHint("Failed to update compensation forecast").
			WithReportableDetails(map[string]interface{}{
				"employee_id": f.EmployeeID,
				"month":       f.Month,
				"year":        f.Year,
			}).
			Mark(ierr.ErrNotFound)
	}
	f.Version++
	return nil
}
