package memory

import (
	"context"
	"time"

	"github.com/clientdesk/clientdesk/internal/domain/timerecord"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/samber/lo"
)

// TimeRecordStore implements timerecord.Repository
type TimeRecordStore struct {
	store *InMemoryStore[*timerecord.TimeRecord]
}

// NewTimeRecordStore creates a new in-memory time record store
func NewTimeRecordStore() *TimeRecordStore {
	return &TimeRecordStore{
		store: NewInMemoryStore[*timerecord.TimeRecord](),
	}
}

func copyTimeRecord(tr *timerecord.TimeRecord) *timerecord.TimeRecord {
	if tr == nil {
		return nil
	}
	copied := *tr
	return &copied
}

func (r *TimeRecordStore) Create(ctx context.Context, tr *timerecord.TimeRecord) error {
	if tr == nil {
		return ierr.NewError("time record cannot be nil").Mark(ierr.ErrValidation)
	}
	if tr.EnvironmentID == "" {
		tr.EnvironmentID = types.GetEnvironmentID(ctx)
	}
	if err := r.store.Create(ctx, tr.ID, copyTimeRecord(tr)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create time record").
			WithReportableDetails(map[string]interface{}{
				"id": tr.ID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (r *TimeRecordStore) Get(ctx context.Context, id string) (*timerecord.TimeRecord, error) {
	tr, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("time record not found").
			WithHint("Time record not found").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyTimeRecord(tr), nil
}

func (r *TimeRecordStore) List(ctx context.Context, filter *types.TimeRecordFilter) ([]*timerecord.TimeRecord, error) {
	if filter == nil {
		filter = types.NewTimeRecordFilter()
	}
	items := r.store.List(ctx, func(tr *timerecord.TimeRecord) bool {
		if tr.Status != filter.GetStatus() {
			return false
		}
		if len(filter.TimeRecordIDs) > 0 && !lo.Contains(filter.TimeRecordIDs, tr.ID) {
			return false
		}
		if len(filter.EmployeeIDs) > 0 && !lo.Contains(filter.EmployeeIDs, tr.EmployeeID) {
			return false
		}
		if filter.TimeRecordStatus != nil && tr.TimeRecordStatus != *filter.TimeRecordStatus {
			return false
		}
		if filter.WorkDateFrom != nil && tr.WorkDate.Before(*filter.WorkDateFrom) {
			return false
		}
		if filter.WorkDateTo != nil && !tr.WorkDate.Before(*filter.WorkDateTo) {
			return false
		}
		return true
	})
	return lo.Map(items, func(tr *timerecord.TimeRecord, _ int) *timerecord.TimeRecord {
		return copyTimeRecord(tr)
	}), nil
}

func (r *TimeRecordStore) ListValidatedForPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) ([]*timerecord.TimeRecord, error) {
	items := r.store.List(ctx, func(tr *timerecord.TimeRecord) bool {
		if tr.Status != types.StatusPublished {
			return false
		}
		if tr.EmployeeID != employeeID || !tr.CountsTowardCompensation() {
			return false
		}
		return !tr.WorkDate.Before(periodStart) && tr.WorkDate.Before(periodEnd)
	})
	return lo.Map(items, func(tr *timerecord.TimeRecord, _ int) *timerecord.TimeRecord {
		return copyTimeRecord(tr)
	}), nil
}

func (r *TimeRecordStore) Update(ctx context.Context, tr *timerecord.TimeRecord) error {
	if tr == nil {
		return ierr.NewError("time record cannot be nil").Mark(ierr.ErrValidation)
	}
	if err := r.store.Update(ctx, tr.ID, copyTimeRecord(tr)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update time record").
			WithReportableDetails(map[string]interface{}{
				"id": tr.ID,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
