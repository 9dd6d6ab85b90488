package memory

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/domain/employee"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
)

// EmployeeStore implements employee.Repository
type EmployeeStore struct {
	store *InMemoryStore[*employee.Employee]
}

// NewEmployeeStore creates a new in-memory employee store
func NewEmployeeStore() *EmployeeStore {
	return &EmployeeStore{
		store: NewInMemoryStore[*employee.Employee](),
	}
}

func copyEmployee(e *employee.Employee) *employee.Employee {
	if e == nil {
		return nil
	}
	copied := *e
	return &copied
}

func (r *EmployeeStore) Create(ctx context.Context, e *employee.Employee) error {
	if e == nil {
		return ierr.NewError("employee cannot be nil").Mark(ierr.ErrValidation)
	}
	if e.EnvironmentID == "" {
		e.EnvironmentID = types.GetEnvironmentID(ctx)
	}
	if err := r.store.Create(ctx, e.ID, copyEmployee(e)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create employee").
			WithReportableDetails(map[string]interface{}{
				"id": e.ID,
			}).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (r *EmployeeStore) Get(ctx context.Context, id string) (*employee.Employee, error) {
	e, err := r.store.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("employee not found").
			WithHint("Employee not found").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyEmployee(e), nil
}

func (r *EmployeeStore) Update(ctx context.Context, e *employee.Employee) error {
	if e == nil {
		return ierr.NewError("employee cannot be nil").Mark(ierr.ErrValidation)
	}
	if err := r.store.Update(ctx, e.ID, copyEmployee(e)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update employee").
			WithReportableDetails(map[string]interface{}{
				"id": e.ID,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
