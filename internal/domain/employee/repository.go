package employee

import "context"

// Repository defines the interface for employee persistence operations
type Repository interface {
	// Create creates a new employee
	Create(ctx context.Context, e *Employee) error

	// Get retrieves an employee by id
	Get(ctx context.Context, id string) (*Employee, error)

	// Update persists a modified employee
	Update(ctx context.Context, e *Employee) error
}
