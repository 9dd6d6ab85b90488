package timerecord

import (
	"context"
	"time"

	"github.com/clientdesk/clientdesk/internal/types"
)

// Repository defines the interface for time record persistence operations
type Repository interface {
	// Create creates a new time record
	Create(ctx context.Context, tr *TimeRecord) error

	// Get retrieves a time record by id
	Get(ctx context.Context, id string) (*TimeRecord, error)

	// List retrieves time records matching the filter
	List(ctx context.Context, filter *types.TimeRecordFilter) ([]*TimeRecord, error)

	// ListValidatedForPeriod retrieves an employee's validated records
	// with a work date inside [periodStart, periodEnd)
	ListValidatedForPeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time) ([]*TimeRecord, error)

	// Update persists a modified time record
	Update(ctx context.Context, tr *TimeRecord) error
}
