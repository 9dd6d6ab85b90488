package compensation

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/types"
)

// Repository defines the interface for forecast persistence operations
type Repository interface {
	// GetByKey retrieves the forecast for one employee period
	GetByKey(ctx context.Context, key types.PeriodKey) (*Forecast, error)

	// Upsert creates or replaces the forecast for its period key
	Upsert(ctx context.Context, f *Forecast) error

	// List retrieves forecasts matching the filter
	List(ctx context.Context, filter *types.CompensationForecastFilter) ([]*Forecast, error)

	// ListUnnotified retrieves forecasts for the given month/year whose
	// notification has not gone out yet
	ListUnnotified(ctx context.Context, month, year int) ([]*Forecast, error)

	// Update persists a modified forecast. The stored version must
	// match f.Version; a mismatch fails with a version conflict.
	Update(ctx context.Context, f *Forecast) error
}
