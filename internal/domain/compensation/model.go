package compensation

import (
	"time"

	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Forecast is the projected compensation of one employee for one
// month, recomputed from validated time records on every relevant
// transition. NotificationDate is set at most once per key.
type Forecast struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`

	ForecastedAmount decimal.Decimal `json:"forecasted_amount"`

	NotifiedAmount   *decimal.Decimal `json:"notified_amount,omitempty"`
	NotificationDate *time.Time       `json:"notification_date,omitempty"`

	// Version is bumped on every update for optimistic concurrency.
	Version int `json:"version"`

	EnvironmentID string `json:"environment_id"`
	types.BaseModel
}

// Validate validates the forecast.
func (f *Forecast) Validate() error {
	if f.EmployeeID == "" {
		return ierr.NewError("employee_id is required").Mark(ierr.ErrValidation)
	}
	if f.Month < 1 || f.Month > 12 {
		return ierr.NewError("month out of range").
			WithHint("Month must be between 1 and 12").
			Mark(ierr.ErrValidation)
	}
	if f.Year < 2000 {
		return ierr.NewError("year out of range").Mark(ierr.ErrValidation)
	}
	if f.ForecastedAmount.IsNegative() {
		return ierr.NewError("forecasted_amount must not be negative").Mark(ierr.ErrValidation)
	}
	return nil
}

// Key returns the forecast's period key.
func (f *Forecast) Key() types.PeriodKey {
	return types.PeriodKey{EmployeeID: f.EmployeeID, Month: f.Month, Year: f.Year}
}

// Notified reports whether the pre-payment notification went out.
func (f *Forecast) Notified() bool {
	return f.NotificationDate != nil
}

// MarkNotified records the one-time notification. Fails when the
// forecast was already notified so a double send can never be persisted.
func (f *Forecast) MarkNotified(now time.Time) error {
	if f.Notified() {
		return ierr.NewError("forecast already notified").
			WithHint("A compensation notification is sent at most once per period").
			WithReportableDetails(map[string]interface{}{
				"employee_id": f.EmployeeID,
				"month":       f.Month,
				"year":        f.Year,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	sent := now.UTC()
	notified := f.ForecastedAmount
	f.NotificationDate = &sent
	f.NotifiedAmount = &notified
	return nil
}
