package employee

import (
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Employee carries the compensation-relevant attributes of a team
// member. The rest of the employee profile lives outside this core.
type Employee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	// HourlyRate may be zero when compensation has not been configured;
	// forecasting skips such employees.
	HourlyRate decimal.Decimal `json:"hourly_rate"`

	EnvironmentID string `json:"environment_id"`
	types.BaseModel
}

// Validate validates the employee.
func (e *Employee) Validate() error {
	if e.Name == "" {
		return ierr.NewError("name is required").Mark(ierr.ErrValidation)
	}
	if e.HourlyRate.IsNegative() {
		return ierr.NewError("hourly_rate must not be negative").
			WithHint("Hourly rate must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// HasRate reports whether a usable hourly rate is configured.
func (e *Employee) HasRate() bool {
	return e.HourlyRate.IsPositive()
}
