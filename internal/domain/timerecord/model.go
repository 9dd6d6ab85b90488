package timerecord

import (
	"time"

	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
)

// TimeRecord represents hours submitted by an employee for one working
// day on a project or task.
type TimeRecord struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	ProjectID  string `json:"project_id,omitempty"`
	TaskID     string `json:"task_id,omitempty"`

	WorkDate      time.Time       `json:"work_date"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`

	TimeRecordStatus types.TimeRecordStatus `json:"time_record_status"`

	EnvironmentID string `json:"environment_id"`
	types.BaseModel
}

// Validate validates the time record.
func (t *TimeRecord) Validate() error {
	if t.EmployeeID == "" {
		return ierr.NewError("employee_id is required").Mark(ierr.ErrValidation)
	}
	if t.WorkDate.IsZero() {
		return ierr.NewError("work_date is required").Mark(ierr.ErrValidation)
	}
	if t.RegularHours.IsNegative() || t.OvertimeHours.IsNegative() {
		return ierr.NewError("hours must not be negative").
			WithHint("Regular and overtime hours must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return t.TimeRecordStatus.Validate()
}

// TotalHours returns regular plus overtime hours.
func (t *TimeRecord) TotalHours() decimal.Decimal {
	return t.RegularHours.Add(t.OvertimeHours)
}

// CountsTowardCompensation reports whether the record contributes to
// the compensation forecast.
func (t *TimeRecord) CountsTowardCompensation() bool {
	return t.TimeRecordStatus == types.TimeRecordStatusValidated
}
