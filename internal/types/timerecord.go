package types

import (
	"time"

	ierr "github.com/clientdesk/clientdesk/internal/errors"
)

// TimeRecordStatus is the approval status of a submitted time record.
// Only validated records count toward compensation.
type TimeRecordStatus string

const (
	TimeRecordStatusPending   TimeRecordStatus = "PENDING"
	TimeRecordStatusValidated TimeRecordStatus = "VALIDATED"
	TimeRecordStatusRejected  TimeRecordStatus = "REJECTED"
	TimeRecordStatusCorrected TimeRecordStatus = "CORRECTED"
)

func (s TimeRecordStatus) Validate() error {
	switch s {
	case TimeRecordStatusPending, TimeRecordStatusValidated, TimeRecordStatusRejected, TimeRecordStatusCorrected:
		return nil
	default:
		return ierr.NewError("invalid time record status").
			WithHintf("Time record status '%s' is not supported", s).
			Mark(ierr.ErrValidation)
	}
}

// TimeRecordFilter represents the filter options for time records.
type TimeRecordFilter struct {
	*QueryFilter
	TimeRecordIDs    []string          `json:"time_record_ids,omitempty" form:"time_record_ids"`
	EmployeeIDs      []string          `json:"employee_ids,omitempty" form:"employee_ids"`
	TimeRecordStatus *TimeRecordStatus `json:"time_record_status,omitempty" form:"time_record_status"`
	WorkDateFrom     *time.Time        `json:"work_date_from,omitempty" form:"work_date_from"`
	WorkDateTo       *time.Time        `json:"work_date_to,omitempty" form:"work_date_to"`
}

// NewTimeRecordFilter creates a time record filter with defaults.
func NewTimeRecordFilter() *TimeRecordFilter {
	return &TimeRecordFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}
