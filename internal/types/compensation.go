package types

import "time"

// PeriodKey identifies one compensation month for one employee.
type PeriodKey struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

// PeriodKeyFor resolves the compensation period a reference date falls in.
func PeriodKeyFor(employeeID string, referenceDate time.Time) PeriodKey {
	ref := referenceDate.UTC()
	return PeriodKey{
		EmployeeID: employeeID,
		Month:      int(ref.Month()),
		Year:       ref.Year(),
	}
}

// PeriodBounds returns the inclusive start and exclusive end of a
// compensation month in UTC.
func (k PeriodKey) PeriodBounds() (time.Time, time.Time) {
	start := time.Date(k.Year, time.Month(k.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// LastDayOfMonth returns midnight UTC on the month's final day.
func (k PeriodKey) LastDayOfMonth() time.Time {
	return time.Date(k.Year, time.Month(k.Month)+1, 0, 0, 0, 0, 0, time.UTC)
}

// CompensationForecastFilter represents the filter options for forecasts.
type CompensationForecastFilter struct {
	*QueryFilter
	EmployeeIDs  []string `json:"employee_ids,omitempty" form:"employee_ids"`
	Month        *int     `json:"month,omitempty" form:"month"`
	Year         *int     `json:"year,omitempty" form:"year"`
	NotifiedOnly *bool    `json:"notified_only,omitempty" form:"notified_only"`
}

// NewCompensationForecastFilter creates a forecast filter with defaults.
func NewCompensationForecastFilter() *CompensationForecastFilter {
	return &CompensationForecastFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}
