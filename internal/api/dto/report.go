package dto

import "time"

// UnitError records the failure of one unit inside a batch run, keyed
// by the id of the subscription, invoice or forecast that failed.
type UnitError struct {
	UnitID string `json:"unit_id"`
	Error  string `json:"error"`
}

// CycleReport summarizes one batch run. Batch entry points return a
// report rather than failing on partial errors; committed units stand
// regardless of later failures.
type CycleReport struct {
	StartedAt   time.Time   `json:"started_at"`
	CompletedAt time.Time   `json:"completed_at"`
	Processed   int         `json:"processed"`
	Succeeded   int         `json:"succeeded"`
	Failed      int         `json:"failed"`
	Errors      []UnitError `json:"errors,omitempty"`

	// UnitIDs lists the units successfully acted on this run: invoices
	// created, reminders sent or notifications delivered.
	UnitIDs []string `json:"unit_ids,omitempty"`
}

// NewCycleReport starts a report for a run beginning at startedAt.
func NewCycleReport(startedAt time.Time) *CycleReport {
	return &CycleReport{StartedAt: startedAt.UTC()}
}

// RecordSuccess counts a successfully processed unit.
func (r *CycleReport) RecordSuccess(unitID string) {
	r.Processed++
	r.Succeeded++
	r.UnitIDs = append(r.UnitIDs, unitID)
}

// RecordSkip counts a unit that was examined but needed no action.
func (r *CycleReport) RecordSkip() {
	r.Processed++
}

// RecordFailure counts a failed unit without aborting the batch.
func (r *CycleReport) RecordFailure(unitID string, err error) {
	r.Processed++
	r.Failed++
	r.Errors = append(r.Errors, UnitError{UnitID: unitID, Error: err.Error()})
}

// Complete stamps the end of the run.
func (r *CycleReport) Complete(completedAt time.Time) *CycleReport {
	r.CompletedAt = completedAt.UTC()
	return r
}
