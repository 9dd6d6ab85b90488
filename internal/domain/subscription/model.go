package subscription

import (
	"time"

	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Subscription represents a recurring billing agreement with a client.
type Subscription struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`

	// Amount is billed as a LABOR line item every period.
	Amount decimal.Decimal `json:"amount"`

	// ExternalCostAmount, when positive, is billed as an additional
	// EXTERNAL_COST pass-through line item every period.
	ExternalCostAmount decimal.Decimal `json:"external_cost_amount"`

	BillingPeriod      types.BillingPeriod      `json:"billing_period"`
	SubscriptionStatus types.SubscriptionStatus `json:"subscription_status"`

	// NextDueDate only ever advances, and only after a successful
	// invoice creation for the current period.
	NextDueDate time.Time  `json:"next_due_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`

	// PaymentsIssuedCount counts invoices issued over the lifetime of
	// the agreement.
	PaymentsIssuedCount int `json:"payments_issued_count"`

	// Version is bumped on every update for optimistic concurrency.
	Version int `json:"version"`

	EnvironmentID string `json:"environment_id"`
	types.BaseModel
}

// Validate validates the subscription.
func (s *Subscription) Validate() error {
	if s.ClientID == "" {
		return ierr.NewError("client_id is required").Mark(ierr.ErrValidation)
	}
	if err := s.BillingPeriod.Validate(); err != nil {
		return err
	}
	if s.Amount.IsNegative() {
		return ierr.NewError("amount must not be negative").
			WithHint("Subscription amount must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if s.ExternalCostAmount.IsNegative() {
		return ierr.NewError("external_cost_amount must not be negative").
			WithHint("External cost amount must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if s.NextDueDate.IsZero() {
		return ierr.NewError("next_due_date is required").Mark(ierr.ErrValidation)
	}
	return nil
}

// IsDue reports whether the subscription should be billed at now:
// it is active, its next due date has been reached and its end date,
// if any, has not passed.
func (s *Subscription) IsDue(now time.Time) bool {
	if s.SubscriptionStatus != types.SubscriptionStatusActive {
		return false
	}
	if s.NextDueDate.After(now) {
		return false
	}
	if s.EndDate != nil && !s.EndDate.After(now) {
		return false
	}
	return true
}

// AdvanceSchedule moves the subscription forward by exactly one period
// and increments the issued counter. Callers invoke this only after the
// period's invoice has been persisted.
func (s *Subscription) AdvanceSchedule() {
	s.NextDueDate = types.NextBillingDate(s.NextDueDate, s.BillingPeriod)
	s.PaymentsIssuedCount++
}
