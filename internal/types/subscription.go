package types

import (
	"time"

	ierr "github.com/clientdesk/clientdesk/internal/errors"
)

// SubscriptionStatus is the lifecycle status of a recurring agreement.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusSuspended SubscriptionStatus = "SUSPENDED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionStatusEnded     SubscriptionStatus = "ENDED"
)

// BillingPeriod is the cadence at which a subscription is invoiced.
type BillingPeriod string

const (
	BillingPeriodMonthly    BillingPeriod = "MONTHLY"
	BillingPeriodQuarterly  BillingPeriod = "QUARTERLY"
	BillingPeriodSemiAnnual BillingPeriod = "SEMIANNUAL"
	BillingPeriodAnnual     BillingPeriod = "ANNUAL"
)

func (p BillingPeriod) Validate() error {
	switch p {
	case BillingPeriodMonthly, BillingPeriodQuarterly, BillingPeriodSemiAnnual, BillingPeriodAnnual:
		return nil
	default:
		return ierr.NewError("invalid billing period").
			WithHintf("Billing period '%s' is not supported", p).
			Mark(ierr.ErrValidation)
	}
}

// Months returns the period length in calendar months.
func (p BillingPeriod) Months() int {
	switch p {
	case BillingPeriodQuarterly:
		return 3
	case BillingPeriodSemiAnnual:
		return 6
	case BillingPeriodAnnual:
		return 12
	default:
		return 1
	}
}

// NextBillingDate advances a due date by exactly one period. Dates that
// would overflow a shorter month clamp to that month's last day, so a
// Jan 31 monthly anchor bills on Feb 28/29 rather than rolling into
// March.
func NextBillingDate(current time.Time, period BillingPeriod) time.Time {
	months := period.Months()
	year, month, day := current.Date()
	next := time.Date(year, month+time.Month(months), 1, current.Hour(), current.Minute(), current.Second(), current.Nanosecond(), current.Location())
	if lastDay := daysInMonth(next.Year(), next.Month()); day > lastDay {
		day = lastDay
	}
	return time.Date(next.Year(), next.Month(), day, current.Hour(), current.Minute(), current.Second(), current.Nanosecond(), current.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SubscriptionFilter represents the filter options for subscriptions.
type SubscriptionFilter struct {
	*QueryFilter
	SubscriptionIDs    []string            `json:"subscription_ids,omitempty" form:"subscription_ids"`
	ClientIDs          []string            `json:"client_ids,omitempty" form:"client_ids"`
	SubscriptionStatus *SubscriptionStatus `json:"subscription_status,omitempty" form:"subscription_status"`
	NextDueBefore      *time.Time          `json:"next_due_before,omitempty" form:"next_due_before"`
}

// NewSubscriptionFilter creates a subscription filter with defaults.
func NewSubscriptionFilter() *SubscriptionFilter {
	return &SubscriptionFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}
