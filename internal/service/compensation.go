package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clientdesk/clientdesk/internal/api/dto"
	"github.com/clientdesk/clientdesk/internal/domain/compensation"
	"github.com/clientdesk/clientdesk/internal/domain/timerecord"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/notification"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
)

// CompensationService maintains per-employee compensation forecasts
// from validated time records and sends the one-time pre-payment
// notification ahead of each month's end.
type CompensationService interface {
	// Recalculate recomputes the forecast for the employee's month
	// containing referenceDate. It is a full recomputation, not an
	// increment, so it stays correct under corrections.
	Recalculate(ctx context.Context, employeeID string, referenceDate time.Time) (*compensation.Forecast, error)

	// ApplyTimeRecordTransition moves a time record to a new approval
	// status and recalculates the affected forecast when the record
	// enters or leaves the validated state.
	ApplyTimeRecordTransition(ctx context.Context, timeRecordID string, newStatus types.TimeRecordStatus) (*timerecord.TimeRecord, error)

	// SendPendingNotifications notifies every forecast of the current
	// month that has reached the lead-time window and has not been
	// notified yet. At most one notification per (employee, month,
	// year) is ever sent.
	SendPendingNotifications(ctx context.Context, now time.Time) (*dto.CycleReport, error)
}

type compensationService struct {
	ServiceParams
}

// NewCompensationService creates a new compensation service
func NewCompensationService(params ServiceParams) CompensationService {
	return &compensationService{
		ServiceParams: params,
	}
}

func forecastLockKey(key types.PeriodKey) string {
	return types.GenerateLockKey(types.LockScopeForecast, map[string]interface{}{
		"employee_id": key.EmployeeID,
		"month":       key.Month,
		"year":        key.Year,
	})
}

func (s *compensationService) Recalculate(ctx context.Context, employeeID string, referenceDate time.Time) (*compensation.Forecast, error) {
	emp, err := s.EmployeeRepo.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !emp.HasRate() {
		s.Logger.Warnw("employee has no hourly rate, skipping forecast recalculation",
			"employee_id", employeeID)
		return nil, nil
	}

	key := types.PeriodKeyFor(employeeID, referenceDate)
	periodStart, periodEnd := key.PeriodBounds()

	records, err := s.TimeRecordRepo.ListValidatedForPeriod(ctx, employeeID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	hours := decimal.Zero
	for _, tr := range records {
		hours = hours.Add(tr.TotalHours())
	}
	forecasted := hours.Mul(emp.HourlyRate)

	var result *compensation.Forecast
	err = s.Locker.WithLock(ctx, forecastLockKey(key), func(ctx context.Context) error {
		forecast, err := s.CompensationRepo.GetByKey(ctx, key)
		if err != nil {
			if !ierr.IsNotFound(err) {
				return err
			}
			forecast = &compensation.Forecast{
				ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COMPENSATION_FORECAST),
				EmployeeID:    key.EmployeeID,
				Month:         key.Month,
				Year:          key.Year,
				EnvironmentID: emp.EnvironmentID,
				BaseModel:     types.GetDefaultBaseModel(ctx),
			}
		}
		// The notification fields survive recomputation untouched.
		forecast.ForecastedAmount = forecasted
		forecast.UpdatedAt = time.Now().UTC()
		if err := forecast.Validate(); err != nil {
			return err
		}
		if err := s.CompensationRepo.Upsert(ctx, forecast); err != nil {
			return err
		}
		result = forecast
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("recalculated compensation forecast",
		"employee_id", employeeID,
		"month", key.Month,
		"year", key.Year,
		"hours", hours,
		"forecasted_amount", forecasted)
	return result, nil
}

func (s *compensationService) ApplyTimeRecordTransition(ctx context.Context, timeRecordID string, newStatus types.TimeRecordStatus) (*timerecord.TimeRecord, error) {
	if err := newStatus.Validate(); err != nil {
		return nil, err
	}

	tr, err := s.TimeRecordRepo.Get(ctx, timeRecordID)
	if err != nil {
		return nil, err
	}
	oldStatus := tr.TimeRecordStatus
	if oldStatus == newStatus {
		return tr, nil
	}

	tr.TimeRecordStatus = newStatus
	tr.UpdatedAt = time.Now().UTC()
	if err := s.TimeRecordRepo.Update(ctx, tr); err != nil {
		return nil, err
	}

	// Only transitions into or out of the validated state change the
	// approved-hours sum.
	touchesValidated := oldStatus == types.TimeRecordStatusValidated || newStatus == types.TimeRecordStatusValidated
	if touchesValidated {
		if _, err := s.Recalculate(ctx, tr.EmployeeID, tr.WorkDate); err != nil {
			return nil, err
		}
	}
	return tr, nil
}

func (s *compensationService) SendPendingNotifications(ctx context.Context, now time.Time) (*dto.CycleReport, error) {
	now = now.UTC()
	report := dto.NewCycleReport(now)

	month, year := int(now.Month()), now.Year()
	pending, err := s.CompensationRepo.ListUnnotified(ctx, month, year)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan pending compensation notifications").
			Mark(ierr.ErrDatabase)
	}

	s.Logger.Infow("starting compensation notification run",
		"now", now.Format(time.RFC3339),
		"pending", len(pending))

	for _, forecast := range pending {
		if err := ctx.Err(); err != nil {
			s.Logger.Warnw("notification run cancelled", "processed", report.Processed)
			return report.Complete(now), nil
		}

		if !s.inLeadTimeWindow(forecast.Key(), now) {
			report.RecordSkip()
			continue
		}
		if err := s.notifyForecast(ctx, forecast.Key(), now); err != nil {
			s.Logger.Errorw("failed to send compensation notification",
				"error", err,
				"employee_id", forecast.EmployeeID)
			report.RecordFailure(forecast.EmployeeID, err)
			continue
		}
		report.RecordSuccess(forecast.EmployeeID)
	}

	s.Logger.Infow("completed compensation notification run",
		"processed", report.Processed,
		"notified", report.Succeeded,
		"failed", report.Failed)
	return report.Complete(now), nil
}

// inLeadTimeWindow reports whether now is exactly the configured number
// of days before the month's last day, counted between calendar days.
func (s *compensationService) inLeadTimeWindow(key types.PeriodKey, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(key.LastDayOfMonth().Sub(today).Hours() / 24)
	return days == s.Config.Billing.NotificationLeadDays
}

// notifyForecast sends the one-time notification for a forecast key.
// The sent flag is only persisted after the sink accepts the message;
// a sink failure leaves it unset so the next run retries. Re-reading
// under the forecast lock makes the guard safe against concurrent runs.
func (s *compensationService) notifyForecast(ctx context.Context, key types.PeriodKey, now time.Time) error {
	return s.Locker.WithLock(ctx, forecastLockKey(key), func(ctx context.Context) error {
		forecast, err := s.CompensationRepo.GetByKey(ctx, key)
		if err != nil {
			return err
		}
		if forecast.Notified() {
			return nil
		}

		emp, err := s.EmployeeRepo.Get(ctx, key.EmployeeID)
		if err != nil {
			return err
		}

		if err := s.Sink.Notify(ctx, &notification.Notification{
			RecipientID: emp.ID,
			Recipient:   emp.Email,
			Channel:     notification.ChannelEmail,
			Subject:     fmt.Sprintf("Compensation forecast for %04d-%02d", key.Year, key.Month),
			Body: fmt.Sprintf("Hello %s, your forecasted compensation for %04d-%02d is %s.",
				emp.Name, key.Year, key.Month, forecast.ForecastedAmount),
			Payload: map[string]interface{}{
				"employee_id":       emp.ID,
				"month":             key.Month,
				"year":              key.Year,
				"forecasted_amount": forecast.ForecastedAmount,
			},
		}); err != nil {
			return err
		}

		if err := forecast.MarkNotified(now); err != nil {
			return err
		}
		return s.CompensationRepo.Update(ctx, forecast)
	})
}
