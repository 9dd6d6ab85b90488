package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/clientdesk/clientdesk/internal/api/dto"
	"github.com/clientdesk/clientdesk/internal/domain/invoice"
	"github.com/clientdesk/clientdesk/internal/domain/subscription"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
)

// BillingService runs the recurring billing cycle.
type BillingService interface {
	// RunBillingCycle scans due subscriptions and creates one invoice
	// per eligible subscription, advancing each schedule on success.
	// Idempotent for a fixed now: a second run finds nothing due.
	RunBillingCycle(ctx context.Context, now time.Time) (*dto.CycleReport, error)
}

type billingService struct {
	ServiceParams
}

// NewBillingService creates a new billing service
func NewBillingService(params ServiceParams) BillingService {
	return &billingService{
		ServiceParams: params,
	}
}

func (s *billingService) RunBillingCycle(ctx context.Context, now time.Time) (*dto.CycleReport, error) {
	now = now.UTC()
	report := dto.NewCycleReport(now)

	// A store failure affecting the whole scan is fatal to the run;
	// anything committed before it stands.
	due, err := s.SubscriptionRepo.ListDue(ctx, now)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan due subscriptions").
			Mark(ierr.ErrDatabase)
	}

	s.Logger.Infow("starting billing cycle",
		"now", now.Format(time.RFC3339),
		"due_subscriptions", len(due))

	for _, sub := range due {
		// Cancellation is cooperative between units; committed units stand.
		if err := ctx.Err(); err != nil {
			s.Logger.Warnw("billing cycle cancelled", "processed", report.Processed)
			return report.Complete(now), nil
		}

		inv, err := s.processSubscription(ctx, sub, now)
		if err != nil {
			s.Logger.Errorw("failed to bill subscription",
				"error", err,
				"subscription_id", sub.ID)
			report.RecordFailure(sub.ID, err)
			continue
		}
		report.RecordSuccess(inv.ID)
	}

	s.Logger.Infow("completed billing cycle",
		"processed", report.Processed,
		"succeeded", report.Succeeded,
		"failed", report.Failed)
	return report.Complete(now), nil
}

// processSubscription bills a single subscription: it creates the
// period invoice and only then advances the schedule. A failure leaves
// NextDueDate untouched so the subscription is retried next cycle.
func (s *billingService) processSubscription(ctx context.Context, sub *subscription.Subscription, now time.Time) (*invoice.Invoice, error) {
	inv, err := s.createPeriodInvoice(ctx, sub, now)
	if err != nil {
		return nil, err
	}

	if err := s.advanceSchedule(ctx, sub); err != nil {
		return nil, err
	}
	return inv, nil
}

// createPeriodInvoice builds and persists the invoice for the
// subscription's current period, allocating a collision-free invoice
// number with a bounded retry on uniqueness violations.
func (s *billingService) createPeriodInvoice(ctx context.Context, sub *subscription.Subscription, now time.Time) (*invoice.Invoice, error) {
	periodKey := types.InvoiceBillingPeriodKey(sub.NextDueDate)

	inv := &invoice.Invoice{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		ClientID:       sub.ClientID,
		SubscriptionID: &sub.ID,
		IssueDate:      now,
		DueDate:        s.dueDateFor(now),
		InvoiceStatus:  types.InvoiceStatusUnpaid,
		EnvironmentID:  sub.EnvironmentID,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	inv.LineItems = s.buildLineItems(inv.ID, sub)
	inv.ComputeTotals()
	inv.AmountPaid = decimal.Zero
	inv.AmountRemaining = inv.Total

	maxRetries := s.Config.Billing.MaxSequenceRetries
	attempt := func() error {
		seq, err := s.InvoiceRepo.NextInvoiceSequence(ctx, periodKey)
		if err != nil {
			return backoff.Permanent(err)
		}
		inv.InvoiceNumber = types.FormatInvoiceNumber(s.Config.Billing.InvoiceNumberPrefix, periodKey, seq)
		if err := inv.Validate(); err != nil {
			return backoff.Permanent(err)
		}
		if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
			if ierr.IsAlreadyExists(err) {
				// Another generator took this number; allocate the next one.
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(10*time.Millisecond), uint64(maxRetries))
	if err := backoff.Retry(attempt, backoff.WithContext(policy, ctx)); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create invoice for subscription").
			WithReportableDetails(map[string]interface{}{
				"subscription_id": sub.ID,
				"period":          periodKey,
			}).
			Mark(ierr.ErrDatabase)
	}
	return inv, nil
}

func (s *billingService) buildLineItems(invoiceID string, sub *subscription.Subscription) []*invoice.LineItem {
	period := sub.NextDueDate.UTC().Format("January 2006")
	items := []*invoice.LineItem{
		{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:    invoiceID,
			LineItemType: types.InvoiceLineItemTypeLabor,
			Description:  fmt.Sprintf("Recurring services for %s", period),
			Amount:       sub.Amount,
		},
	}
	if sub.ExternalCostAmount.IsPositive() {
		items = append(items, &invoice.LineItem{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:    invoiceID,
			LineItemType: types.InvoiceLineItemTypeExternalCost,
			Description:  fmt.Sprintf("External costs for %s", period),
			Amount:       sub.ExternalCostAmount,
		})
	}
	return items
}

// dueDateFor applies the due-date policy: invoices fall due on the
// configured day of the month following issue.
func (s *billingService) dueDateFor(issueDate time.Time) time.Time {
	issue := issueDate.UTC()
	return time.Date(issue.Year(), issue.Month()+1, s.Config.Billing.DueDayOfMonth, 0, 0, 0, 0, time.UTC)
}

// advanceSchedule moves the subscription's NextDueDate forward by one
// period and bumps the issued counter. A concurrent mutation of the
// subscription is resolved by re-reading and re-applying the advance.
func (s *billingService) advanceSchedule(ctx context.Context, sub *subscription.Subscription) error {
	sub.AdvanceSchedule()
	err := s.SubscriptionRepo.Update(ctx, sub)
	if err == nil {
		return nil
	}
	if !ierr.IsVersionConflict(err) {
		return err
	}

	fresh, getErr := s.SubscriptionRepo.Get(ctx, sub.ID)
	if getErr != nil {
		return getErr
	}
	if !fresh.NextDueDate.Before(sub.NextDueDate) {
		// Someone else already advanced past this period.
		return nil
	}
	fresh.AdvanceSchedule()
	return s.SubscriptionRepo.Update(ctx, fresh)
}
