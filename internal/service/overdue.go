package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clientdesk/clientdesk/internal/api/dto"
	"github.com/clientdesk/clientdesk/internal/domain/invoice"
	"github.com/clientdesk/clientdesk/internal/domain/payment"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/notification"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/samber/lo"
)

// OverdueService detects overdue invoices and sends reminders.
type OverdueService interface {
	// DetectOverdue flags invoices past due with no confirmed payment
	// and reminds the client at most once per day per invoice.
	DetectOverdue(ctx context.Context, now time.Time) (*dto.CycleReport, error)
}

type overdueService struct {
	ServiceParams
}

// NewOverdueService creates a new overdue service
func NewOverdueService(params ServiceParams) OverdueService {
	return &overdueService{
		ServiceParams: params,
	}
}

func (s *overdueService) DetectOverdue(ctx context.Context, now time.Time) (*dto.CycleReport, error) {
	now = now.UTC()
	report := dto.NewCycleReport(now)

	candidates, err := s.InvoiceRepo.ListOverdueCandidates(ctx, now)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan overdue invoices").
			Mark(ierr.ErrDatabase)
	}

	s.Logger.Infow("starting overdue detection",
		"now", now.Format(time.RFC3339),
		"candidates", len(candidates))

	for _, inv := range candidates {
		if err := ctx.Err(); err != nil {
			s.Logger.Warnw("overdue detection cancelled", "processed", report.Processed)
			return report.Complete(now), nil
		}

		reminded, err := s.processInvoice(ctx, inv, now)
		if err != nil {
			s.Logger.Errorw("failed to process overdue invoice",
				"error", err,
				"invoice_id", inv.ID)
			report.RecordFailure(inv.ID, err)
			continue
		}
		if reminded {
			report.RecordSuccess(inv.ID)
		} else {
			report.RecordSkip()
		}
	}

	s.Logger.Infow("completed overdue detection",
		"processed", report.Processed,
		"reminded", report.Succeeded,
		"failed", report.Failed)
	return report.Complete(now), nil
}

// processInvoice reminds one overdue invoice. Partial coverage below
// the labor threshold still counts as overdue; any confirmed payment
// does not.
func (s *overdueService) processInvoice(ctx context.Context, inv *invoice.Invoice, now time.Time) (bool, error) {
	payments, err := s.PaymentRepo.ListByInvoice(ctx, inv.ID)
	if err != nil {
		return false, err
	}
	hasConfirmed := lo.SomeBy(payments, func(p *payment.Payment) bool {
		return p.PaymentStatus == types.PaymentStatusConfirmed
	})
	if hasConfirmed {
		return false, nil
	}
	if inv.HasReminderOn(now) {
		return false, nil
	}

	daysOverdue := int(now.Sub(inv.DueDate).Hours() / 24)
	if err := s.Sink.Notify(ctx, &notification.Notification{
		RecipientID: inv.ClientID,
		Channel:     notification.ChannelEmail,
		Subject:     fmt.Sprintf("Invoice %s is overdue", inv.InvoiceNumber),
		Body: fmt.Sprintf("Invoice %s for %s was due on %s and remains unpaid. Outstanding amount: %s.",
			inv.InvoiceNumber, inv.ClientID, inv.DueDate.Format("2006-01-02"), inv.AmountRemaining),
		Payload: map[string]interface{}{
			"invoice_id":       inv.ID,
			"invoice_number":   inv.InvoiceNumber,
			"days_overdue":     daysOverdue,
			"amount_remaining": inv.AmountRemaining,
		},
	}); err != nil {
		// The note stays unwritten so the next cycle retries the send.
		return false, err
	}

	inv.AppendReminderNote(now, fmt.Sprintf("Overdue reminder sent, %d day(s) past due", daysOverdue))
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return false, err
	}
	return true, nil
}
