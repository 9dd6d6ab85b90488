package service

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/api/dto"
	"github.com/clientdesk/clientdesk/internal/domain/invoice"
	"github.com/clientdesk/clientdesk/internal/domain/payment"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
)

// PaymentService reconciles payments against invoices. All mutations
// for one invoice are serialized through the invoice lock so two
// concurrent submissions cannot both compute a stale remaining balance.
type PaymentService interface {
	// RecordPayment validates and records a payment, then re-derives
	// the invoice status from the new payment sum.
	RecordPayment(ctx context.Context, req *dto.RecordPaymentRequest) (*dto.PaymentResponse, error)

	// DeletePayment removes a payment and re-runs reconciliation on the
	// invoice. Returns the updated invoice, or nil when the invoice no
	// longer exists and only the orphan payment was removed.
	DeletePayment(ctx context.Context, paymentID string) (*invoice.Invoice, error)
}

type paymentService struct {
	ServiceParams
}

// NewPaymentService creates a new payment service
func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
	}
}

func invoiceLockKey(invoiceID string) string {
	return types.GenerateLockKey(types.LockScopeInvoice, map[string]interface{}{
		"invoice_id": invoiceID,
	})
}

// paymentSum sums all non-rejected payments. PENDING and CONFIRMED both
// count toward the remaining balance.
func paymentSum(payments []*payment.Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

func (s *paymentService) RecordPayment(ctx context.Context, req *dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp *dto.PaymentResponse
	err := s.Locker.WithLock(ctx, invoiceLockKey(req.InvoiceID), func(ctx context.Context) error {
		inv, err := s.InvoiceRepo.Get(ctx, req.InvoiceID)
		if err != nil {
			return err
		}
		existing, err := s.PaymentRepo.ListByInvoice(ctx, inv.ID)
		if err != nil {
			return err
		}

		alreadyPaid := paymentSum(existing)
		remaining := decimal.Max(decimal.Zero, inv.Total.Sub(alreadyPaid))
		if req.Amount.GreaterThan(remaining) {
			return ierr.NewError("payment exceeds remaining balance").
				WithHintf("Requested %s exceeds the remaining balance of %s", req.Amount, remaining).
				WithReportableDetails(map[string]interface{}{
					"invoice_id": inv.ID,
					"requested":  req.Amount,
					"remaining":  remaining,
				}).
				Mark(ierr.ErrValidation)
		}

		p := &payment.Payment{
			ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT),
			InvoiceID:     inv.ID,
			Amount:        req.Amount,
			PaymentStatus: types.PaymentStatusPending,
			PaymentMethod: req.PaymentMethod,
			PaymentDate:   req.PaymentDate.UTC(),
			EnvironmentID: inv.EnvironmentID,
			BaseModel:     types.GetDefaultBaseModel(ctx),
		}
		if err := s.PaymentRepo.Create(ctx, p); err != nil {
			return err
		}

		newPaid := alreadyPaid.Add(req.Amount)

		// A payment that lifts the paid sum to the labor threshold is
		// treated as confirmed; below the threshold it stays pending.
		if newPaid.GreaterThanOrEqual(inv.LaborAmount) {
			p.PaymentStatus = types.PaymentStatusConfirmed
			if err := s.PaymentRepo.Update(ctx, p); err != nil {
				return s.rollbackPayment(ctx, p, err)
			}
		}

		inv.ApplyPaymentSum(newPaid)
		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return s.rollbackPayment(ctx, p, err)
		}

		s.Logger.Infow("payment recorded",
			"payment_id", p.ID,
			"invoice_id", inv.ID,
			"amount", p.Amount,
			"payment_status", p.PaymentStatus,
			"invoice_status", inv.InvoiceStatus)

		resp = &dto.PaymentResponse{
			Payment:         p,
			InvoiceStatus:   inv.InvoiceStatus,
			AmountPaid:      inv.AmountPaid,
			AmountRemaining: inv.AmountRemaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// rollbackPayment undoes a created payment when the paired invoice
// write fails, so the two updates stay atomic as observed by readers.
func (s *paymentService) rollbackPayment(ctx context.Context, p *payment.Payment, cause error) error {
	if delErr := s.PaymentRepo.Delete(ctx, p.ID); delErr != nil {
		s.Logger.Errorw("failed to roll back payment after invoice update failure",
			"error", delErr,
			"payment_id", p.ID,
			"invoice_id", p.InvoiceID)
	}
	return cause
}

func (s *paymentService) DeletePayment(ctx context.Context, paymentID string) (*invoice.Invoice, error) {
	p, err := s.PaymentRepo.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, p.InvoiceID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		// The invoice is gone; just remove the orphan payment.
		if err := s.PaymentRepo.Delete(ctx, paymentID); err != nil {
			return nil, err
		}
		s.Logger.Warnw("deleted payment for missing invoice",
			"payment_id", paymentID,
			"invoice_id", p.InvoiceID)
		return nil, nil
	}

	var updated *invoice.Invoice
	err = s.Locker.WithLock(ctx, invoiceLockKey(inv.ID), func(ctx context.Context) error {
		// Re-read under the lock; a concurrent RecordPayment may have
		// changed the invoice since the unguarded reads above.
		current, err := s.InvoiceRepo.Get(ctx, p.InvoiceID)
		if err != nil {
			return err
		}
		if err := s.PaymentRepo.Delete(ctx, paymentID); err != nil {
			return err
		}
		remaining, err := s.PaymentRepo.ListByInvoice(ctx, current.ID)
		if err != nil {
			return err
		}
		current.ApplyPaymentSum(paymentSum(remaining))
		if err := s.InvoiceRepo.Update(ctx, current); err != nil {
			return err
		}

		s.Logger.Infow("payment deleted",
			"payment_id", paymentID,
			"invoice_id", current.ID,
			"invoice_status", current.InvoiceStatus,
			"amount_remaining", current.AmountRemaining)

		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
