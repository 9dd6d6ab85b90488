package dto

import (
	"time"

	"github.com/clientdesk/clientdesk/internal/domain/payment"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest creates one payment against an invoice.
type RecordPaymentRequest struct {
	InvoiceID     string              `json:"invoice_id" binding:"required"`
	Amount        decimal.Decimal     `json:"amount" binding:"required"`
	PaymentMethod types.PaymentMethod `json:"payment_method" binding:"required"`
	PaymentDate   time.Time           `json:"payment_date" binding:"required"`
}

// Validate validates the request.
func (r *RecordPaymentRequest) Validate() error {
	if r.InvoiceID == "" {
		return ierr.NewError("invoice_id is required").
			WithHint("A payment must reference an invoice").
			Mark(ierr.ErrValidation)
	}
	if !r.Amount.IsPositive() {
		return ierr.NewError("amount must be positive").
			WithHint("Payment amount must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	if err := r.PaymentMethod.Validate(); err != nil {
		return err
	}
	if r.PaymentDate.IsZero() {
		return ierr.NewError("payment_date is required").Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentResponse is the client-facing shape of a recorded payment
// together with the invoice state it produced.
type PaymentResponse struct {
	*payment.Payment
	InvoiceStatus   types.InvoiceStatus `json:"invoice_status"`
	AmountPaid      decimal.Decimal     `json:"amount_paid"`
	AmountRemaining decimal.Decimal     `json:"amount_remaining"`
}
