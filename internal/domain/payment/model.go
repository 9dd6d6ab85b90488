package payment

import (
	"time"

	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
)

// Payment represents a single payment recorded against an invoice. A
// payment always references exactly one invoice; an orphan payment is a
// contract violation.
type Payment struct {
	ID        string `json:"id"`
	InvoiceID string `json:"invoice_id"`

	Amount        decimal.Decimal     `json:"amount"`
	PaymentStatus types.PaymentStatus `json:"payment_status"`
	PaymentMethod types.PaymentMethod `json:"payment_method"`
	PaymentDate   time.Time           `json:"payment_date"`

	EnvironmentID string `json:"environment_id"`
	types.BaseModel
}

// Validate validates the payment.
func (p *Payment) Validate() error {
	if p.InvoiceID == "" {
		return ierr.NewError("invoice_id is required").
			WithHint("A payment must reference an invoice").
			Mark(ierr.ErrValidation)
	}
	if !p.Amount.IsPositive() {
		return ierr.NewError("amount must be positive").
			WithHint("Payment amount must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	if err := p.PaymentMethod.Validate(); err != nil {
		return err
	}
	if p.PaymentDate.IsZero() {
		return ierr.NewError("payment_date is required").Mark(ierr.ErrValidation)
	}
	return nil
}
