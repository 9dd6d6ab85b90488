package types

import ierr "github.com/clientdesk/clientdesk/internal/errors"

// PaymentStatus tracks whether a recorded payment has been confirmed.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
)

// PaymentMethod is the channel through which a payment was made.
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheck        PaymentMethod = "CHECK"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCheck, PaymentMethodCash, PaymentMethodCard, PaymentMethodOther:
		return nil
	default:
		return ierr.NewError("invalid payment method").
			WithHintf("Payment method '%s' is not supported", m).
			Mark(ierr.ErrValidation)
	}
}

// PaymentFilter represents the filter options for payments.
type PaymentFilter struct {
	*QueryFilter
	PaymentIDs      []string        `json:"payment_ids,omitempty" form:"payment_ids"`
	InvoiceIDs      []string        `json:"invoice_ids,omitempty" form:"invoice_ids"`
	PaymentStatuses []PaymentStatus `json:"payment_statuses,omitempty" form:"payment_statuses"`
}

// NewPaymentFilter creates a payment filter with defaults.
func NewPaymentFilter() *PaymentFilter {
	return &PaymentFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}
