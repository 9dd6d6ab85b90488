package types

import (
	"fmt"
	"time"

	ierr "github.com/clientdesk/clientdesk/internal/errors"
)

// InvoiceStatus is derived from the payment sum, never set directly.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "UNPAID"
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoiceStatusPaid          InvoiceStatus = "PAID"
)

// InvoiceLineItemType distinguishes billable service work from
// pass-through external costs.
type InvoiceLineItemType string

const (
	InvoiceLineItemTypeLabor        InvoiceLineItemType = "LABOR"
	InvoiceLineItemTypeExternalCost InvoiceLineItemType = "EXTERNAL_COST"
)

func (t InvoiceLineItemType) Validate() error {
	switch t {
	case InvoiceLineItemTypeLabor, InvoiceLineItemTypeExternalCost:
		return nil
	default:
		return ierr.NewError("invalid line item type").
			WithHintf("Line item type '%s' is not supported", t).
			Mark(ierr.ErrValidation)
	}
}

// InvoiceBillingPeriodKey formats the period component of an invoice
// number, e.g. "202501" for January 2025.
func InvoiceBillingPeriodKey(t time.Time) string {
	return t.UTC().Format("200601")
}

// FormatInvoiceNumber builds an invoice number from prefix, period key
// and a per-period sequence, e.g. "INV-202501-00042".
func FormatInvoiceNumber(prefix, periodKey string, sequence int) string {
	return fmt.Sprintf("%s-%s-%05d", prefix, periodKey, sequence)
}

// InvoiceFilter represents the filter options for invoices.
type InvoiceFilter struct {
	*QueryFilter
	InvoiceIDs      []string        `json:"invoice_ids,omitempty" form:"invoice_ids"`
	ClientIDs       []string        `json:"client_ids,omitempty" form:"client_ids"`
	SubscriptionIDs []string        `json:"subscription_ids,omitempty" form:"subscription_ids"`
	InvoiceStatuses []InvoiceStatus `json:"invoice_statuses,omitempty" form:"invoice_statuses"`
	DueDateBefore   *time.Time      `json:"due_date_before,omitempty" form:"due_date_before"`
}

// NewInvoiceFilter creates an invoice filter with defaults.
func NewInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}
