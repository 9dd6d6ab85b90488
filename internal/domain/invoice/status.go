package invoice

import (
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
)

// DeriveStatus is the invoice status state machine. Given total T,
// labor amount L and the sum P of non-rejected payments:
//
//	P >= T      => PAID
//	L <= P < T  => PARTIALLY_PAID (labor covered, pass-through costs not)
//	P < L       => UNPAID (including P = 0)
//
// The function is pure and is re-evaluated after every payment
// mutation; invoice status is never set by callers directly.
func DeriveStatus(total, labor, paid decimal.Decimal) types.InvoiceStatus {
	if paid.GreaterThanOrEqual(total) {
		return types.InvoiceStatusPaid
	}
	if paid.GreaterThanOrEqual(labor) {
		return types.InvoiceStatusPartiallyPaid
	}
	return types.InvoiceStatusUnpaid
}
