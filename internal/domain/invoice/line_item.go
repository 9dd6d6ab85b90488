package invoice

import (
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
)

// LineItem represents a single typed line on an invoice. LABOR lines
// count toward the covered threshold; EXTERNAL_COST lines are
// pass-through and excluded from it.
type LineItem struct {
	ID           string                    `json:"id"`
	InvoiceID    string                    `json:"invoice_id"`
	LineItemType types.InvoiceLineItemType `json:"line_item_type"`
	Description  string                    `json:"description"`
	Amount       decimal.Decimal           `json:"amount"`
	Metadata     types.Metadata            `json:"metadata,omitempty"`
}

// Validate validates the line item.
func (li *LineItem) Validate() error {
	if err := li.LineItemType.Validate(); err != nil {
		return err
	}
	if li.Amount.IsNegative() {
		return ierr.NewError("line item amount must not be negative").
			WithHint("Line item amounts must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}
