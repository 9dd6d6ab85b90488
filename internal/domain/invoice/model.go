package invoice

import (
	"time"

	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Invoice represents a bill issued to a client, either generated from a
// subscription or raised manually against a project.
type Invoice struct {
	ID             string  `json:"id"`
	InvoiceNumber  string  `json:"invoice_number"`
	ClientID       string  `json:"client_id"`
	SubscriptionID *string `json:"subscription_id,omitempty"`
	ProjectID      *string `json:"project_id,omitempty"`

	LineItems []*LineItem `json:"line_items"`

	// Total is the sum of all line items; LaborAmount sums only the
	// LABOR lines. Both are fixed at issue time.
	Total       decimal.Decimal `json:"total"`
	LaborAmount decimal.Decimal `json:"labor_amount"`

	// InvoiceStatus is always derived from the payment sum via
	// DeriveStatus; it is never set independently.
	InvoiceStatus types.InvoiceStatus `json:"invoice_status"`

	// AmountPaid and AmountRemaining are cached for fast reads and
	// refreshed on every payment mutation.
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	AmountRemaining decimal.Decimal `json:"amount_remaining"`

	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date"`

	// ReminderNotes is append-only; one note per overdue reminder sent.
	ReminderNotes []ReminderNote `json:"reminder_notes,omitempty"`

	// Version is bumped on every update for optimistic concurrency.
	Version int `json:"version"`

	EnvironmentID string `json:"environment_id"`
	types.BaseModel
}

// ReminderNote is an immutable timestamped note recording that an
// overdue reminder was sent.
type ReminderNote struct {
	SentAt  time.Time `json:"sent_at"`
	Message string    `json:"message"`
}

// Validate validates the invoice.
func (i *Invoice) Validate() error {
	if i.ClientID == "" {
		return ierr.NewError("client_id is required").Mark(ierr.ErrValidation)
	}
	if i.InvoiceNumber == "" {
		return ierr.NewError("invoice_number is required").Mark(ierr.ErrValidation)
	}
	if len(i.LineItems) == 0 {
		return ierr.NewError("invoice must have at least one line item").
			WithHint("An invoice needs at least one line item").
			Mark(ierr.ErrValidation)
	}
	for _, li := range i.LineItems {
		if err := li.Validate(); err != nil {
			return err
		}
	}
	if i.DueDate.Before(i.IssueDate) {
		return ierr.NewError("due_date before issue_date").
			WithHint("Due date must not precede the issue date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ComputeTotals recomputes Total and LaborAmount from the line items.
func (i *Invoice) ComputeTotals() {
	total := decimal.Zero
	labor := decimal.Zero
	for _, li := range i.LineItems {
		total = total.Add(li.Amount)
		if li.LineItemType == types.InvoiceLineItemTypeLabor {
			labor = labor.Add(li.Amount)
		}
	}
	i.Total = total
	i.LaborAmount = labor
}

// ApplyPaymentSum refreshes the derived status and cached amounts from
// the given non-rejected payment sum.
func (i *Invoice) ApplyPaymentSum(paid decimal.Decimal) {
	i.InvoiceStatus = DeriveStatus(i.Total, i.LaborAmount, paid)
	i.AmountPaid = paid
	i.AmountRemaining = decimal.Max(decimal.Zero, i.Total.Sub(paid))
}

// HasReminderOn reports whether a reminder note was already appended on
// the given calendar day (UTC). Guards against duplicate same-day
// reminders.
func (i *Invoice) HasReminderOn(day time.Time) bool {
	y, m, d := day.UTC().Date()
	return lo.SomeBy(i.ReminderNotes, func(n ReminderNote) bool {
		ny, nm, nd := n.SentAt.UTC().Date()
		return ny == y && nm == m && nd == d
	})
}

// AppendReminderNote appends an immutable reminder note.
func (i *Invoice) AppendReminderNote(sentAt time.Time, message string) {
	i.ReminderNotes = append(i.ReminderNotes, ReminderNote{
		SentAt:  sentAt.UTC(),
		Message: message,
	})
}
