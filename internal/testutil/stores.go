package testutil

import (
	"github.com/clientdesk/clientdesk/internal/domain/compensation"
	"github.com/clientdesk/clientdesk/internal/domain/employee"
	"github.com/clientdesk/clientdesk/internal/domain/invoice"
	"github.com/clientdesk/clientdesk/internal/domain/payment"
	"github.com/clientdesk/clientdesk/internal/domain/subscription"
	"github.com/clientdesk/clientdesk/internal/domain/timerecord"
	"github.com/clientdesk/clientdesk/internal/repository/memory"
)

// Stores aggregates the in-memory repositories used by service tests.
type Stores struct {
	SubscriptionRepo subscription.Repository
	InvoiceRepo      invoice.Repository
	PaymentRepo      payment.Repository
	TimeRecordRepo   timerecord.Repository
	EmployeeRepo     employee.Repository
	CompensationRepo compensation.Repository
}

// NewInMemoryStores creates a fresh set of in-memory repositories.
func NewInMemoryStores() Stores {
	return Stores{
		SubscriptionRepo: memory.NewSubscriptionStore(),
		InvoiceRepo:      memory.NewInvoiceStore(),
		PaymentRepo:      memory.NewPaymentStore(),
		TimeRecordRepo:   memory.NewTimeRecordStore(),
		EmployeeRepo:     memory.NewEmployeeStore(),
		CompensationRepo: memory.NewCompensationStore(),
	}
}
