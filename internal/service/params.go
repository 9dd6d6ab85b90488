package service

import (
	"context"

	"github.com/clientdesk/clientdesk/internal/config"
	"github.com/clientdesk/clientdesk/internal/domain/compensation"
	"github.com/clientdesk/clientdesk/internal/domain/employee"
	"github.com/clientdesk/clientdesk/internal/domain/invoice"
	"github.com/clientdesk/clientdesk/internal/domain/payment"
	"github.com/clientdesk/clientdesk/internal/domain/subscription"
	"github.com/clientdesk/clientdesk/internal/domain/timerecord"
	"github.com/clientdesk/clientdesk/internal/logger"
	"github.com/clientdesk/clientdesk/internal/notification"
)

// Locker serializes critical sections per lock key. The store supplies
// an implementation; keys come from types.GenerateLockKey.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// ServiceParams holds the dependencies shared by all services.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Locker Locker

	SubscriptionRepo subscription.Repository
	InvoiceRepo      invoice.Repository
	PaymentRepo      payment.Repository
	TimeRecordRepo   timerecord.Repository
	EmployeeRepo     employee.Repository
	CompensationRepo compensation.Repository

	Sink notification.Sink
}
