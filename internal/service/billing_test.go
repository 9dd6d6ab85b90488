package service

import (
	"testing"
	"time"

	"github.com/clientdesk/clientdesk/internal/domain/invoice"
	"github.com/clientdesk/clientdesk/internal/domain/subscription"
	"github.com/clientdesk/clientdesk/internal/testutil"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BillingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service BillingService
	params  ServiceParams
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		Locker:           s.GetLocker(),
		SubscriptionRepo: s.GetStores().SubscriptionRepo,
		InvoiceRepo:      s.GetStores().InvoiceRepo,
		PaymentRepo:      s.GetStores().PaymentRepo,
		TimeRecordRepo:   s.GetStores().TimeRecordRepo,
		EmployeeRepo:     s.GetStores().EmployeeRepo,
		CompensationRepo: s.GetStores().CompensationRepo,
		Sink:             s.GetSink(),
	}
	s.service = NewBillingService(s.params)
}

func (s *BillingServiceSuite) createSubscription(amount, externalCost float64, period types.BillingPeriod, nextDue time.Time) *subscription.Subscription {
	sub := &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		ClientID:           "client-1",
		Amount:             decimal.NewFromFloat(amount),
		ExternalCostAmount: decimal.NewFromFloat(externalCost),
		BillingPeriod:      period,
		SubscriptionStatus: types.SubscriptionStatusActive,
		NextDueDate:        nextDue,
		Version:            1,
		BaseModel:          types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.params.SubscriptionRepo.Create(s.GetContext(), sub))
	return sub
}

func (s *BillingServiceSuite) TestRunBillingCycleCreatesInvoiceAndAdvances() {
	nextDue := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	sub := s.createSubscription(1000, 0, types.BillingPeriodMonthly, nextDue)

	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	report, err := s.service.RunBillingCycle(s.GetContext(), now)
	s.NoError(err)
	s.Equal(1, report.Processed)
	s.Equal(1, report.Succeeded)
	s.Equal(0, report.Failed)

	invoices, err := s.params.InvoiceRepo.List(s.GetContext(), nil)
	s.NoError(err)
	s.Len(invoices, 1)

	inv := invoices[0]
	s.Equal("INV-202501-00001", inv.InvoiceNumber)
	s.Equal(sub.ID, *inv.SubscriptionID)
	s.Equal(types.InvoiceStatusUnpaid, inv.InvoiceStatus)
	s.True(inv.Total.Equal(decimal.NewFromInt(1000)))
	s.True(inv.LaborAmount.Equal(decimal.NewFromInt(1000)))
	s.True(inv.AmountRemaining.Equal(inv.Total))
	s.Len(inv.LineItems, 1)
	s.Equal(types.InvoiceLineItemTypeLabor, inv.LineItems[0].LineItemType)
	s.Equal(now, inv.IssueDate)
	s.Equal(time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), inv.DueDate)

	updated, err := s.params.SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), updated.NextDueDate)
	s.Equal(1, updated.PaymentsIssuedCount)
}

func (s *BillingServiceSuite) TestRunBillingCycleIsIdempotentForSamePeriod() {
	nextDue := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	s.createSubscription(1000, 0, types.BillingPeriodMonthly, nextDue)

	firstRun := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	report, err := s.service.RunBillingCycle(s.GetContext(), firstRun)
	s.NoError(err)
	s.Equal(1, report.Succeeded)

	secondRun := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	report, err = s.service.RunBillingCycle(s.GetContext(), secondRun)
	s.NoError(err)
	s.Equal(0, report.Processed)

	invoices, err := s.params.InvoiceRepo.List(s.GetContext(), nil)
	s.NoError(err)
	s.Len(invoices, 1)
}

func (s *BillingServiceSuite) TestRunBillingCycleIncludesExternalCostLine() {
	nextDue := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s.createSubscription(2000, 350.50, types.BillingPeriodMonthly, nextDue)

	report, err := s.service.RunBillingCycle(s.GetContext(), nextDue)
	s.NoError(err)
	s.Equal(1, report.Succeeded)

	invoices, err := s.params.InvoiceRepo.List(s.GetContext(), nil)
	s.NoError(err)
	s.Len(invoices, 1)

	inv := invoices[0]
	s.Len(inv.LineItems, 2)
	s.True(inv.Total.Equal(decimal.NewFromFloat(2350.50)))
	s.True(inv.LaborAmount.Equal(decimal.NewFromInt(2000)))
}

func (s *BillingServiceSuite) TestRunBillingCycleSkipsNotYetDue() {
	nextDue := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	s.createSubscription(1000, 0, types.BillingPeriodMonthly, nextDue)

	now := time.Date(2025, 2, 9, 23, 0, 0, 0, time.UTC)
	report, err := s.service.RunBillingCycle(s.GetContext(), now)
	s.NoError(err)
	s.Equal(0, report.Processed)
}

func (s *BillingServiceSuite) TestRunBillingCycleSkipsEndedAgreements() {
	nextDue := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	sub := s.createSubscription(1000, 0, types.BillingPeriodMonthly, nextDue)
	fresh, err := s.params.SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	fresh.EndDate = lo.ToPtr(time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC))
	s.NoError(s.params.SubscriptionRepo.Update(s.GetContext(), fresh))

	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	report, err := s.service.RunBillingCycle(s.GetContext(), now)
	s.NoError(err)
	s.Equal(0, report.Processed)
}

func (s *BillingServiceSuite) TestRunBillingCycleSkipsSuspended() {
	nextDue := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	sub := s.createSubscription(1000, 0, types.BillingPeriodMonthly, nextDue)
	fresh, err := s.params.SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	fresh.SubscriptionStatus = types.SubscriptionStatusSuspended
	s.NoError(s.params.SubscriptionRepo.Update(s.GetContext(), fresh))

	report, err := s.service.RunBillingCycle(s.GetContext(), time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.Equal(0, report.Processed)
}

func (s *BillingServiceSuite) TestRunBillingCycleBillsZeroAmount() {
	nextDue := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	s.createSubscription(0, 0, types.BillingPeriodMonthly, nextDue)

	report, err := s.service.RunBillingCycle(s.GetContext(), time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.Equal(1, report.Succeeded)

	invoices, err := s.params.InvoiceRepo.List(s.GetContext(), nil)
	s.NoError(err)
	s.Len(invoices, 1)
	s.True(invoices[0].Total.IsZero())
	s.Equal(types.InvoiceStatusUnpaid, invoices[0].InvoiceStatus)
}

func (s *BillingServiceSuite) TestRunBillingCycleQuarterlyAdvance() {
	nextDue := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	sub := s.createSubscription(5000, 0, types.BillingPeriodQuarterly, nextDue)

	report, err := s.service.RunBillingCycle(s.GetContext(), nextDue)
	s.NoError(err)
	s.Equal(1, report.Succeeded)

	updated, err := s.params.SubscriptionRepo.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), updated.NextDueDate)
}

func (s *BillingServiceSuite) TestRunBillingCycleAssignsSequentialNumbers() {
	nextDue := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	s.createSubscription(100, 0, types.BillingPeriodMonthly, nextDue)
	s.createSubscription(200, 0, types.BillingPeriodMonthly, nextDue)
	s.createSubscription(300, 0, types.BillingPeriodMonthly, nextDue)

	report, err := s.service.RunBillingCycle(s.GetContext(), time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.Equal(3, report.Succeeded)

	invoices, err := s.params.InvoiceRepo.List(s.GetContext(), nil)
	s.NoError(err)
	s.Len(invoices, 3)

	numbers := lo.Map(invoices, func(inv *invoice.Invoice, _ int) string { return inv.InvoiceNumber })
	s.ElementsMatch([]string{"INV-202501-00001", "INV-202501-00002", "INV-202501-00003"}, numbers)
}
