package service

import (
	"testing"
	"time"

	"github.com/clientdesk/clientdesk/internal/api/dto"
	"github.com/clientdesk/clientdesk/internal/domain/invoice"
	"github.com/clientdesk/clientdesk/internal/testutil"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OverdueServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  OverdueService
	payments PaymentService
	params   ServiceParams
	seq      int
}

func TestOverdueService(t *testing.T) {
	suite.Run(t, new(OverdueServiceSuite))
}

func (s *OverdueServiceSuite) SetupTest() {
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
	s.service = NewOverdueService(s.params)
	s.payments = NewPaymentService(s.params)
	s.seq = 0
}

func (s *OverdueServiceSuite) createInvoice(labor float64, dueDate time.Time) *invoice.Invoice {
	s.seq++
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber: types.FormatInvoiceNumber("INV", "202501", s.seq),
		ClientID:      "client-1",
		IssueDate:     dueDate.AddDate(0, -1, 0),
		DueDate:       dueDate,
		InvoiceStatus: types.InvoiceStatusUnpaid,
		Version:       1,
		BaseModel:     types.GetDefaultBaseModel(s.GetContext()),
	}
	inv.LineItems = []*invoice.LineItem{
		{
			ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:    inv.ID,
			LineItemType: types.InvoiceLineItemTypeLabor,
			Description:  "Recurring services",
			Amount:       decimal.NewFromFloat(labor),
		},
	}
	inv.ComputeTotals()
	inv.AmountPaid = decimal.Zero
	inv.AmountRemaining = inv.Total
	s.NoError(s.params.InvoiceRepo.Create(s.GetContext(), inv))
	return inv
}

func (s *OverdueServiceSuite) TestDetectOverdueSendsReminder() {
	dueDate := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	inv := s.createInvoice(1000, dueDate)

	now := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
	report, err := s.service.DetectOverdue(s.GetContext(), now)
	s.NoError(err)
	s.Equal(1, report.Succeeded)

	sent := s.GetSink().Sent()
	s.Len(sent, 1)
	s.Equal(inv.ClientID, sent[0].RecipientID)
	s.Contains(sent[0].Subject, inv.InvoiceNumber)
	s.Equal(5, sent[0].Payload["days_overdue"])

	updated, err := s.params.InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Len(updated.ReminderNotes, 1)
	s.True(updated.HasReminderOn(now))
}

func (s *OverdueServiceSuite) TestDetectOverdueSkipsSameDayDuplicate() {
	dueDate := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	s.createInvoice(1000, dueDate)

	morning := time.Date(2025, 2, 20, 8, 0, 0, 0, time.UTC)
	report, err := s.service.DetectOverdue(s.GetContext(), morning)
	s.NoError(err)
	s.Equal(1, report.Succeeded)

	evening := time.Date(2025, 2, 20, 20, 0, 0, 0, time.UTC)
	report, err = s.service.DetectOverdue(s.GetContext(), evening)
	s.NoError(err)
	s.Equal(0, report.Succeeded)
	s.Len(s.GetSink().Sent(), 1)

	// The next calendar day gets a fresh reminder.
	nextDay := time.Date(2025, 2, 21, 8, 0, 0, 0, time.UTC)
	report, err = s.service.DetectOverdue(s.GetContext(), nextDay)
	s.NoError(err)
	s.Equal(1, report.Succeeded)
	s.Len(s.GetSink().Sent(), 2)
}

func (s *OverdueServiceSuite) TestDetectOverdueSkipsNotYetDue() {
	dueDate := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	s.createInvoice(1000, dueDate)

	report, err := s.service.DetectOverdue(s.GetContext(), time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.Equal(0, report.Processed)
	s.Empty(s.GetSink().Sent())
}

func (s *OverdueServiceSuite) TestDetectOverdueSkipsConfirmedPayment() {
	dueDate := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	inv := s.createInvoice(1000, dueDate)

	// A payment at the labor threshold is confirmed; the invoice is
	// partially paid but no longer treated as overdue.
	_, err := s.payments.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: types.PaymentMethodBankTransfer,
		PaymentDate:   dueDate,
	})
	s.NoError(err)

	report, err := s.service.DetectOverdue(s.GetContext(), time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.Equal(0, report.Succeeded)
	s.Empty(s.GetSink().Sent())
}

func (s *OverdueServiceSuite) TestDetectOverduePendingPaymentStillReminds() {
	dueDate := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	inv := s.createInvoice(1000, dueDate)

	// A pending payment below the labor threshold does not stop the
	// reminder.
	_, err := s.payments.RecordPayment(s.GetContext(), &dto.RecordPaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(400),
		PaymentMethod: types.PaymentMethodBankTransfer,
		PaymentDate:   dueDate,
	})
	s.NoError(err)

	report, err := s.service.DetectOverdue(s.GetContext(), time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.Equal(1, report.Succeeded)
	s.Len(s.GetSink().Sent(), 1)
}

func (s *OverdueServiceSuite) TestDetectOverdueSinkFailureLeavesNoteUnwritten() {
	dueDate := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	inv := s.createInvoice(1000, dueDate)

	s.GetSink().FailNext()
	now := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)
	report, err := s.service.DetectOverdue(s.GetContext(), now)
	s.NoError(err)
	s.Equal(1, report.Failed)

	current, err := s.params.InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Empty(current.ReminderNotes)

	// The next run retries and succeeds.
	report, err = s.service.DetectOverdue(s.GetContext(), now)
	s.NoError(err)
	s.Equal(1, report.Succeeded)
	s.Len(s.GetSink().Sent(), 1)
}

func (s *OverdueServiceSuite) TestDetectOverdueFailureIsolation() {
	dueDate := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	s.createInvoice(1000, dueDate)
	s.createInvoice(2000, dueDate)

	// One delivery fails, the other invoice is still reminded.
	s.GetSink().FailNext()
	report, err := s.service.DetectOverdue(s.GetContext(), time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.Equal(2, report.Processed)
	s.Equal(1, report.Succeeded)
	s.Equal(1, report.Failed)
	s.Len(s.GetSink().Sent(), 1)
}
