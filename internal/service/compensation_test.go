package service

import (
	"testing"
	"time"

	"github.com/clientdesk/clientdesk/internal/domain/employee"
	"github.com/clientdesk/clientdesk/internal/domain/timerecord"
	ierr "github.com/clientdesk/clientdesk/internal/errors"
	"github.com/clientdesk/clientdesk/internal/testutil"
	"github.com/clientdesk/clientdesk/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CompensationServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CompensationService
	params  ServiceParams
}

func TestCompensationService(t *testing.T) {
	suite.Run(t, new(CompensationServiceSuite))
}

func (s *CompensationServiceSuite) SetupTest() {
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
	s.service = NewCompensationService(s.params)
}

func (s *CompensationServiceSuite) createEmployee(hourlyRate float64) *employee.Employee {
	emp := &employee.Employee{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EMPLOYEE),
		Name:       "Jordan Miller",
		Email:      "jordan@example.com",
		HourlyRate: decimal.NewFromFloat(hourlyRate),
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.params.EmployeeRepo.Create(s.GetContext(), emp))
	return emp
}

func (s *CompensationServiceSuite) createTimeRecord(employeeID string, workDate time.Time, regular, overtime float64, status types.TimeRecordStatus) *timerecord.TimeRecord {
	tr := &timerecord.TimeRecord{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TIME_RECORD),
		EmployeeID:       employeeID,
		WorkDate:         workDate,
		RegularHours:     decimal.NewFromFloat(regular),
		OvertimeHours:    decimal.NewFromFloat(overtime),
		TimeRecordStatus: status,
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.params.TimeRecordRepo.Create(s.GetContext(), tr))
	return tr
}

func (s *CompensationServiceSuite) TestRecalculateSumsValidatedHours() {
	emp := s.createEmployee(50)
	jan := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	s.createTimeRecord(emp.ID, jan, 8, 2, types.TimeRecordStatusValidated)
	s.createTimeRecord(emp.ID, jan.AddDate(0, 0, 1), 8, 0, types.TimeRecordStatusValidated)
	// Pending and rejected records do not count.
	s.createTimeRecord(emp.ID, jan.AddDate(0, 0, 2), 8, 0, types.TimeRecordStatusPending)
	s.createTimeRecord(emp.ID, jan.AddDate(0, 0, 3), 8, 0, types.TimeRecordStatusRejected)
	// Neither does a validated record from another month.
	s.createTimeRecord(emp.ID, jan.AddDate(0, 1, 0), 8, 0, types.TimeRecordStatusValidated)

	forecast, err := s.service.Recalculate(s.GetContext(), emp.ID, jan)
	s.NoError(err)
	s.NotNil(forecast)
	s.Equal(1, forecast.Month)
	s.Equal(2025, forecast.Year)
	s.True(forecast.ForecastedAmount.Equal(decimal.NewFromInt(900)), "18h * 50 = 900, got %s", forecast.ForecastedAmount)
	s.Nil(forecast.NotificationDate)
}

func (s *CompensationServiceSuite) TestRecalculateSkipsEmployeeWithoutRate() {
	emp := s.createEmployee(0)
	jan := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	s.createTimeRecord(emp.ID, jan, 8, 0, types.TimeRecordStatusValidated)

	forecast, err := s.service.Recalculate(s.GetContext(), emp.ID, jan)
	s.NoError(err)
	s.Nil(forecast)

	_, err = s.params.CompensationRepo.GetByKey(s.GetContext(), types.PeriodKeyFor(emp.ID, jan))
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CompensationServiceSuite) TestTransitionValidateRejectCorrect() {
	emp := s.createEmployee(50)
	jan := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	tr := s.createTimeRecord(emp.ID, jan, 8, 0, types.TimeRecordStatusPending)
	key := types.PeriodKeyFor(emp.ID, jan)

	// Validation brings the hours into the forecast.
	_, err := s.service.ApplyTimeRecordTransition(s.GetContext(), tr.ID, types.TimeRecordStatusValidated)
	s.NoError(err)
	forecast, err := s.params.CompensationRepo.GetByKey(s.GetContext(), key)
	s.NoError(err)
	s.True(forecast.ForecastedAmount.Equal(decimal.NewFromInt(400)))

	// Rejection takes them back out.
	_, err = s.service.ApplyTimeRecordTransition(s.GetContext(), tr.ID, types.TimeRecordStatusRejected)
	s.NoError(err)
	forecast, err = s.params.CompensationRepo.GetByKey(s.GetContext(), key)
	s.NoError(err)
	s.True(forecast.ForecastedAmount.IsZero())

	// A correction that never touches the validated state leaves the
	// forecast alone.
	_, err = s.service.ApplyTimeRecordTransition(s.GetContext(), tr.ID, types.TimeRecordStatusCorrected)
	s.NoError(err)
	forecast, err = s.params.CompensationRepo.GetByKey(s.GetContext(), key)
	s.NoError(err)
	s.True(forecast.ForecastedAmount.IsZero())
}

func (s *CompensationServiceSuite) TestTransitionCorrectionUpdatesForecast() {
	emp := s.createEmployee(50)
	jan := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	tr := s.createTimeRecord(emp.ID, jan, 10, 0, types.TimeRecordStatusValidated)
	key := types.PeriodKeyFor(emp.ID, jan)

	_, err := s.service.Recalculate(s.GetContext(), emp.ID, jan)
	s.NoError(err)

	// Correcting a validated record removes its hours until it is
	// validated again.
	_, err = s.service.ApplyTimeRecordTransition(s.GetContext(), tr.ID, types.TimeRecordStatusCorrected)
	s.NoError(err)
	forecast, err := s.params.CompensationRepo.GetByKey(s.GetContext(), key)
	s.NoError(err)
	s.True(forecast.ForecastedAmount.IsZero())

	_, err = s.service.ApplyTimeRecordTransition(s.GetContext(), tr.ID, types.TimeRecordStatusValidated)
	s.NoError(err)
	forecast, err = s.params.CompensationRepo.GetByKey(s.GetContext(), key)
	s.NoError(err)
	s.True(forecast.ForecastedAmount.Equal(decimal.NewFromInt(500)))
}

func (s *CompensationServiceSuite) TestSendPendingNotificationsAtMostOnce() {
	emp := s.createEmployee(50)
	jan := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	s.createTimeRecord(emp.ID, jan, 8, 0, types.TimeRecordStatusValidated)
	_, err := s.service.Recalculate(s.GetContext(), emp.ID, jan)
	s.NoError(err)

	// Jan 26 is exactly five days before Jan 31.
	leadDay := time.Date(2025, 1, 26, 10, 0, 0, 0, time.UTC)
	report, err := s.service.SendPendingNotifications(s.GetContext(), leadDay)
	s.NoError(err)
	s.Equal(1, report.Succeeded)

	sent := s.GetSink().Sent()
	s.Len(sent, 1)
	s.Equal(emp.Email, sent[0].Recipient)

	forecast, err := s.params.CompensationRepo.GetByKey(s.GetContext(), types.PeriodKeyFor(emp.ID, jan))
	s.NoError(err)
	s.True(forecast.Notified())
	s.True(forecast.NotifiedAmount.Equal(decimal.NewFromInt(400)))

	// Later runs never notify the same period again.
	for i := 0; i < 3; i++ {
		report, err = s.service.SendPendingNotifications(s.GetContext(), leadDay.Add(time.Duration(i)*time.Hour))
		s.NoError(err)
		s.Equal(0, report.Succeeded)
	}
	s.Len(s.GetSink().Sent(), 1)
}

func (s *CompensationServiceSuite) TestSendPendingNotificationsOutsideWindow() {
	emp := s.createEmployee(50)
	jan := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	s.createTimeRecord(emp.ID, jan, 8, 0, types.TimeRecordStatusValidated)
	_, err := s.service.Recalculate(s.GetContext(), emp.ID, jan)
	s.NoError(err)

	// Too early and too late both skip.
	for _, day := range []time.Time{
		time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC),
	} {
		report, err := s.service.SendPendingNotifications(s.GetContext(), day)
		s.NoError(err)
		s.Equal(0, report.Succeeded)
	}
	s.Empty(s.GetSink().Sent())
}

func (s *CompensationServiceSuite) TestSendPendingNotificationsSinkFailureRetries() {
	emp := s.createEmployee(50)
	jan := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	s.createTimeRecord(emp.ID, jan, 8, 0, types.TimeRecordStatusValidated)
	_, err := s.service.Recalculate(s.GetContext(), emp.ID, jan)
	s.NoError(err)

	leadDay := time.Date(2025, 1, 26, 10, 0, 0, 0, time.UTC)
	s.GetSink().FailNext()
	report, err := s.service.SendPendingNotifications(s.GetContext(), leadDay)
	s.NoError(err)
	s.Equal(1, report.Failed)

	// The failed delivery leaves the sent flag unset so the retry
	// within the window still goes out.
	forecast, err := s.params.CompensationRepo.GetByKey(s.GetContext(), types.PeriodKeyFor(emp.ID, jan))
	s.NoError(err)
	s.False(forecast.Notified())

	report, err = s.service.SendPendingNotifications(s.GetContext(), leadDay)
	s.NoError(err)
	s.Equal(1, report.Succeeded)
	s.Len(s.GetSink().Sent(), 1)
}

func (s *CompensationServiceSuite) TestRecalculateAfterNotificationPreservesSentFlag() {
	emp := s.createEmployee(50)
	jan := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)
	s.createTimeRecord(emp.ID, jan, 8, 0, types.TimeRecordStatusValidated)
	_, err := s.service.Recalculate(s.GetContext(), emp.ID, jan)
	s.NoError(err)

	leadDay := time.Date(2025, 1, 26, 10, 0, 0, 0, time.UTC)
	_, err = s.service.SendPendingNotifications(s.GetContext(), leadDay)
	s.NoError(err)

	// Hours validated after the notification update the forecast but
	// the notified amount and date stay frozen.
	s.createTimeRecord(emp.ID, jan.AddDate(0, 0, 20), 8, 0, types.TimeRecordStatusValidated)
	forecast, err := s.service.Recalculate(s.GetContext(), emp.ID, jan)
	s.NoError(err)
	s.True(forecast.ForecastedAmount.Equal(decimal.NewFromInt(800)))
	s.True(forecast.Notified())
	s.True(forecast.NotifiedAmount.Equal(decimal.NewFromInt(400)))
}
