package cron

import (
	"net/http"
	"time"

	"github.com/clientdesk/clientdesk/internal/logger"
	"github.com/clientdesk/clientdesk/internal/service"
	"github.com/gin-gonic/gin"
)

// BillingCronHandler handles billing related cron jobs
type BillingCronHandler struct {
	billingService service.BillingService
	overdueService service.OverdueService
	logger         *logger.Logger
}

// NewBillingCronHandler creates a new billing cron handler
func NewBillingCronHandler(
	billingService service.BillingService,
	overdueService service.OverdueService,
	logger *logger.Logger,
) *BillingCronHandler {
	return &BillingCronHandler{
		billingService: billingService,
		overdueService: overdueService,
		logger:         logger,
	}
}

// RunBillingCycle generates invoices for all due subscriptions
func (h *BillingCronHandler) RunBillingCycle(c *gin.Context) {
	now := time.Now().UTC()
	h.logger.Infow("starting billing cycle cron job", "time", now.Format(time.RFC3339))

	report, err := h.billingService.RunBillingCycle(c.Request.Context(), now)
	if err != nil {
		h.logger.Errorw("billing cycle failed", "error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("completed billing cycle cron job")
	c.JSON(http.StatusOK, report)
}

// DetectOverdue sends reminders for overdue invoices
func (h *BillingCronHandler) DetectOverdue(c *gin.Context) {
	now := time.Now().UTC()
	h.logger.Infow("starting overdue detection cron job", "time", now.Format(time.RFC3339))

	report, err := h.overdueService.DetectOverdue(c.Request.Context(), now)
	if err != nil {
		h.logger.Errorw("overdue detection failed", "error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("completed overdue detection cron job")
	c.JSON(http.StatusOK, report)
}
