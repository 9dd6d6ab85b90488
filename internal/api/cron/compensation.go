package cron

import (
	"net/http"
	"time"

	"github.com/clientdesk/clientdesk/internal/logger"
	"github.com/clientdesk/clientdesk/internal/service"
	"github.com/gin-gonic/gin"
)

// CompensationCronHandler handles compensation related cron jobs
type CompensationCronHandler struct {
	compensationService service.CompensationService
	logger              *logger.Logger
}

// NewCompensationCronHandler creates a new compensation cron handler
func NewCompensationCronHandler(
	compensationService service.CompensationService,
	logger *logger.Logger,
) *CompensationCronHandler {
	return &CompensationCronHandler{
		compensationService: compensationService,
		logger:              logger,
	}
}

// SendPendingNotifications sends due compensation forecast notifications
func (h *CompensationCronHandler) SendPendingNotifications(c *gin.Context) {
	now := time.Now().UTC()
	h.logger.Infow("starting compensation notification cron job", "time", now.Format(time.RFC3339))

	report, err := h.compensationService.SendPendingNotifications(c.Request.Context(), now)
	if err != nil {
		h.logger.Errorw("compensation notification run failed", "error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("completed compensation notification cron job")
	c.JSON(http.StatusOK, report)
}
