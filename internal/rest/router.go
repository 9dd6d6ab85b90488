package rest

import (
	"net/http"

	"github.com/clientdesk/clientdesk/internal/api/cron"
	"github.com/clientdesk/clientdesk/internal/config"
	"github.com/clientdesk/clientdesk/internal/logger"
	"github.com/clientdesk/clientdesk/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers exposed by the server.
type Handlers struct {
	BillingCron      *cron.BillingCronHandler
	CompensationCron *cron.CompensationCronHandler
}

// NewRouter builds the gin engine with the cron trigger endpoints. Each
// endpoint is idempotent and callable by any external scheduler.
func NewRouter(cfg *config.Configuration, log *logger.Logger, h Handlers) *gin.Engine {
	if cfg.Deployment.Mode == config.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = log.GetGinLogger()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.ErrorMiddleware)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	cronGroup := router.Group("/cron")
	{
		cronGroup.POST("/billing/run", h.BillingCron.RunBillingCycle)
		cronGroup.POST("/invoices/overdue", h.BillingCron.DetectOverdue)
		cronGroup.POST("/compensation/notify", h.CompensationCron.SendPendingNotifications)
	}

	return router
}
