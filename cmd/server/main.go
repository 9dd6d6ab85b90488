package main

import (
	"context"
	"net/http"
	"time"

	"github.com/clientdesk/clientdesk/internal/api/cron"
	"github.com/clientdesk/clientdesk/internal/config"
	"github.com/clientdesk/clientdesk/internal/domain/compensation"
	"github.com/clientdesk/clientdesk/internal/domain/employee"
	"github.com/clientdesk/clientdesk/internal/domain/invoice"
	"github.com/clientdesk/clientdesk/internal/domain/payment"
	"github.com/clientdesk/clientdesk/internal/domain/subscription"
	"github.com/clientdesk/clientdesk/internal/domain/timerecord"
	"github.com/clientdesk/clientdesk/internal/logger"
	"github.com/clientdesk/clientdesk/internal/notification"
	"github.com/clientdesk/clientdesk/internal/repository/memory"
	"github.com/clientdesk/clientdesk/internal/rest"
	"github.com/clientdesk/clientdesk/internal/scheduler"
	"github.com/clientdesk/clientdesk/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,

			// Repositories
			provideSubscriptionRepository,
			provideInvoiceRepository,
			providePaymentRepository,
			provideTimeRecordRepository,
			provideEmployeeRepository,
			provideCompensationRepository,
			provideLocker,
			provideSink,

			// Services
			provideServiceParams,
			service.NewBillingService,
			service.NewPaymentService,
			service.NewOverdueService,
			service.NewCompensationService,

			// Scheduler
			scheduler.NewScheduler,

			// HTTP
			cron.NewBillingCronHandler,
			cron.NewCompensationCronHandler,
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideSubscriptionRepository() subscription.Repository {
	return memory.NewSubscriptionStore()
}

func provideInvoiceRepository() invoice.Repository {
	return memory.NewInvoiceStore()
}

func providePaymentRepository() payment.Repository {
	return memory.NewPaymentStore()
}

func provideTimeRecordRepository() timerecord.Repository {
	return memory.NewTimeRecordStore()
}

func provideEmployeeRepository() employee.Repository {
	return memory.NewEmployeeStore()
}

func provideCompensationRepository() compensation.Repository {
	return memory.NewCompensationStore()
}

func provideLocker() service.Locker {
	return memory.NewKeyLocker()
}

func provideSink(cfg *config.Configuration, log *logger.Logger) notification.Sink {
	return notification.NewEmailSink(cfg, log)
}

func provideServiceParams(
	cfg *config.Configuration,
	log *logger.Logger,
	locker service.Locker,
	subRepo subscription.Repository,
	invRepo invoice.Repository,
	payRepo payment.Repository,
	trRepo timerecord.Repository,
	empRepo employee.Repository,
	compRepo compensation.Repository,
	sink notification.Sink,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:           log,
		Config:           cfg,
		Locker:           locker,
		SubscriptionRepo: subRepo,
		InvoiceRepo:      invRepo,
		PaymentRepo:      payRepo,
		TimeRecordRepo:   trRepo,
		EmployeeRepo:     empRepo,
		CompensationRepo: compRepo,
		Sink:             sink,
	}
}

func provideHandlers(
	billing *cron.BillingCronHandler,
	comp *cron.CompensationCronHandler,
) rest.Handlers {
	return rest.Handlers{
		BillingCron:      billing,
		CompensationCron: comp,
	}
}

func provideRouter(handlers rest.Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	return rest.NewRouter(cfg, log, handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	sched *scheduler.Scheduler,
	log *logger.Logger,
) {
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Scheduler.Enabled {
				if err := sched.Start(); err != nil {
					return err
				}
				log.Infow("scheduler started",
					"billing", cfg.Scheduler.BillingCronSpec,
					"overdue", cfg.Scheduler.OverdueCronSpec,
					"compensation", cfg.Scheduler.CompensationCronSpec)
			}

			go func() {
				log.Infow("starting server", "address", cfg.Server.Address)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalw("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cfg.Scheduler.Enabled {
				sched.Stop()
			}
			return server.Shutdown(ctx)
		},
	})
}
