package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medbook/clinic-scheduler/internal/audit"
	"github.com/medbook/clinic-scheduler/internal/config"
	"github.com/medbook/clinic-scheduler/internal/handlers"
	infraRepo "github.com/medbook/clinic-scheduler/internal/infra/repository"
	"github.com/medbook/clinic-scheduler/internal/lock"
	"github.com/medbook/clinic-scheduler/internal/middleware"
	"github.com/medbook/clinic-scheduler/internal/models"
	"github.com/medbook/clinic-scheduler/internal/notify"
	"github.com/medbook/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/medbook/clinic-scheduler/internal/usecase/appointment"
	ucPayment "github.com/medbook/clinic-scheduler/internal/usecase/payment"
	ucPayroll "github.com/medbook/clinic-scheduler/internal/usecase/payroll"
	ucSchedule "github.com/medbook/clinic-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {

	loc := timezone.Location(cfg.Timezone)
	now := func() time.Time { return time.Now().In(loc) }

	// ------------------------------
	// Infra singletons
	// ------------------------------
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	billingRepo := infraRepo.NewBillingGormRepository(db)

	locker := lock.NewRedisDoctorLocker(rdb, 5*time.Second)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	notifier := notify.NewDispatcher(notify.NewLogNotifier(log), log)

	// ------------------------------
	// Use cases
	// ------------------------------
	setWeeklyUC := ucSchedule.NewSetWeeklySchedule(scheduleRepo, auditDispatcher)
	getWeeklyUC := ucSchedule.NewGetWeeklySchedule(scheduleRepo)

	createUC := ucAppointment.NewCreateAppointment(appointmentRepo, locker, auditDispatcher, notifier)
	confirmUC := ucAppointment.NewConfirmAppointment(appointmentRepo, auditDispatcher, notifier, now)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(appointmentRepo, locker, auditDispatcher, notifier, now)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher, notifier, now)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher, notifier, now)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)

	refundUC := ucPayment.NewProcessRefund(billingRepo, auditDispatcher, notifier, now)
	computePayrollsUC := ucPayroll.NewComputePayrolls(billingRepo, loc, now)
	settlePayrollUC := ucPayroll.NewSettlePayroll(billingRepo, auditDispatcher, notifier, now)

	// ------------------------------
	// Handlers
	// ------------------------------
	authHandler := handlers.NewAuthHandler(db, cfg)
	scheduleHandler := handlers.NewScheduleHandler(setWeeklyUC, getWeeklyUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		confirmUC,
		rescheduleUC,
		cancelUC,
		completeUC,
		availabilityUC,
		listByDateUC,
		listByMonthUC,
		appointmentRepo,
		loc,
	)
	payrollHandler := handlers.NewPayrollHandler(computePayrollsUC, settlePayrollUC)
	paymentHandler := handlers.NewPaymentHandler(refundUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ------------------------------
	// Routes
	// ------------------------------
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// Slot previews are readable by any authenticated actor.
			secured.GET("/appointments/availability", appointmentHandler.AvailableSlots)
			secured.GET("/appointments/:id/history", appointmentHandler.History)

			doctor := secured.Group("/")
			doctor.Use(middleware.RequireRole(models.RoleDoctor))
			{
				doctor.GET("/me/schedule", scheduleHandler.Get)
				doctor.PUT("/me/schedule", scheduleHandler.Update)

				doctor.POST("/appointments", appointmentHandler.Create)
				doctor.GET("/me/appointments", appointmentHandler.ListByDate)
				doctor.GET("/me/appointments/month", appointmentHandler.ListByMonth)
				doctor.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
				doctor.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			}

			patient := secured.Group("/")
			patient.Use(middleware.RequireRole(models.RolePatient))
			{
				patient.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
				patient.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			}

			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/payrolls", payrollHandler.List)
				admin.POST("/payrolls/settle", payrollHandler.Settle)
				admin.POST("/payments/refund", paymentHandler.Refund)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
