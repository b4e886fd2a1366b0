package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/healio-platform/healio-api/internal/audit"
	"github.com/healio-platform/healio-api/internal/config"
	"github.com/healio-platform/healio-api/internal/handlers"
	infraRepo "github.com/healio-platform/healio-api/internal/infra/repository"
	"github.com/healio-platform/healio-api/internal/mailer"
	"github.com/healio-platform/healio-api/internal/middleware"
	"github.com/healio-platform/healio-api/internal/models"
	"github.com/healio-platform/healio-api/internal/notify"
	"github.com/healio-platform/healio-api/internal/session"
	"github.com/healio-platform/healio-api/internal/storage"
	"github.com/healio-platform/healio-api/internal/timezone"
	ucBooking "github.com/healio-platform/healio-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	sessions := session.NewStore(cfg)
	mail := mailer.New(cfg)
	notifier := notify.NewService(db, mail, cfg.AppBaseURL, log)
	uploader := storage.NewUploader(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES: BOOKING
	// ======================================================
	bookUC := ucBooking.NewBookAppointment(
		bookingRepo,
		auditDispatcher,
		notifier,
	)

	confirmUC := ucBooking.NewConfirmAppointment(
		bookingRepo,
		auditDispatcher,
		notifier,
	)

	rescheduleUC := ucBooking.NewRescheduleAppointment(
		bookingRepo,
		auditDispatcher,
		notifier,
	)

	cancelUC := ucBooking.NewCancelAppointment(
		bookingRepo,
		auditDispatcher,
		notifier,
		timezone.Now,
	)

	listUC := ucBooking.NewListAppointments(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, sessions)
	availabilityHandler := handlers.NewAvailabilityHandler(db)
	therapistHandler := handlers.NewTherapistHandler(db)
	moodHandler := handlers.NewMoodHandler(db)
	journalHandler := handlers.NewJournalHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)
	uploadHandler := handlers.NewUploadHandler(uploader)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		confirmUC,
		rescheduleUC,
		cancelUC,
		listUC,
	)

	adminHandler := handlers.NewAdminHandler(db, mail, auditDispatcher, cfg.AppBaseURL, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/admin/login", authHandler.AdminLogin)

		// Certificates upload happens before the account exists.
		api.POST("/uploads/therapist-certificate", uploadHandler.TherapistCertificate)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, sessions))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/auth/me", authHandler.GetMe)

			secured.GET("/therapists", therapistHandler.List)
			secured.GET("/availability", availabilityHandler.List)

			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications/:id", notificationHandler.MarkRead)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.DELETE("/appointments/:id", appointmentHandler.Cancel)

			patientOnly := secured.Group("/")
			patientOnly.Use(middleware.RequireRole(models.RolePatient))
			{
				patientOnly.POST("/appointments", appointmentHandler.Create)

				patientOnly.GET("/mood", moodHandler.List)
				patientOnly.POST("/mood", moodHandler.Create)

				patientOnly.GET("/journal", journalHandler.List)
				patientOnly.POST("/journal", journalHandler.Create)
				patientOnly.PATCH("/journal/:id", journalHandler.Update)
				patientOnly.DELETE("/journal/:id", journalHandler.Delete)
			}

			therapistOnly := secured.Group("/")
			therapistOnly.Use(middleware.RequireRole(models.RoleTherapist))
			{
				therapistOnly.POST("/availability", availabilityHandler.Create)
				therapistOnly.DELETE("/availability/:id", availabilityHandler.Delete)

				therapistOnly.PATCH("/appointments/:id", appointmentHandler.Update)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/users", adminHandler.Users)
				admin.GET("/therapists", adminHandler.Therapists)
				admin.PATCH("/therapists/:id", adminHandler.UpdateTherapist)

				admin.GET("/stats", adminHandler.Stats)
				admin.GET("/reports", adminHandler.Reports)

				admin.GET("/settings", adminHandler.GetSettings)
				admin.PATCH("/settings", adminHandler.UpdateSettings)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
