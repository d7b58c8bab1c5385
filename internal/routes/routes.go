package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/outlaw-hq/admin-api/internal/audit"
	"github.com/outlaw-hq/admin-api/internal/cache"
	"github.com/outlaw-hq/admin-api/internal/config"
	"github.com/outlaw-hq/admin-api/internal/handlers"
	infraRepo "github.com/outlaw-hq/admin-api/internal/infra/repository"
	"github.com/outlaw-hq/admin-api/internal/middleware"
	"github.com/outlaw-hq/admin-api/internal/storage"
	ucBooking "github.com/outlaw-hq/admin-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	cch := cache.New(redisClient)
	store := storage.New(cfg)

	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	availableSlotsUC := ucBooking.NewGetAvailableSlots(bookingRepo, cfg.Scheduling)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(cfg, cch)

	userHandler := handlers.NewUserHandler(db, auditDispatcher, store, handlers.SchedulingConfig{
		MeetingDurationMinutes: cfg.Scheduling.MeetingDurationMinutes,
	})
	ideaHandler := handlers.NewIdeaHandler(db, auditDispatcher, store)
	formHandler := handlers.NewFormHandler(db, auditDispatcher)
	bookingHandler := handlers.NewBookingHandler(db, auditDispatcher, availableSlotsUC)

	analyticsHandler := handlers.NewAnalyticsHandler(db, cch)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// PUBLIC
	// ======================================================
	r.POST("/admin/login", authHandler.Login)

	// ======================================================
	// ADMIN (JWT)
	// ======================================================
	admin := r.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware(cfg, cch))
	{
		admin.POST("/logout", authHandler.Logout)

		// ------------------------------
		// USERS
		// ------------------------------
		admin.POST("/users", userHandler.Create)
		admin.GET("/users", userHandler.List)
		admin.GET("/users/:id", userHandler.Details)
		admin.PATCH("/users/:id", userHandler.Edit)
		admin.PATCH("/users/:id/approve", userHandler.Approve)
		admin.DELETE("/users/:id", userHandler.Delete)

		// ------------------------------
		// IDEAS
		// ------------------------------
		admin.GET("/ideas", ideaHandler.List)
		admin.GET("/ideas/:id", ideaHandler.GetByID)
		admin.DELETE("/ideas/:id", ideaHandler.Delete)

		// ------------------------------
		// FORMS
		// ------------------------------
		admin.GET("/forms", formHandler.List)
		admin.GET("/forms/:id/responses", formHandler.Responses)
		admin.PATCH("/forms/:id", formHandler.Edit)
		admin.DELETE("/forms/:id", formHandler.Delete)

		// ------------------------------
		// BOOKINGS
		// ------------------------------
		admin.GET("/bookings/available-slots", bookingHandler.AvailableSlots)
		admin.POST("/bookings", bookingHandler.Create)
		admin.GET("/bookings", bookingHandler.List)
		admin.PATCH("/bookings/:id", bookingHandler.Edit)
		admin.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)

		// ------------------------------
		// ANALYTICS
		// ------------------------------
		analytics := admin.Group("/analytics")
		{
			analytics.GET("/users/overview", analyticsHandler.UsersOverview)
			analytics.GET("/users/growth", analyticsHandler.UserGrowth)
			analytics.GET("/users/demographics", analyticsHandler.UserDemographics)
			analytics.GET("/ideas/overview", analyticsHandler.IdeasOverview)
			analytics.GET("/forms/overview", analyticsHandler.FormsOverview)
			analytics.GET("/bookings/overview", analyticsHandler.BookingsOverview)
			analytics.GET("/engagement/funnel", analyticsHandler.EngagementFunnel)
			analytics.GET("/smes/overview", analyticsHandler.SMEOverview)
			analytics.GET("/realtime", analyticsHandler.Realtime)
		}

		// ------------------------------
		// AUDIT LOGS
		// ------------------------------
		admin.GET("/audit-logs", auditLogsHandler.List)
	}
}
