package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/haulink/trucker-backend/internal/config"
	"github.com/haulink/trucker-backend/internal/handlers"
	"github.com/haulink/trucker-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	healthHandler *handlers.HealthHandler,
	jobHandler *handlers.JobHandler,
	moderationHandler *handlers.ModerationHandler,
	userHandler *handlers.UserHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Scheduled jobs, invoked by the external cron scheduler
	jobs := api.Group("/jobs", middleware.CronProtected(cfg))
	jobs.Post("/process-reports", jobHandler.ProcessReports)
	jobs.Post("/reconcile-missions", jobHandler.ReconcileMissions)

	// User endpoints (JWT required)
	api.Post("/reports", middleware.JWTProtected(cfg), moderationHandler.CreateReport)

	me := api.Group("/me", middleware.JWTProtected(cfg))
	me.Get("/reports", moderationHandler.MyReports)
	me.Get("/points", userHandler.MyPoints)
	me.Get("/notifications", userHandler.MyNotifications)
	me.Put("/notifications/:id/read", userHandler.MarkNotificationRead)
	me.Get("/missions", userHandler.MyMissions)

	// Admin moderation console (JWT + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/reports", moderationHandler.ListReports)
	admin.Put("/reports/:id", moderationHandler.ActionReport)
	admin.Post("/bans", moderationHandler.BanUser)
	admin.Get("/actions", moderationHandler.ListAdminActions)
}
