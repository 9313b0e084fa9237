package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/haulink/trucker-backend/internal/config"
	"github.com/haulink/trucker-backend/internal/dto"
)

// CronProtected guards the scheduled job endpoints. The external scheduler
// authenticates with a shared token header, not a user JWT.
func CronProtected(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.CronToken == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: "Cron token not configured",
			})
		}
		got := c.Get("X-Cron-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(cfg.CronToken)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		return c.Next()
	}
}
