package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/haulink/trucker-backend/internal/config"
	"github.com/haulink/trucker-backend/internal/dto"
	"github.com/haulink/trucker-backend/internal/models"
	"gorm.io/gorm"
)

// AdminRequired checks the static admin token header first, then falls back
// to the authenticated user's is_admin flag.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			if c.Get("X-Admin-Token") == cfg.AdminToken {
				return c.Next()
			}
		}

		userID, err := UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err == nil && user.IsAdmin {
			c.Locals("admin_id", user.ID)
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}
