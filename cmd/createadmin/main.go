package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/haulink/trucker-backend/internal/config"
	"github.com/haulink/trucker-backend/internal/database"
	"github.com/haulink/trucker-backend/internal/logging"
	"github.com/haulink/trucker-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Operator bootstrap: creates (or promotes) an admin user. The web frontend
// owns normal signup; this exists so a fresh deployment has at least one
// admin for the moderation console.
func main() {
	logging.Setup()

	nickname := flag.String("nickname", "", "admin nickname")
	region := flag.String("region", "본사", "admin region")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *nickname == "" || *password == "" {
		slog.Error("both -nickname and -password are required")
		os.Exit(1)
	}

	cfg := config.Load()
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	var existing models.User
	if err := database.DB.Where("nickname = ?", *nickname).First(&existing).Error; err == nil {
		if existing.IsAdmin {
			slog.Info("user is already an admin", "user_id", existing.ID)
			return
		}
		if err := database.DB.Model(&existing).UpdateColumn("is_admin", true).Error; err != nil {
			slog.Error("failed to promote user", "error", err)
			os.Exit(1)
		}
		slog.Info("user promoted to admin", "user_id", existing.ID)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		os.Exit(1)
	}

	admin := models.User{
		ID:       uuid.New(),
		Nickname: *nickname,
		Region:   *region,
		Password: string(hash),
		IsAdmin:  true,
		Status:   models.UserStatusActive,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		slog.Error("failed to create admin user", "error", err)
		os.Exit(1)
	}

	slog.Info("admin user created", "user_id", admin.ID, "nickname", admin.Nickname)
}
