package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/haulink/trucker-backend/internal/database"
	"github.com/haulink/trucker-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// a :memory: database exists per connection
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, nickname string, isAdmin bool) models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Nickname: nickname,
		Region:   "서울",
		Password: "x",
		IsAdmin:  isAdmin,
		Status:   models.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", nickname, err)
	}
	return user
}

func createPost(t *testing.T, db *gorm.DB, authorID uuid.UUID, title, content string) models.Post {
	t.Helper()
	post := models.Post{
		ID:       uuid.New(),
		AuthorID: authorID,
		Category: "자유게시판",
		Title:    title,
		Content:  content,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return post
}

func createComment(t *testing.T, db *gorm.DB, postID, authorID uuid.UUID, content string) models.Comment {
	t.Helper()
	comment := models.Comment{
		ID:       uuid.New(),
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	return comment
}

func createReport(t *testing.T, db *gorm.DB, reporterID uuid.UUID, targetType string, targetID uuid.UUID, reason string) models.Report {
	t.Helper()
	report := models.Report{
		ID:         uuid.New(),
		ReporterID: reporterID,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     reason,
		Status:     models.ReportStatusPending,
	}
	if err := db.Create(&report).Error; err != nil {
		t.Fatalf("failed to create report: %v", err)
	}
	return report
}

func createMission(t *testing.T, db *gorm.DB, title, category string, points, maxProgress int) models.Mission {
	t.Helper()
	mission := models.Mission{
		ID:          uuid.New(),
		Title:       title,
		Description: title,
		Category:    category,
		Points:      points,
		MaxProgress: maxProgress,
		IsActive:    true,
	}
	if err := db.Create(&mission).Error; err != nil {
		t.Fatalf("failed to create mission: %v", err)
	}
	return mission
}

func createUserMission(t *testing.T, db *gorm.DB, userID uuid.UUID, mission models.Mission, progress int) models.UserMission {
	t.Helper()
	um := models.UserMission{
		ID:          uuid.New(),
		UserID:      userID,
		MissionID:   mission.ID,
		Progress:    progress,
		MaxProgress: mission.MaxProgress,
	}
	if err := db.Create(&um).Error; err != nil {
		t.Fatalf("failed to create user mission: %v", err)
	}
	return um
}

func newTestLocker(db *gorm.DB) *JobLocker {
	return NewJobLocker(db, time.Minute)
}
