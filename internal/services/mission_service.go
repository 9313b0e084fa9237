package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/haulink/trucker-backend/internal/models"
	"gorm.io/gorm"
)

// ProgressUpdater recomputes progress for all active user-mission pairs from
// the underlying activity counters. Separating the recompute from the reward
// pass means the reconciler only ever acts on a boolean threshold crossing
// and never does a read-modify-write on the counters itself.
type ProgressUpdater interface {
	UpdateAll(ctx context.Context) error
}

type MissionService struct {
	db       *gorm.DB
	locker   *JobLocker
	progress ProgressUpdater
}

func NewMissionService(db *gorm.DB, locker *JobLocker, progress ProgressUpdater) *MissionService {
	if progress == nil {
		progress = &activityProgressUpdater{db: db}
	}
	return &MissionService{db: db, locker: locker, progress: progress}
}

// ReconcileMissions refreshes mission progress and pays out every mission
// that crossed its target since the last run. Returns the number of rewards
// dispatched. A progress-update failure aborts the whole run; a failure on a
// single mission row is logged and skipped.
func (s *MissionService) ReconcileMissions(ctx context.Context) (int, error) {
	if err := s.locker.Acquire(ctx, JobReconcileMissions); err != nil {
		return 0, err
	}
	defer s.locker.Release(ctx, JobReconcileMissions)

	if err := s.progress.UpdateAll(ctx); err != nil {
		return 0, fmt.Errorf("mission progress update failed: %w", err)
	}

	var crossed []models.UserMission
	err := s.db.WithContext(ctx).
		Preload("Mission").
		Where("is_completed = ? AND progress >= max_progress", false).
		Find(&crossed).Error
	if err != nil {
		return 0, fmt.Errorf("failed to query completed missions: %w", err)
	}

	completed := 0
	for i := range crossed {
		dispatched, err := s.dispatchReward(ctx, &crossed[i])
		if err != nil {
			slog.Error("reward dispatch failed",
				"job", JobReconcileMissions, "user_mission_id", crossed[i].ID, "error", err)
			continue
		}
		if dispatched {
			completed++
		}
	}

	slog.Info("mission reconciliation finished", "job", JobReconcileMissions, "completed", completed)
	return completed, nil
}

// dispatchReward marks the mission completed and credits the points in one
// transaction. The guarded update on is_completed is the commit point: zero
// rows affected means another run already paid out, and the whole dispatch
// becomes a no-op. Marking complete and crediting cannot diverge because
// they commit together.
func (s *MissionService) dispatchReward(ctx context.Context, um *models.UserMission) (bool, error) {
	dispatched := false
	now := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		guard := tx.Model(&models.UserMission{}).
			Where("id = ? AND is_completed = ?", um.ID, false).
			Updates(map[string]interface{}{
				"is_completed": true,
				"completed_at": now,
			})
		if guard.Error != nil {
			return fmt.Errorf("failed to mark mission completed: %w", guard.Error)
		}
		if guard.RowsAffected == 0 {
			return nil
		}

		entry := models.PointEntry{
			ID:     uuid.New(),
			UserID: um.UserID,
			Amount: um.Mission.Points,
			Reason: "미션 완료: " + um.Mission.Title,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to credit points: %w", err)
		}

		notif := models.Notification{
			ID:     uuid.New(),
			UserID: um.UserID,
			Title:  "미션 완료! 🎉",
			Content: fmt.Sprintf("\"%s\" 미션을 완료하여 %d포인트를 획득했습니다!",
				um.Mission.Title, um.Mission.Points),
			Type: models.NotifTypeMissionComplete,
		}
		if err := tx.Create(&notif).Error; err != nil {
			return fmt.Errorf("failed to create completion notification: %w", err)
		}

		dispatched = true
		return nil
	})
	return dispatched, err
}

// AssignActiveMissions creates a UserMission row for every active mission the
// user does not have yet. Called when a user first visits the mission board.
func (s *MissionService) AssignActiveMissions(ctx context.Context, userID uuid.UUID) error {
	var missions []models.Mission
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&missions).Error; err != nil {
		return fmt.Errorf("failed to list active missions: %w", err)
	}

	for _, m := range missions {
		var count int64
		s.db.WithContext(ctx).Model(&models.UserMission{}).
			Where("user_id = ? AND mission_id = ?", userID, m.ID).
			Count(&count)
		if count > 0 {
			continue
		}
		um := models.UserMission{
			ID:          uuid.New(),
			UserID:      userID,
			MissionID:   m.ID,
			Progress:    0,
			MaxProgress: m.MaxProgress,
		}
		if err := s.db.WithContext(ctx).Create(&um).Error; err != nil {
			return fmt.Errorf("failed to assign mission %s: %w", m.ID, err)
		}
	}
	return nil
}

func (s *MissionService) ListUserMissions(ctx context.Context, userID uuid.UUID) ([]models.UserMission, error) {
	var ums []models.UserMission
	err := s.db.WithContext(ctx).
		Preload("Mission").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&ums).Error
	return ums, err
}

// activityProgressUpdater derives mission progress from what the user has
// actually done on the platform. Progress never decreases and is clamped to
// the mission target.
type activityProgressUpdater struct {
	db *gorm.DB
}

type userCount struct {
	UserID uuid.UUID
	Cnt    int
}

func (u *activityProgressUpdater) UpdateAll(ctx context.Context) error {
	var pending []models.UserMission
	err := u.db.WithContext(ctx).
		Preload("Mission").
		Joins("JOIN missions ON missions.id = user_missions.mission_id AND missions.is_active = ?", true).
		Where("user_missions.is_completed = ?", false).
		Find(&pending).Error
	if err != nil {
		return fmt.Errorf("failed to load open user missions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	categories := make(map[string]bool)
	for _, um := range pending {
		categories[um.Mission.Category] = true
	}

	counts := make(map[string]map[uuid.UUID]int)
	for category := range categories {
		byUser, err := u.countActivity(ctx, category)
		if err != nil {
			return err
		}
		counts[category] = byUser
	}

	for _, um := range pending {
		target := counts[um.Mission.Category][um.UserID]
		if target > um.MaxProgress {
			target = um.MaxProgress
		}
		if target <= um.Progress {
			continue
		}
		err := u.db.WithContext(ctx).Model(&models.UserMission{}).
			Where("id = ? AND progress < ?", um.ID, target).
			UpdateColumn("progress", target).Error
		if err != nil {
			return fmt.Errorf("failed to update progress for %s: %w", um.ID, err)
		}
	}
	return nil
}

func (u *activityProgressUpdater) countActivity(ctx context.Context, category string) (map[uuid.UUID]int, error) {
	var rows []userCount
	db := u.db.WithContext(ctx)

	var err error
	switch category {
	case models.MissionCategoryPost:
		err = db.Model(&models.Post{}).
			Select("author_id AS user_id, COUNT(*) AS cnt").
			Group("author_id").Scan(&rows).Error
	case models.MissionCategoryComment:
		err = db.Model(&models.Comment{}).
			Select("author_id AS user_id, COUNT(*) AS cnt").
			Group("author_id").Scan(&rows).Error
	case models.MissionCategoryLike:
		err = db.Model(&models.Like{}).
			Select("user_id, COUNT(*) AS cnt").
			Group("user_id").Scan(&rows).Error
	case models.MissionCategoryBookmark:
		err = db.Model(&models.Bookmark{}).
			Select("user_id, COUNT(*) AS cnt").
			Group("user_id").Scan(&rows).Error
	case models.MissionCategoryReport:
		err = db.Model(&models.Report{}).
			Select("reporter_id AS user_id, COUNT(*) AS cnt").
			Group("reporter_id").Scan(&rows).Error
	default:
		// unrecognized categories simply never progress
		return map[uuid.UUID]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to count %s activity: %w", category, err)
	}

	byUser := make(map[uuid.UUID]int, len(rows))
	for _, r := range rows {
		byUser[r.UserID] = r.Cnt
	}
	return byUser, nil
}
