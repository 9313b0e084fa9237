package services

import (
	"context"
	"errors"
	"testing"

	"github.com/haulink/trucker-backend/internal/models"
)

type failingProgressUpdater struct{}

func (failingProgressUpdater) UpdateAll(context.Context) error {
	return errors.New("counter backend unavailable")
}

func TestReconcileMissionsDispatchesRewardOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMissionService(db, newTestLocker(db), nil)

	user := createUser(t, db, "기사님", false)
	mission := createMission(t, db, "출석 5회 달성", models.MissionCategoryPost, 100, 5)
	um := createUserMission(t, db, user.ID, mission, 5)

	completed, err := svc.ReconcileMissions(context.Background())
	if err != nil {
		t.Fatalf("ReconcileMissions() error = %v", err)
	}
	if completed != 1 {
		t.Fatalf("completed = %d, want 1", completed)
	}

	var got models.UserMission
	db.First(&got, "id = ?", um.ID)
	if !got.IsCompleted {
		t.Error("user mission not marked completed")
	}
	if got.CompletedAt == nil {
		t.Error("completed_at not set")
	}

	var entries []models.PointEntry
	db.Where("user_id = ?", user.ID).Find(&entries)
	if len(entries) != 1 {
		t.Fatalf("point entries = %d, want 1", len(entries))
	}
	if entries[0].Amount != 100 {
		t.Errorf("point amount = %d, want 100", entries[0].Amount)
	}

	var notifs []models.Notification
	db.Where("user_id = ? AND type = ?", user.ID, models.NotifTypeMissionComplete).Find(&notifs)
	if len(notifs) != 1 {
		t.Fatalf("completion notifications = %d, want 1", len(notifs))
	}

	// a second run must not pay out again
	completed, err = svc.ReconcileMissions(context.Background())
	if err != nil {
		t.Fatalf("second ReconcileMissions() error = %v", err)
	}
	if completed != 0 {
		t.Errorf("second run completed = %d, want 0", completed)
	}
	var entryCount int64
	db.Model(&models.PointEntry{}).Where("user_id = ?", user.ID).Count(&entryCount)
	if entryCount != 1 {
		t.Errorf("point entries after second run = %d, want 1", entryCount)
	}
}

func TestReconcileMissionsDerivesProgressFromActivity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMissionService(db, newTestLocker(db), nil)

	user := createUser(t, db, "기사님", false)
	mission := createMission(t, db, "게시글 3개 작성", models.MissionCategoryPost, 50, 3)
	um := createUserMission(t, db, user.ID, mission, 0)

	createPost(t, db, user.ID, "첫 글", "첫 번째 글입니다")
	createPost(t, db, user.ID, "둘째 글", "두 번째 글입니다")

	completed, err := svc.ReconcileMissions(context.Background())
	if err != nil {
		t.Fatalf("ReconcileMissions() error = %v", err)
	}
	if completed != 0 {
		t.Errorf("completed = %d, want 0", completed)
	}

	var got models.UserMission
	db.First(&got, "id = ?", um.ID)
	if got.Progress != 2 {
		t.Errorf("progress = %d, want 2", got.Progress)
	}

	createPost(t, db, user.ID, "셋째 글", "세 번째 글입니다")

	completed, err = svc.ReconcileMissions(context.Background())
	if err != nil {
		t.Fatalf("ReconcileMissions() error = %v", err)
	}
	if completed != 1 {
		t.Errorf("completed = %d, want 1", completed)
	}

	db.First(&got, "id = ?", um.ID)
	if !got.IsCompleted || got.Progress != 3 {
		t.Errorf("user mission = {completed:%v progress:%d}, want {true 3}", got.IsCompleted, got.Progress)
	}
}

func TestReconcileMissionsClampsProgressToTarget(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMissionService(db, newTestLocker(db), nil)

	user := createUser(t, db, "기사님", false)
	mission := createMission(t, db, "게시글 2개 작성", models.MissionCategoryPost, 30, 2)
	um := createUserMission(t, db, user.ID, mission, 0)

	for i := 0; i < 5; i++ {
		createPost(t, db, user.ID, "글", "글 내용")
	}

	if _, err := svc.ReconcileMissions(context.Background()); err != nil {
		t.Fatalf("ReconcileMissions() error = %v", err)
	}

	var got models.UserMission
	db.First(&got, "id = ?", um.ID)
	if got.Progress != 2 {
		t.Errorf("progress = %d, want clamped to 2", got.Progress)
	}
	if !got.IsCompleted {
		t.Error("user mission not marked completed")
	}
}

func TestReconcileMissionsAbortsOnProgressFailure(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMissionService(db, newTestLocker(db), failingProgressUpdater{})

	user := createUser(t, db, "기사님", false)
	mission := createMission(t, db, "출석 5회 달성", models.MissionCategoryPost, 100, 5)
	createUserMission(t, db, user.ID, mission, 5)

	_, err := svc.ReconcileMissions(context.Background())
	if err == nil {
		t.Fatal("ReconcileMissions() error = nil, want error")
	}

	// nothing was paid out
	var entryCount int64
	db.Model(&models.PointEntry{}).Count(&entryCount)
	if entryCount != 0 {
		t.Errorf("point entries = %d, want 0", entryCount)
	}

	// the lease was released, so a healthy run can follow
	healthy := NewMissionService(db, newTestLocker(db), nil)
	if _, err := healthy.ReconcileMissions(context.Background()); err != nil {
		t.Fatalf("follow-up ReconcileMissions() error = %v", err)
	}
}

func TestReconcileMissionsRejectsOverlappingRun(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMissionService(db, newTestLocker(db), nil)

	if err := newTestLocker(db).Acquire(context.Background(), JobReconcileMissions); err != nil {
		t.Fatalf("failed to pre-acquire lease: %v", err)
	}

	_, err := svc.ReconcileMissions(context.Background())
	if !errors.Is(err, ErrJobAlreadyRunning) {
		t.Fatalf("ReconcileMissions() error = %v, want ErrJobAlreadyRunning", err)
	}
}

func TestAssignActiveMissionsIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMissionService(db, newTestLocker(db), nil)

	user := createUser(t, db, "기사님", false)
	createMission(t, db, "게시글 3개 작성", models.MissionCategoryPost, 50, 3)
	createMission(t, db, "댓글 5개 작성", models.MissionCategoryComment, 30, 5)

	retired := createMission(t, db, "지난 이벤트", models.MissionCategoryLike, 10, 1)
	if err := db.Model(&models.Mission{}).Where("id = ?", retired.ID).
		UpdateColumn("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate mission: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := svc.AssignActiveMissions(context.Background(), user.ID); err != nil {
			t.Fatalf("AssignActiveMissions() error = %v", err)
		}
	}

	var count int64
	db.Model(&models.UserMission{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 2 {
		t.Errorf("user missions = %d, want 2 (inactive mission excluded, no duplicates)", count)
	}
}

func TestListUserMissionsPreloadsMission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMissionService(db, newTestLocker(db), nil)

	user := createUser(t, db, "기사님", false)
	mission := createMission(t, db, "게시글 3개 작성", models.MissionCategoryPost, 50, 3)
	createUserMission(t, db, user.ID, mission, 1)

	ums, err := svc.ListUserMissions(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListUserMissions() error = %v", err)
	}
	if len(ums) != 1 {
		t.Fatalf("missions = %d, want 1", len(ums))
	}
	if ums[0].Mission.Title != mission.Title {
		t.Errorf("preloaded mission title = %q, want %q", ums[0].Mission.Title, mission.Title)
	}
}
