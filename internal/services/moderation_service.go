package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/haulink/trucker-backend/internal/dto"
	"github.com/haulink/trucker-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound       = errors.New("report not found")
	ErrReportAlreadyHandled = errors.New("report has already been handled")
	ErrInvalidTargetType    = errors.New("invalid target_type: must be post or comment")
)

type ModerationService struct {
	db        *gorm.DB
	policy    JudgePolicy
	locker    *JobLocker
	batchSize int
}

func NewModerationService(db *gorm.DB, locker *JobLocker, batchSize int) *ModerationService {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &ModerationService{
		db:        db,
		policy:    DefaultJudgePolicy(),
		locker:    locker,
		batchSize: batchSize,
	}
}

// ProcessPendingReports triages every pending report, oldest first. Reports
// judged deletable are resolved automatically; the rest are escalated to the
// admins and stay pending. A failure on one report never aborts the batch.
// Returns the number of reports examined.
func (s *ModerationService) ProcessPendingReports(ctx context.Context) (int, error) {
	if err := s.locker.Acquire(ctx, JobProcessReports); err != nil {
		return 0, err
	}
	defer s.locker.Release(ctx, JobProcessReports)

	processed := 0
	var cursorAt time.Time
	var cursorID uuid.UUID

	for {
		var batch []models.Report
		q := s.db.WithContext(ctx).
			Where("status = ?", models.ReportStatusPending).
			Order("created_at ASC, id ASC").
			Limit(s.batchSize)
		if !cursorAt.IsZero() {
			q = q.Where("created_at > ? OR (created_at = ? AND id > ?)", cursorAt, cursorAt, cursorID)
		}
		if err := q.Find(&batch).Error; err != nil {
			return processed, fmt.Errorf("failed to query pending reports: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			report := &batch[i]
			if err := s.processReport(ctx, report); err != nil {
				slog.Error("report processing failed",
					"job", JobProcessReports, "report_id", report.ID, "error", err)
			}
			processed++
		}

		last := batch[len(batch)-1]
		cursorAt, cursorID = last.CreatedAt, last.ID
	}

	slog.Info("report processing finished", "job", JobProcessReports, "processed", processed)
	return processed, nil
}

func (s *ModerationService) processReport(ctx context.Context, report *models.Report) error {
	body, found, err := s.targetBody(ctx, report)
	if err != nil {
		return err
	}
	if !found {
		return s.dismissMissingTarget(ctx, report)
	}

	if s.policy.Judge(body, report.Reason) {
		return s.autoDelete(ctx, report)
	}
	return s.notifyAdmins(ctx, report)
}

// targetBody loads the reported content's text. A missing row is not an
// error: the content may have been deleted since the report was filed.
func (s *ModerationService) targetBody(ctx context.Context, report *models.Report) (string, bool, error) {
	switch report.TargetType {
	case models.TargetTypePost:
		var post models.Post
		err := s.db.WithContext(ctx).First(&post, "id = ?", report.TargetID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("failed to load reported post: %w", err)
		}
		if post.Content != "" {
			return post.Content, true, nil
		}
		return post.Title, true, nil
	case models.TargetTypeComment:
		var comment models.Comment
		err := s.db.WithContext(ctx).First(&comment, "id = ?", report.TargetID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("failed to load reported comment: %w", err)
		}
		return comment.Content, true, nil
	default:
		return "", false, fmt.Errorf("unknown report target type %q", report.TargetType)
	}
}

// dismissMissingTarget closes a report whose content is already gone. Leaving
// it pending would park it in the admin queue forever.
func (s *ModerationService) dismissMissingTarget(ctx context.Context, report *models.Report) error {
	now := time.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", report.ID, models.ReportStatusPending).
			Updates(map[string]interface{}{
				"status":     models.ReportStatusDismissed,
				"handled_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		audit := models.SystemAction(JobProcessReports, models.ActionDismissReport,
			report.TargetType, report.TargetID, "신고 대상 콘텐츠가 이미 삭제됨")
		return tx.Create(&audit).Error
	})
}

// autoDelete applies the full moderation outcome in one transaction: content
// removal, report resolution, audit log, reporter notification.
func (s *ModerationService) autoDelete(ctx context.Context, report *models.Report) error {
	now := time.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		guard := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", report.ID, models.ReportStatusPending).
			Updates(map[string]interface{}{
				"status":     models.ReportStatusReviewed,
				"handled_at": now,
			})
		if guard.Error != nil {
			return fmt.Errorf("failed to update report status: %w", guard.Error)
		}
		if guard.RowsAffected == 0 {
			// another run got here first
			return nil
		}

		if err := deleteContent(tx, report.TargetType, report.TargetID); err != nil {
			return fmt.Errorf("failed to delete reported content: %w", err)
		}

		audit := models.SystemAction(JobProcessReports, models.ActionAutoDeleteContent,
			report.TargetType, report.TargetID, "자동 삭제: "+report.Reason)
		if err := tx.Create(&audit).Error; err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}

		notif := models.Notification{
			ID:      uuid.New(),
			UserID:  report.ReporterID,
			Title:   "신고 처리 완료",
			Content: fmt.Sprintf("신고하신 %s이 자동으로 삭제되었습니다.", targetLabel(report.TargetType)),
			Type:    models.NotifTypeReportProcessed,
		}
		if err := tx.Create(&notif).Error; err != nil {
			return fmt.Errorf("failed to notify reporter: %w", err)
		}
		return nil
	})
}

// notifyAdmins escalates a report that needs human review. Each admin is
// notified individually so one failed insert cannot drop the rest of the
// fan-out. The report itself stays pending.
func (s *ModerationService) notifyAdmins(ctx context.Context, report *models.Report) error {
	var admins []models.User
	if err := s.db.WithContext(ctx).Where("is_admin = ?", true).Find(&admins).Error; err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	for _, admin := range admins {
		notif := models.Notification{
			ID:      uuid.New(),
			UserID:  admin.ID,
			Title:   "신고 검토 필요",
			Content: fmt.Sprintf("새로운 신고가 접수되었습니다. (ID: %s)", report.ID),
			Type:    models.NotifTypeReportReviewNeeded,
		}
		if err := s.db.WithContext(ctx).Create(&notif).Error; err != nil {
			slog.Error("admin notification failed",
				"job", JobProcessReports, "admin_id", admin.ID, "report_id", report.ID, "error", err)
		}
	}
	return nil
}

func deleteContent(tx *gorm.DB, targetType string, targetID uuid.UUID) error {
	switch targetType {
	case models.TargetTypePost:
		return tx.Delete(&models.Post{}, "id = ?", targetID).Error
	case models.TargetTypeComment:
		return tx.Delete(&models.Comment{}, "id = ?", targetID).Error
	default:
		return fmt.Errorf("unknown target type %q", targetType)
	}
}

func targetLabel(targetType string) string {
	if targetType == models.TargetTypePost {
		return "게시글"
	}
	return "댓글"
}

// CreateReport files a new report on behalf of a user.
func (s *ModerationService) CreateReport(ctx context.Context, reporterID uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	if req.TargetType != models.TargetTypePost && req.TargetType != models.TargetTypeComment {
		return nil, ErrInvalidTargetType
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, errors.New("reason is required")
	}

	report := models.Report{
		ID:         uuid.New(),
		ReporterID: reporterID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
		Status:     models.ReportStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func (s *ModerationService) ListReports(ctx context.Context, status string, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *ModerationService) ListReportsByReporter(ctx context.Context, reporterID uuid.UUID) ([]models.Report, error) {
	var reports []models.Report
	err := s.db.WithContext(ctx).
		Where("reporter_id = ?", reporterID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// ActionReport records a human admin's decision on a pending report.
func (s *ModerationService) ActionReport(ctx context.Context, adminID, reportID uuid.UUID, req *dto.ActionReportRequest) error {
	if req.Status != models.ReportStatusReviewed && req.Status != models.ReportStatusDismissed {
		return errors.New("invalid status: must be reviewed or dismissed")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, "id = ?", reportID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReportNotFound
			}
			return err
		}
		if report.Status != models.ReportStatusPending {
			return ErrReportAlreadyHandled
		}

		now := time.Now()
		if err := tx.Model(&report).Updates(map[string]interface{}{
			"status":     req.Status,
			"handled_by": adminID,
			"handled_at": now,
		}).Error; err != nil {
			return err
		}

		action := models.ActionDismissReport
		if req.Status == models.ReportStatusReviewed {
			action = models.ActionReviewReport
		}
		if req.DeleteContent && req.Status == models.ReportStatusReviewed {
			if err := deleteContent(tx, report.TargetType, report.TargetID); err != nil {
				return err
			}
			action = models.ActionDeleteContent
		}

		audit := models.AdminAction(adminID, action, report.TargetType, report.TargetID, req.Memo)
		return tx.Create(&audit).Error
	})
}

// BanUser suspends a user and records the ban in the history table.
func (s *ModerationService) BanUser(ctx context.Context, adminID uuid.UUID, req *dto.BanUserRequest) error {
	if req.Days <= 0 {
		return errors.New("ban duration must be at least one day")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return errors.New("reason is required")
	}

	now := time.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ?", req.UserID).
			UpdateColumn("status", models.UserStatusBanned)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("user not found")
		}

		ban := models.BanHistory{
			ID:        uuid.New(),
			UserID:    req.UserID,
			Reason:    req.Reason,
			StartAt:   now,
			EndAt:     now.AddDate(0, 0, req.Days),
			CreatedBy: adminID,
		}
		if err := tx.Create(&ban).Error; err != nil {
			return err
		}

		audit := models.AdminAction(adminID, models.ActionBanUser, "user", req.UserID, req.Reason)
		return tx.Create(&audit).Error
	})
}

func (s *ModerationService) ListAdminActions(ctx context.Context, limit, offset int) ([]models.AdminActionLog, int64, error) {
	var actions []models.AdminActionLog
	var total int64

	s.db.WithContext(ctx).Model(&models.AdminActionLog{}).Count(&total)
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&actions).Error
	if err != nil {
		return nil, 0, err
	}
	return actions, total, nil
}
