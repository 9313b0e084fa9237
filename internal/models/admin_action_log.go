package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActorTypeAdmin  = "admin"
	ActorTypeSystem = "system"
)

const (
	ActionAutoDeleteContent = "auto_delete_content"
	ActionDismissReport     = "dismiss_report"
	ActionReviewReport      = "review_report"
	ActionDeleteContent     = "delete_content"
	ActionBanUser           = "ban_user"
)

// AdminActionLog is the append-only moderation audit trail. Automated actions
// are attributed to a job name instead of a sentinel admin id.
type AdminActionLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ActorType  string     `gorm:"not null;size:20" json:"actor_type"`
	AdminID    *uuid.UUID `gorm:"type:uuid;index" json:"admin_id,omitempty"`
	JobName    string     `gorm:"size:50" json:"job_name,omitempty"`
	Action     string     `gorm:"not null;size:50" json:"action"`
	TargetType string     `gorm:"not null;size:20" json:"target_type"`
	TargetID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"target_id"`
	Memo       string     `gorm:"size:500" json:"memo,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SystemAction builds an audit row attributed to a background job.
func SystemAction(jobName, action, targetType string, targetID uuid.UUID, memo string) AdminActionLog {
	return AdminActionLog{
		ID:         uuid.New(),
		ActorType:  ActorTypeSystem,
		JobName:    jobName,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Memo:       memo,
	}
}

// AdminAction builds an audit row attributed to a human admin.
func AdminAction(adminID uuid.UUID, action, targetType string, targetID uuid.UUID, memo string) AdminActionLog {
	return AdminActionLog{
		ID:         uuid.New(),
		ActorType:  ActorTypeAdmin,
		AdminID:    &adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Memo:       memo,
	}
}
