package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotifTypeReportProcessed    = "report_processed"
	NotifTypeReportReviewNeeded = "report_review_needed"
	NotifTypeMissionComplete    = "mission_complete"
)

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string    `gorm:"not null;size:100" json:"title"`
	Content   string    `gorm:"not null;size:500" json:"content"`
	Type      string    `gorm:"not null;size:50" json:"type"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
