package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusDismissed = "dismissed"
)

// Report is a user-submitted flag against a post or comment. A report is
// terminal once it leaves the pending state.
type Report struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID uuid.UUID  `gorm:"type:uuid;not null;index" json:"reporter_id"`
	TargetType string     `gorm:"not null;size:20" json:"target_type"`
	TargetID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"target_id"`
	Reason     string     `gorm:"not null;size:500" json:"reason"`
	Status     string     `gorm:"not null;default:'pending';size:20;index" json:"status"`
	HandledBy  *uuid.UUID `gorm:"type:uuid" json:"handled_by,omitempty"`
	HandledAt  *time.Time `json:"handled_at,omitempty"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	Reporter   User       `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE" json:"-"`
}
