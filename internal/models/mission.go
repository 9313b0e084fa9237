package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MissionCategoryPost     = "post"
	MissionCategoryComment  = "comment"
	MissionCategoryLike     = "like"
	MissionCategoryBookmark = "bookmark"
	MissionCategoryReport   = "report"
)

// Mission is a gamification task. Progress targets are copied onto each
// UserMission row when the mission is assigned, so reward amounts stay stable
// even if the mission definition changes mid-cycle.
type Mission struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:100" json:"title"`
	Description string    `gorm:"size:500" json:"description"`
	Category    string    `gorm:"not null;size:50" json:"category"`
	Points      int       `gorm:"not null" json:"points"`
	MaxProgress int       `gorm:"not null" json:"max_progress"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserMission tracks one user's progress on one mission. IsCompleted is
// monotonic: it only ever flips false -> true.
type UserMission struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_missions_pair" json:"user_id"`
	MissionID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_missions_pair" json:"mission_id"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
	MaxProgress int        `gorm:"not null" json:"max_progress"`
	IsCompleted bool       `gorm:"not null;default:false;index" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	User        User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Mission     Mission    `gorm:"foreignKey:MissionID;constraint:OnDelete:CASCADE" json:"-"`
}
