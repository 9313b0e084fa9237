package models

import (
	"time"

	"github.com/google/uuid"
)

// PointEntry is one row in the append-only points ledger. A user's balance is
// always derived as SUM(amount); it is never stored as mutable state.
type PointEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount    int       `gorm:"not null" json:"amount"`
	Reason    string    `gorm:"not null;size:200" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
