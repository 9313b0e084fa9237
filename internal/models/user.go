package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	UserStatusActive = "active"
	UserStatusBanned = "banned"
)

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Nickname  string     `gorm:"not null;size:50" json:"nickname"`
	Region    string     `gorm:"not null;size:100" json:"region"`
	Password  string     `gorm:"not null" json:"-"`
	IsAdmin   bool       `gorm:"not null;default:false" json:"is_admin"`
	Status    string     `gorm:"not null;default:'active';size:20" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
