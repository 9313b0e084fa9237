package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Category     string    `gorm:"not null;size:50" json:"category"`
	Title        string    `gorm:"not null;size:255" json:"title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	LikeCount    int       `gorm:"not null;default:0" json:"like_count"`
	CommentCount int       `gorm:"not null;default:0" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Author       User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}
