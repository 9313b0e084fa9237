package dto

import "github.com/haulink/trucker-backend/internal/models"

type PointsResponse struct {
	Success     bool                `json:"success"`
	History     []models.PointEntry `json:"history"`
	TotalPoints int                 `json:"total_points"`
}

type MissionProgressResponse struct {
	Mission     models.Mission `json:"mission"`
	Progress    int            `json:"progress"`
	MaxProgress int            `json:"max_progress"`
	IsCompleted bool           `json:"is_completed"`
}
