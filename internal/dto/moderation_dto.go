package dto

import "github.com/google/uuid"

type CreateReportRequest struct {
	TargetType string    `json:"target_type"`
	TargetID   uuid.UUID `json:"target_id"`
	Reason     string    `json:"reason"`
}

type ActionReportRequest struct {
	Status        string `json:"status"`
	Memo          string `json:"memo"`
	DeleteContent bool   `json:"delete_content"`
}

type BanUserRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Reason string    `json:"reason"`
	Days   int       `json:"days"`
}
