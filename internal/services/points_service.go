package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/haulink/trucker-backend/internal/models"
	"gorm.io/gorm"
)

type PointsService struct {
	db *gorm.DB
}

func NewPointsService(db *gorm.DB) *PointsService {
	return &PointsService{db: db}
}

func (s *PointsService) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.PointEntry, error) {
	var entries []models.PointEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error
	return entries, err
}

// Balance is always derived from the ledger, never cached.
func (s *PointsService) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := s.db.WithContext(ctx).Model(&models.PointEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
