package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/haulink/trucker-backend/internal/models"
	"gorm.io/gorm"
)

const (
	JobProcessReports    = "process_reports"
	JobReconcileMissions = "reconcile_missions"
)

var ErrJobAlreadyRunning = errors.New("job is already running")

// JobLocker hands out leases that keep the external scheduler from running
// the same batch job twice concurrently. A lease expires after the TTL, so a
// crashed run cannot block the job forever.
type JobLocker struct {
	db     *gorm.DB
	ttl    time.Duration
	holder string
}

func NewJobLocker(db *gorm.DB, ttl time.Duration) *JobLocker {
	return &JobLocker{
		db:     db,
		ttl:    ttl,
		holder: uuid.New().String(),
	}
}

// Acquire takes the lease for the named job. It first tries to take over an
// expired lease row, then to insert a fresh one; a live lease held by another
// instance yields ErrJobAlreadyRunning.
func (l *JobLocker) Acquire(ctx context.Context, name string) error {
	now := time.Now()

	result := l.db.WithContext(ctx).Model(&models.JobLease{}).
		Where("name = ? AND locked_until <= ?", name, now).
		Updates(map[string]interface{}{
			"holder":       l.holder,
			"locked_until": now.Add(l.ttl),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update job lease %s: %w", name, result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	lease := models.JobLease{
		Name:        name,
		Holder:      l.holder,
		LockedUntil: now.Add(l.ttl),
	}
	err := l.db.WithContext(ctx).Create(&lease).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrJobAlreadyRunning
	}
	return fmt.Errorf("failed to create job lease %s: %w", name, err)
}

// Release expires the lease early so the next scheduled run does not have to
// wait out the TTL. Only the current holder can release.
func (l *JobLocker) Release(ctx context.Context, name string) {
	l.db.WithContext(ctx).Model(&models.JobLease{}).
		Where("name = ? AND holder = ?", name, l.holder).
		UpdateColumn("locked_until", time.Now())
}
