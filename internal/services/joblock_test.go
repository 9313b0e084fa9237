package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestJobLockerAcquireAndContention(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := NewJobLocker(db, time.Minute)
	second := NewJobLocker(db, time.Minute)

	if err := first.Acquire(ctx, JobProcessReports); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	if err := second.Acquire(ctx, JobProcessReports); !errors.Is(err, ErrJobAlreadyRunning) {
		t.Fatalf("contended Acquire() error = %v, want ErrJobAlreadyRunning", err)
	}

	// leases are per job name
	if err := second.Acquire(ctx, JobReconcileMissions); err != nil {
		t.Errorf("Acquire(other job) error = %v, want nil", err)
	}
}

func TestJobLockerReleaseFreesLease(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := NewJobLocker(db, time.Minute)
	second := NewJobLocker(db, time.Minute)

	if err := first.Acquire(ctx, JobProcessReports); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	first.Release(ctx, JobProcessReports)

	if err := second.Acquire(ctx, JobProcessReports); err != nil {
		t.Fatalf("Acquire() after release error = %v", err)
	}
}

func TestJobLockerReleaseByNonHolderIsIgnored(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	holder := NewJobLocker(db, time.Minute)
	intruder := NewJobLocker(db, time.Minute)

	if err := holder.Acquire(ctx, JobProcessReports); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	intruder.Release(ctx, JobProcessReports)

	if err := intruder.Acquire(ctx, JobProcessReports); !errors.Is(err, ErrJobAlreadyRunning) {
		t.Fatalf("Acquire() after foreign release error = %v, want ErrJobAlreadyRunning", err)
	}
}

func TestJobLockerTakesOverExpiredLease(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	crashed := NewJobLocker(db, 10*time.Millisecond)
	if err := crashed.Acquire(ctx, JobProcessReports); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	// simulate a crashed run: never released, wait out the TTL
	time.Sleep(20 * time.Millisecond)

	next := NewJobLocker(db, time.Minute)
	if err := next.Acquire(ctx, JobProcessReports); err != nil {
		t.Fatalf("Acquire() after expiry error = %v", err)
	}
}
