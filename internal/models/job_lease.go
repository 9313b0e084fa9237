package models

import "time"

// JobLease guards the scheduled batch jobs against overlapping runs. A job
// holds the lease until LockedUntil; an expired lease can be taken over.
type JobLease struct {
	Name        string    `gorm:"primaryKey;size:50" json:"name"`
	Holder      string    `gorm:"not null;size:64" json:"holder"`
	LockedUntil time.Time `gorm:"not null" json:"locked_until"`
}
