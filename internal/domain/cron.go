package domain

import "time"

// CronEntry represents a registered scheduler job.
type CronEntry struct {
	ID      string
	Name    string
	Trigger Trigger
	LastRun time.Time
	NextRun time.Time
	Running bool
}
