package models

import "time"

// JobStatus is the application stage of a job record.
type JobStatus string

const (
	StatusApplied      JobStatus = "applied"
	StatusInterviewing JobStatus = "interviewing"
	StatusOffered      JobStatus = "offered"
	StatusRejected     JobStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffered, StatusRejected:
		return true
	}
	return false
}

// Job is one tracked application. UserID never changes after insert.
type Job struct {
	ID      string
	UserID  string
	Title   string
	Company string
	Link    string
	Status  JobStatus
	// DateApplied is nil when unknown; otherwise a UTC midnight timestamp.
	DateApplied *time.Time
	Notes       string
	Tags        []string
	CreatedAt   time.Time
}
