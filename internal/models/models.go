// Package models defines the records shared by the timer engine and the
// storage layer.
package models

import (
	"time"
)

// EntryStatus is the lifecycle status of a time entry.
type EntryStatus string

const (
	StatusRunning   EntryStatus = "running"
	StatusCompleted EntryStatus = "completed"
)

// TimeEntry is a durable record of a timed work interval.
type TimeEntry struct {
	StartTime    time.Time     `json:"start_time"    yaml:"start_time"`
	EndTime      time.Time     `json:"end_time"      yaml:"end_time"`
	CreatedAt    time.Time     `json:"created_at"    yaml:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"    yaml:"updated_at"`
	ID           string        `json:"id"            yaml:"id"`
	TaskID       string        `json:"task_id"       yaml:"task_id"`
	ProjectID    string        `json:"project_id"    yaml:"project_id"`
	ProjectTitle string        `json:"project_title" yaml:"project_title"`
	TaskTitle    string        `json:"task_title"    yaml:"task_title"`
	Status       EntryStatus   `json:"status"        yaml:"status"`
	Duration     time.Duration `json:"duration"      yaml:"duration"`
}

// Completed reports whether the entry has been closed.
func (e *TimeEntry) Completed() bool {
	return e.Status == StatusCompleted
}

// EntryUpdate holds the fields written when a running entry is completed.
type EntryUpdate struct {
	EndTime  time.Time
	Status   EntryStatus
	Duration time.Duration
}

// Apply copies the update onto e.
func (u EntryUpdate) Apply(e *TimeEntry, now time.Time) {
	e.EndTime = u.EndTime
	e.Status = u.Status
	e.Duration = u.Duration
	e.UpdatedAt = now
}

// Snapshot is the persisted form of an in-flight timer. Timestamps are
// milliseconds since the Unix epoch and durations are milliseconds, so the
// record stays readable by other tools.
type Snapshot struct {
	TaskID        string `json:"task_id"`
	ProjectID     string `json:"project_id"`
	TaskTitle     string `json:"task_title"`
	ProjectTitle  string `json:"project_title"`
	EntryID       string `json:"entry_id"`
	State         string `json:"state"`
	SessionStart  int64  `json:"session_start"`
	StartedAt     int64  `json:"started_at"`
	AccumulatedMs int64  `json:"accumulated_ms"`
	ReminderMs    int64  `json:"reminder_ms"`
	BreakEndsAt   int64  `json:"break_ends_at"`
	BreakMs       int64  `json:"break_ms"`
	SavedAt       int64  `json:"saved_at"`
	ReminderFired bool   `json:"reminder_fired"`
}

// OnBreak reports whether the snapshot carries an open break.
func (s *Snapshot) OnBreak() bool {
	return s.BreakEndsAt != 0
}
