// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ayoisaiah/tasktimer/internal/models"
)

// Epoch is the reference instant used by fixtures: 2023-11-14 22:13:20 UTC.
var Epoch = time.UnixMilli(1_700_000_000_000).UTC()

// TempFile returns a path to a not yet existing file inside a directory that
// is removed when the test ends.
func TempFile(t *testing.T, name string) string {
	t.Helper()

	return filepath.Join(t.TempDir(), name)
}

// Entry builds a completed time entry for taskID that starts offset after
// Epoch and lasts d.
func Entry(
	taskID string,
	offset, d time.Duration,
) *models.TimeEntry {
	start := Epoch.Add(offset)

	return &models.TimeEntry{
		TaskID:    taskID,
		ProjectID: "p-" + taskID,
		TaskTitle: "Task " + taskID,
		StartTime: start,
		EndTime:   start.Add(d),
		CreatedAt: start,
		UpdatedAt: start.Add(d),
		Status:    models.StatusCompleted,
		Duration:  d,
	}
}

// Running builds a running entry for taskID that starts offset after Epoch.
func Running(taskID string, offset time.Duration) *models.TimeEntry {
	e := Entry(taskID, offset, 0)
	e.EndTime = time.Time{}
	e.UpdatedAt = e.StartTime
	e.Status = models.StatusRunning

	return e
}
