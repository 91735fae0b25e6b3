package store

import (
	"context"
	"time"

	"github.com/ayoisaiah/tasktimer/internal/models"
)

// EntryStore is the time entry storage interface. It is implemented by
// Client and by the SQLite repository.
type EntryStore interface {
	Create(ctx context.Context, entry *models.TimeEntry) (string, error)
	// Update completes an entry. The task total is incremented the first time
	// an entry becomes completed.
	Update(ctx context.Context, id string, u models.EntryUpdate) error
	// List returns a task's entries, newest first.
	List(ctx context.Context, taskID string) ([]models.TimeEntry, error)
	// ListRange returns entries of all tasks started in [from, to), newest
	// first.
	ListRange(ctx context.Context, from, to time.Time) ([]models.TimeEntry, error)
	TaskTotal(ctx context.Context, taskID string) (time.Duration, error)
	Close() error
}

var _ EntryStore = (*Client)(nil)
