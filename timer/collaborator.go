package timer

import (
	"context"

	"github.com/ayoisaiah/tasktimer/internal/models"
)

// Persister stores in-flight timer state so that it survives a restart.
// Save must overwrite any existing state for the task.
type Persister interface {
	Save(ctx context.Context, taskID string, snap *models.Snapshot) error
	// Restore returns nil without an error when nothing is stored.
	Restore(ctx context.Context, taskID string) (*models.Snapshot, error)
	Clear(ctx context.Context, taskID string) error
}

// Repository records time entries.
type Repository interface {
	Create(ctx context.Context, entry *models.TimeEntry) (string, error)
	Update(ctx context.Context, id string, u models.EntryUpdate) error
	// List returns the entries for a task, newest first.
	List(ctx context.Context, taskID string) ([]models.TimeEntry, error)
}

// Notifier delivers user-visible alerts. Delivery is best-effort.
type Notifier interface {
	Notify(title, body string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(title, body string)

func (f NotifierFunc) Notify(title, body string) {
	f(title, body)
}

type nopPersister struct{}

func (nopPersister) Save(context.Context, string, *models.Snapshot) error {
	return nil
}

func (nopPersister) Restore(
	context.Context,
	string,
) (*models.Snapshot, error) {
	return nil, nil
}

func (nopPersister) Clear(context.Context, string) error {
	return nil
}

type nopRepository struct{}

func (nopRepository) Create(context.Context, *models.TimeEntry) (string, error) {
	return "", nil
}

func (nopRepository) Update(context.Context, string, models.EntryUpdate) error {
	return nil
}

func (nopRepository) List(context.Context, string) ([]models.TimeEntry, error) {
	return nil, nil
}
