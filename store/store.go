// Package store persists in-flight timers and time entries in a BoltDB file.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/tasktimer/internal/models"
	"github.com/ayoisaiah/tasktimer/internal/osutil"
)

const (
	timerBucket = "timers"
	entryBucket = "entries"
	totalBucket = "totals"
)

var (
	// ErrAlreadyOpen is returned by Open when another process holds the
	// database lock.
	ErrAlreadyOpen = errors.New(
		"is tasktimer already running? Only one instance can be active at a time",
	)
	ErrEntryNotFound = errors.New("time entry not found")
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
	now func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithClock sets the time source used for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// Open creates or opens the database at dbPath and locks it.
func Open(dbPath string, opts ...Option) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{timerBucket, entryBucket, totalBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Client{
		DB:  db,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// openDB opens the file with a short lock timeout so a second instance fails
// fast instead of blocking.
func openDB(dbPath string) (*bolt.DB, error) {
	var fileMode fs.FileMode = osutil.FilePermission

	db, err := bolt.Open(
		dbPath,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrAlreadyOpen
		}

		return nil, err
	}

	return db, nil
}

// Save stores the snapshot for taskID, replacing any previous one.
func (c *Client) Save(
	ctx context.Context,
	taskID string,
	snap *models.Snapshot,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	return c.DB.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(timerBucket)).Put([]byte(taskID), value)
	})
}

// Restore returns the snapshot stored for taskID, or nil if there is none.
func (c *Client) Restore(
	ctx context.Context,
	taskID string,
) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snap *models.Snapshot

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(timerBucket)).Get([]byte(taskID))
		if len(v) == 0 {
			return nil
		}

		snap = &models.Snapshot{}

		return json.Unmarshal(v, snap)
	})
	if err != nil {
		return nil, fmt.Errorf("decoding timer for task %s: %w", taskID, err)
	}

	return snap, nil
}

// Clear deletes the snapshot for taskID. Clearing a missing key is not an
// error.
func (c *Client) Clear(ctx context.Context, taskID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.DB.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(timerBucket)).Delete([]byte(taskID))
	})
}

// ListTimers returns every in-flight timer, ordered by task ID.
func (c *Client) ListTimers(ctx context.Context) ([]models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snaps []models.Snapshot

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(timerBucket)).ForEach(func(_, v []byte) error {
			var s models.Snapshot
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}

			snaps = append(snaps, s)

			return nil
		})
	})

	return snaps, err
}

// Create stores a new time entry and returns its generated ID. An entry that
// is already completed counts towards its task total immediately.
func (c *Client) Create(
	ctx context.Context,
	entry *models.TimeEntry,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e := *entry
	e.ID = uuid.NewString()

	value, err := json.Marshal(&e)
	if err != nil {
		return "", err
	}

	err = c.DB.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket([]byte(entryBucket)).Put([]byte(e.ID), value)
		if err != nil {
			return err
		}

		if e.Completed() {
			return addTotal(tx, e.TaskID, e.Duration)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return e.ID, nil
}

// Update applies u to the entry with the given ID. The task total grows by
// the entry duration the first time the entry is completed.
func (c *Client) Update(
	ctx context.Context,
	id string,
	u models.EntryUpdate,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return c.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(entryBucket))

		v := b.Get([]byte(id))
		if len(v) == 0 {
			return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
		}

		var e models.TimeEntry
		if err := json.Unmarshal(v, &e); err != nil {
			return err
		}

		wasCompleted := e.Completed()

		u.Apply(&e, c.now())

		value, err := json.Marshal(&e)
		if err != nil {
			return err
		}

		if err := b.Put([]byte(id), value); err != nil {
			return err
		}

		if !wasCompleted && e.Completed() {
			return addTotal(tx, e.TaskID, e.Duration)
		}

		return nil
	})
}

// Get returns a single entry.
func (c *Client) Get(ctx context.Context, id string) (*models.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var e *models.TimeEntry

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(entryBucket)).Get([]byte(id))
		if len(v) == 0 {
			return fmt.Errorf("%w: %s", ErrEntryNotFound, id)
		}

		e = &models.TimeEntry{}

		return json.Unmarshal(v, e)
	})

	return e, err
}

// List returns the entries recorded for taskID, newest first.
func (c *Client) List(
	ctx context.Context,
	taskID string,
) ([]models.TimeEntry, error) {
	return c.filter(ctx, func(e *models.TimeEntry) bool {
		return e.TaskID == taskID
	})
}

// ListRange returns the entries of every task that started in [from, to),
// newest first. A zero to means no upper bound.
func (c *Client) ListRange(
	ctx context.Context,
	from, to time.Time,
) ([]models.TimeEntry, error) {
	return c.filter(ctx, func(e *models.TimeEntry) bool {
		if e.StartTime.Before(from) {
			return false
		}

		return to.IsZero() || e.StartTime.Before(to)
	})
}

func (c *Client) filter(
	ctx context.Context,
	keep func(*models.TimeEntry) bool,
) ([]models.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []models.TimeEntry

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(entryBucket)).ForEach(func(_, v []byte) error {
			var e models.TimeEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}

			if keep(&e) {
				entries = append(entries, e)
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartTime.After(entries[j].StartTime)
	})

	return entries, nil
}

// TaskTotal returns the total completed time recorded for taskID.
func (c *Client) TaskTotal(
	ctx context.Context,
	taskID string,
) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var total time.Duration

	err := c.View(func(tx *bolt.Tx) error {
		var err error

		total, err = readTotal(tx, taskID)

		return err
	})

	return total, err
}

func readTotal(tx *bolt.Tx, taskID string) (time.Duration, error) {
	v := tx.Bucket([]byte(totalBucket)).Get([]byte(taskID))
	if len(v) == 0 {
		return 0, nil
	}

	ms, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("total for task %s: %w", taskID, err)
	}

	return time.Duration(ms) * time.Millisecond, nil
}

func addTotal(tx *bolt.Tx, taskID string, d time.Duration) error {
	total, err := readTotal(tx, taskID)
	if err != nil {
		return err
	}

	ms := (total + d).Milliseconds()

	return tx.Bucket([]byte(totalBucket)).Put(
		[]byte(taskID),
		[]byte(strconv.FormatInt(ms, 10)),
	)
}
