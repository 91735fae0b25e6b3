// Package sqlite stores time entries in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ayoisaiah/tasktimer/internal/models"
	"github.com/ayoisaiah/tasktimer/store"
)

// migrations are applied in order and recorded in schema_migrations.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS time_entries (
		id            TEXT PRIMARY KEY,
		task_id       TEXT NOT NULL,
		project_id    TEXT NOT NULL,
		task_title    TEXT NOT NULL DEFAULT '',
		project_title TEXT NOT NULL DEFAULT '',
		start_time    TEXT NOT NULL,
		end_time      TEXT,
		duration_ms   INTEGER NOT NULL DEFAULT 0,
		status        TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_task
		ON time_entries (task_id, start_time)`,
	`CREATE TABLE IF NOT EXISTS task_totals (
		task_id  TEXT PRIMARY KEY,
		total_ms INTEGER NOT NULL DEFAULT 0
	)`,
}

const entryColumns = `id, task_id, project_id, task_title, project_title,
	start_time, end_time, duration_ms, status, created_at, updated_at`

// Repository is a SQLite backed time entry store.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

var _ store.EntryStore = (*Repository)(nil)

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the time source used for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// Open opens the database at dbPath and applies pending migrations.
func Open(dbPath string, opts ...Option) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// a single connection keeps writes serialised
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	r := &Repository{
		db:  db,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`)
	if err != nil {
		return err
	}

	var current int

	err = db.QueryRow(
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`,
	).Scan(&current)
	if err != nil {
		return err
	}

	for i := current; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}

		_, err = tx.Exec(
			`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
			i+1,
			formatTime(time.Now()),
		)
		if err != nil {
			_ = tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Create inserts a new entry and returns its generated ID.
func (r *Repository) Create(
	ctx context.Context,
	entry *models.TimeEntry,
) (string, error) {
	id := uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO time_entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		entry.TaskID,
		entry.ProjectID,
		entry.TaskTitle,
		entry.ProjectTitle,
		formatTime(entry.StartTime),
		nullTime(entry.EndTime),
		entry.Duration.Milliseconds(),
		string(entry.Status),
		formatTime(entry.CreatedAt),
		formatTime(entry.UpdatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("insert time entry: %w", err)
	}

	if entry.Completed() {
		if err := addTotal(ctx, tx, entry.TaskID, entry.Duration); err != nil {
			return "", err
		}
	}

	return id, tx.Commit()
}

// Update completes the entry with the given ID.
func (r *Repository) Update(
	ctx context.Context,
	id string,
	u models.EntryUpdate,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var taskID, status string

	err = tx.QueryRowContext(ctx,
		`SELECT task_id, status FROM time_entries WHERE id = ?`, id,
	).Scan(&taskID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", store.ErrEntryNotFound, id)
	}

	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE time_entries
		SET end_time = ?, status = ?, duration_ms = ?, updated_at = ?
		WHERE id = ?`,
		nullTime(u.EndTime),
		string(u.Status),
		u.Duration.Milliseconds(),
		formatTime(r.now()),
		id,
	)
	if err != nil {
		return fmt.Errorf("update time entry: %w", err)
	}

	if models.EntryStatus(status) != models.StatusCompleted &&
		u.Status == models.StatusCompleted {
		if err := addTotal(ctx, tx, taskID, u.Duration); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Get returns a single entry.
func (r *Repository) Get(
	ctx context.Context,
	id string,
) (*models.TimeEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM time_entries WHERE id = ?`, id,
	)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", store.ErrEntryNotFound, id)
	}

	return e, err
}

// List returns the entries for taskID, newest first.
func (r *Repository) List(
	ctx context.Context,
	taskID string,
) ([]models.TimeEntry, error) {
	return r.query(ctx, []string{"task_id = ?"}, taskID)
}

// ListRange returns entries that started in [from, to), newest first. A zero
// to means no upper bound.
func (r *Repository) ListRange(
	ctx context.Context,
	from, to time.Time,
) ([]models.TimeEntry, error) {
	conditions := []string{"start_time >= ?"}
	args := []any{formatTime(from)}

	if !to.IsZero() {
		conditions = append(conditions, "start_time < ?")
		args = append(args, formatTime(to))
	}

	return r.query(ctx, conditions, args...)
}

func (r *Repository) query(
	ctx context.Context,
	conditions []string,
	args ...any,
) ([]models.TimeEntry, error) {
	q := `SELECT ` + entryColumns + ` FROM time_entries`

	if len(conditions) > 0 {
		q += " WHERE " + strings.Join(conditions, " AND ")
	}

	q += " ORDER BY start_time DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query time entries: %w", err)
	}
	defer rows.Close()

	var entries []models.TimeEntry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, *e)
	}

	return entries, rows.Err()
}

// TaskTotal returns the completed time recorded for taskID.
func (r *Repository) TaskTotal(
	ctx context.Context,
	taskID string,
) (time.Duration, error) {
	var ms int64

	err := r.db.QueryRowContext(ctx,
		`SELECT total_ms FROM task_totals WHERE task_id = ?`, taskID,
	).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	return time.Duration(ms) * time.Millisecond, nil
}

func addTotal(
	ctx context.Context,
	tx *sql.Tx,
	taskID string,
	d time.Duration,
) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO task_totals (task_id, total_ms) VALUES (?, ?)
		ON CONFLICT(task_id) DO UPDATE SET total_ms = total_ms + excluded.total_ms`,
		taskID,
		d.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("update task total: %w", err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.TimeEntry, error) {
	var (
		e                             models.TimeEntry
		start, created, updated, stat string
		end                           sql.NullString
		durationMs                    int64
	)

	err := s.Scan(
		&e.ID,
		&e.TaskID,
		&e.ProjectID,
		&e.TaskTitle,
		&e.ProjectTitle,
		&start,
		&end,
		&durationMs,
		&stat,
		&created,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	e.Status = models.EntryStatus(stat)
	e.Duration = time.Duration(durationMs) * time.Millisecond

	for _, f := range []struct {
		dst *time.Time
		src string
	}{
		{&e.StartTime, start},
		{&e.EndTime, end.String},
		{&e.CreatedAt, created},
		{&e.UpdatedAt, updated},
	} {
		if f.src == "" {
			continue
		}

		t, err := parseTime(f.src)
		if err != nil {
			return nil, fmt.Errorf("time entry %s: %w", e.ID, err)
		}

		*f.dst = t
	}

	return &e, nil
}
