package timer_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ayoisaiah/tasktimer/internal/models"
)

var errBoom = errors.New("boom")

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type memPersister struct {
	data    map[string]models.Snapshot
	saves   []string
	clears  []string
	failAll bool
}

func newMemPersister() *memPersister {
	return &memPersister{data: make(map[string]models.Snapshot)}
}

func (p *memPersister) Save(
	_ context.Context,
	taskID string,
	snap *models.Snapshot,
) error {
	if p.failAll {
		return errBoom
	}

	p.saves = append(p.saves, taskID)
	p.data[taskID] = *snap

	return nil
}

func (p *memPersister) Restore(
	_ context.Context,
	taskID string,
) (*models.Snapshot, error) {
	if p.failAll {
		return nil, errBoom
	}

	snap, ok := p.data[taskID]
	if !ok {
		return nil, nil
	}

	return &snap, nil
}

func (p *memPersister) Clear(_ context.Context, taskID string) error {
	if p.failAll {
		return errBoom
	}

	p.clears = append(p.clears, taskID)
	delete(p.data, taskID)

	return nil
}

type updateCall struct {
	ID     string
	Update models.EntryUpdate
}

type memRepo struct {
	entries    map[string]*models.TimeEntry
	updates    []updateCall
	seq        int
	failCreate bool
	failUpdate bool
}

func newMemRepo() *memRepo {
	return &memRepo{entries: make(map[string]*models.TimeEntry)}
}

func (r *memRepo) Create(
	_ context.Context,
	entry *models.TimeEntry,
) (string, error) {
	if r.failCreate {
		return "", errBoom
	}

	r.seq++

	e := *entry
	e.ID = fmt.Sprintf("entry-%d", r.seq)
	r.entries[e.ID] = &e

	return e.ID, nil
}

func (r *memRepo) Update(
	_ context.Context,
	id string,
	u models.EntryUpdate,
) error {
	if r.failUpdate {
		return errBoom
	}

	r.updates = append(r.updates, updateCall{ID: id, Update: u})

	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("entry %s not found", id)
	}

	u.Apply(e, u.EndTime)

	return nil
}

func (r *memRepo) List(
	_ context.Context,
	taskID string,
) ([]models.TimeEntry, error) {
	var out []models.TimeEntry

	for _, e := range r.entries {
		if e.TaskID == taskID {
			out = append(out, *e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})

	return out, nil
}

type notification struct {
	Title string
	Body  string
}

type recordingNotifier struct {
	sent []notification
}

func (n *recordingNotifier) Notify(title, body string) {
	n.sent = append(n.sent, notification{Title: title, Body: body})
}

func (n *recordingNotifier) count(title string) int {
	var c int

	for _, s := range n.sent {
		if s.Title == title {
			c++
		}
	}

	return c
}

func (n *recordingNotifier) last() notification {
	if len(n.sent) == 0 {
		return notification{}
	}

	return n.sent[len(n.sent)-1]
}
