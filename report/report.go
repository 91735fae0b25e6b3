// Package report aggregates completed time entries for the dashboard views.
package report

import (
	"sort"
	"time"

	"github.com/maruel/natural"

	"github.com/ayoisaiah/tasktimer/internal/models"
	"github.com/ayoisaiah/tasktimer/internal/timeutil"
)

// Day is the tracked time for a single calendar day.
type Day struct {
	Date     string        `json:"date"`
	Duration time.Duration `json:"duration"`
	Hours    float64       `json:"hours"`
}

// TaskTotal is the tracked time for a single task.
type TaskTotal struct {
	TaskID       string        `json:"task_id"`
	TaskTitle    string        `json:"task_title"`
	ProjectTitle string        `json:"project_title"`
	Duration     time.Duration `json:"duration"`
	Hours        float64       `json:"hours"`
	Entries      int           `json:"entries"`
}

// Summary bundles the report views.
type Summary struct {
	Days  []Day         `json:"days"`
	Tasks []TaskTotal   `json:"tasks"`
	Total time.Duration `json:"total"`
	Hours float64       `json:"hours"`
}

// Total sums the duration of completed entries. Running entries have no
// duration yet and are skipped.
func Total(entries []models.TimeEntry) time.Duration {
	var total time.Duration

	for i := range entries {
		if entries[i].Completed() {
			total += entries[i].Duration
		}
	}

	return total
}

// Daily returns per-day totals in loc, oldest first. Days without entries
// between the first and the last tracked day are included with a zero total.
func Daily(entries []models.TimeEntry, loc *time.Location) []Day {
	if loc == nil {
		loc = time.Local
	}

	totals := make(map[string]time.Duration)

	var first, last time.Time

	for i := range entries {
		e := &entries[i]
		if !e.Completed() {
			continue
		}

		day := timeutil.RoundToStart(e.StartTime.In(loc))

		if first.IsZero() || day.Before(first) {
			first = day
		}

		if day.After(last) {
			last = day
		}

		totals[timeutil.DayKey(day)] += e.Duration
	}

	if first.IsZero() {
		return nil
	}

	var days []Day

	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		key := timeutil.DayKey(date)

		days = append(days, Day{
			Date:     key,
			Duration: totals[key],
			Hours:    timeutil.Hours(totals[key]),
		})
	}

	return days
}

// ByTask groups completed entries by task, naturally ordered by task title.
func ByTask(entries []models.TimeEntry) []TaskTotal {
	index := make(map[string]int)

	var tasks []TaskTotal

	for i := range entries {
		e := &entries[i]
		if !e.Completed() {
			continue
		}

		j, ok := index[e.TaskID]
		if !ok {
			j = len(tasks)
			index[e.TaskID] = j

			tasks = append(tasks, TaskTotal{
				TaskID:       e.TaskID,
				TaskTitle:    e.TaskTitle,
				ProjectTitle: e.ProjectTitle,
			})
		}

		tasks[j].Duration += e.Duration
		tasks[j].Entries++
	}

	for i := range tasks {
		tasks[i].Hours = timeutil.Hours(tasks[i].Duration)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].label(), tasks[j].label()
		if a == b {
			return natural.Less(tasks[i].TaskID, tasks[j].TaskID)
		}

		return natural.Less(a, b)
	})

	return tasks
}

// Build computes every view over entries.
func Build(entries []models.TimeEntry, loc *time.Location) Summary {
	total := Total(entries)

	return Summary{
		Days:  Daily(entries, loc),
		Tasks: ByTask(entries),
		Total: total,
		Hours: timeutil.Hours(total),
	}
}

func (t *TaskTotal) label() string {
	if t.TaskTitle != "" {
		return t.TaskTitle
	}

	return t.TaskID
}
