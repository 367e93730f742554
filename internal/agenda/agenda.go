// Package agenda buckets task collections by date: overdue, planned
// today/tomorrow, N-day forecast, and stale-for-review. All functions are
// pure and take the reference day as a caller-supplied YYYY-MM-DD string
// so tests control the clock.
package agenda

import (
	"sort"
	"time"

	"github.com/sauerdaniel/taskledger/internal/task"
)

const dayLayout = "2006-01-02"

// ReviewStaleDays is the default staleness window: a task whose last
// review is older than this many days before today needs another look.
const ReviewStaleDays = 7

// AddDays shifts a canonical date by n days. Reports false for input that
// is not a canonical date.
func AddDays(date string, n int) (string, bool) {
	t, err := time.Parse(dayLayout, date)
	if err != nil {
		return "", false
	}
	return t.AddDate(0, 0, n).Format(dayLayout), true
}

// IsOverdue reports whether a task is past its date. Completed tasks are
// never overdue. The due date governs when set; otherwise the planned
// date does. Opaque dates behave as unset.
func IsOverdue(t *task.Task, today string) bool {
	if t.Completed {
		return false
	}
	if due, ok := t.Due.Canonical(); ok {
		return due < today
	}
	if planned, ok := t.Planned.Canonical(); ok {
		return planned < today
	}
	return false
}

// IsPlannedToday reports whether a task belongs in the today bucket.
// With both planned and due set the task is active across the inclusive
// range; with only planned set it surfaces on that exact day. A task with
// only a due date is excluded here; it surfaces via overdue or forecast.
func IsPlannedToday(t *task.Task, today string) bool {
	planned, hasPlanned := t.Planned.Canonical()
	due, hasDue := t.Due.Canonical()
	switch {
	case hasPlanned && hasDue:
		return planned <= today && today <= due
	case hasPlanned:
		return planned == today
	default:
		return false
	}
}

// IsPlannedTomorrow reports whether the task's planned date is exactly
// the day after today, regardless of due date.
func IsPlannedTomorrow(t *task.Task, today string) bool {
	tomorrow, ok := AddDays(today, 1)
	if !ok {
		return false
	}
	planned, hasPlanned := t.Planned.Canonical()
	return hasPlanned && planned == tomorrow
}

// NeedsReview reports whether an incomplete task is stale for review:
// never reviewed at all, or last reviewed at least ReviewStaleDays before
// today.
func NeedsReview(t *task.Task, today string) bool {
	return NeedsReviewAfter(t, today, ReviewStaleDays)
}

// NeedsReviewAfter is NeedsReview with a caller-chosen staleness window.
func NeedsReviewAfter(t *task.Task, today string, staleDays int) bool {
	if t.Completed {
		return false
	}
	review, ok := t.Review.Canonical()
	if !ok {
		// Absent or opaque: never (verifiably) reviewed.
		return true
	}
	cutoff, ok := AddDays(today, -staleDays)
	if !ok {
		return false
	}
	return review <= cutoff
}

// Overdue filters the overdue tasks, sorted by date.
func Overdue(tasks []task.Task, today string) []task.Task {
	return SortByDate(filter(tasks, func(t *task.Task) bool { return IsOverdue(t, today) }))
}

// Today filters the today bucket, sorted by date.
func Today(tasks []task.Task, today string) []task.Task {
	return SortByDate(filter(tasks, func(t *task.Task) bool { return IsPlannedToday(t, today) }))
}

// Tomorrow filters the tomorrow bucket, sorted by date.
func Tomorrow(tasks []task.Task, today string) []task.Task {
	return SortByDate(filter(tasks, func(t *task.Task) bool { return IsPlannedTomorrow(t, today) }))
}

// Review filters the stale-for-review bucket, sorted by date.
func Review(tasks []task.Task, today string) []task.Task {
	return SortByDate(filter(tasks, func(t *task.Task) bool { return NeedsReview(t, today) }))
}

// Forecast buckets tasks over the inclusive window [start, start+days-1].
// Every day in the window gets a key, matching tasks or not. A task with
// both planned and due appears on every window day inside its range; a
// task with a single date appears on that date alone.
func Forecast(tasks []task.Task, start string, days int) map[string][]task.Task {
	out := make(map[string][]task.Task, days)
	window := make([]string, 0, days)
	for i := 0; i < days; i++ {
		day, ok := AddDays(start, i)
		if !ok {
			return out
		}
		window = append(window, day)
		out[day] = nil
	}
	if len(window) == 0 {
		return out
	}

	for i := range tasks {
		t := tasks[i]
		planned, hasPlanned := t.Planned.Canonical()
		due, hasDue := t.Due.Canonical()
		switch {
		case hasPlanned && hasDue:
			for _, day := range window {
				if planned <= day && day <= due {
					out[day] = append(out[day], t)
				}
			}
		case hasPlanned:
			if _, ok := out[planned]; ok {
				out[planned] = append(out[planned], t)
			}
		case hasDue:
			if _, ok := out[due]; ok {
				out[due] = append(out[due], t)
			}
		}
	}

	for _, day := range window {
		out[day] = SortByDate(out[day])
	}
	return out
}

// SortByDate orders tasks by planned date when present, else due date,
// ascending; undated tasks sort after all dated tasks; ties break by
// title, ascending. Returns a new slice.
func SortByDate(tasks []task.Task) []task.Task {
	out := append([]task.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		di, oki := sortKey(&out[i])
		dj, okj := sortKey(&out[j])
		if oki != okj {
			return oki
		}
		if oki && okj && di != dj {
			return di < dj
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// sortKey is the primary date key for ordering: planned, else due.
// Canonical form is ISO-8601, so lexicographic comparison sorts correctly.
func sortKey(t *task.Task) (string, bool) {
	if planned, ok := t.Planned.Canonical(); ok {
		return planned, true
	}
	if due, ok := t.Due.Canonical(); ok {
		return due, true
	}
	return "", false
}

func filter(tasks []task.Task, keep func(*task.Task) bool) []task.Task {
	var out []task.Task
	for i := range tasks {
		if keep(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}
