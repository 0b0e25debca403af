// Package schedule drives the time-based behavior: selecting the upcoming
// task across partitions, formatting countdown text, and the periodic sweeps
// that expire countdowns and reset recurring tasks.
package schedule

import (
	"time"

	"tableflip.dev/remind/pkg/store"
	"tableflip.dev/remind/pkg/task"
)

// Sweep and refresh cadences for the watch loop.
const (
	ExpiryInterval  = 15 * time.Second
	RefreshInterval = 60 * time.Second
)

// Next is one task's next firing instant, paired with where it lives.
type Next struct {
	Task      *task.Task
	Partition store.Partition
	At        time.Time
}

// Upcoming selects the non-completed task with the smallest positive time
// until its next occurrence across every partition. Ties resolve to the
// first encountered (countdown, dated, weekly, monthly, yearly, daily).
func Upcoming(s *store.Store, now time.Time) (Next, bool) {
	var best Next
	for _, placed := range s.All() {
		if placed.Task.Completed {
			continue
		}
		at := placed.Task.Next(now)
		if at.IsZero() || !at.After(now) {
			continue
		}
		if best.Task == nil || at.Before(best.At) {
			best = Next{Task: placed.Task, Partition: placed.Partition, At: at}
		}
	}
	return best, best.Task != nil
}

// SweepExpired removes countdown tasks whose instant has passed and returns
// them in schedule order for the expiry notification batch.
func SweepExpired(s *store.Store, now time.Time) []*task.Task {
	var expired []*task.Task
	for _, t := range s.CountdownTasks() {
		if !t.ScheduledAt.After(now) {
			expired = append(expired, t)
		}
	}
	for _, t := range expired {
		s.Remove(t.ID)
	}
	return expired
}

// SweepResets returns completed recurring tasks to pending once a new period
// for their recurrence model begins, and reports which tasks flipped.
func SweepResets(s *store.Store, now time.Time) []*task.Task {
	var reset []*task.Task
	for _, p := range []store.Partition{store.Daily, store.Weekly, store.Monthly, store.Yearly} {
		for _, t := range s.RecurringTasks(p) {
			if t.ShouldReset(now) {
				t.Reset()
				reset = append(reset, t)
			}
		}
	}
	return reset
}

// NextMidnight is the first local midnight strictly after now, the alignment
// instant for the reset sweep. Callers re-arm from each firing instead of
// adding fixed 24h intervals.
func NextMidnight(now time.Time) time.Time {
	now = now.Local()
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}
