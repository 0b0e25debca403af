package store

import "tableflip.dev/remind/pkg/task"

// Snapshot is the serialized form of the whole store. Date fields ride along
// as RFC 3339 strings inside each task. Missing or null sections deserialize
// to empty partitions, never to an error.
type Snapshot struct {
	Countdown []*task.Task      `json:"countdownTasks"`
	Dated     DatedIndex        `json:"datedTasks"`
	Recurring RecurringSnapshot `json:"recurringTasks"`
}

type RecurringSnapshot struct {
	Daily   []*task.Task `json:"daily"`
	Weekly  []*task.Task `json:"weekly"`
	Monthly []*task.Task `json:"monthly"`
	Yearly  []*task.Task `json:"yearly"`
}

// Snapshot captures the store for persistence.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Countdown: s.countdown,
		Dated:     s.dated,
		Recurring: RecurringSnapshot{
			Daily:   s.daily,
			Weekly:  s.weekly,
			Monthly: s.monthly,
			Yearly:  s.yearly,
		},
	}
}

// FromSnapshot rebuilds a store. Tasks whose stored shape disagrees with
// their section (a recurrence type inside a dated bucket, say) are refiled by
// shape so the store stays structurally consistent.
func FromSnapshot(snap Snapshot) *Store {
	s := New()
	for _, t := range snap.Countdown {
		if t != nil {
			s.File(Countdown, t)
		}
	}
	for _, months := range snap.Dated {
		for _, days := range months {
			for _, tasks := range days {
				for _, t := range tasks {
					if t != nil {
						s.File(partitionOf(t), t)
					}
				}
			}
		}
	}
	refile := func(tasks []*task.Task) {
		for _, t := range tasks {
			if t != nil {
				s.File(partitionOf(t), t)
			}
		}
	}
	refile(snap.Recurring.Daily)
	refile(snap.Recurring.Weekly)
	refile(snap.Recurring.Monthly)
	refile(snap.Recurring.Yearly)
	return s
}
