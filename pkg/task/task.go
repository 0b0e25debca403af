package task

import (
	"time"

	"github.com/google/uuid"
)

// Task is a stored reminder. Identity is immutable after creation; the
// scheduling and completion fields change through store operations only.
type Task struct {
	ID      string `json:"id"`
	Content string `json:"content"`

	// ScheduledAt is the anchor instant. For recurring tasks only the
	// time-of-day (plus the recurrence anchors) is meaningful.
	ScheduledAt Timestamp  `json:"date"`
	EndAt       *Timestamp `json:"endDate,omitempty"`

	// Duration is minutes between ScheduledAt and EndAt when a range or an
	// explicit duration was given.
	Duration int `json:"duration,omitempty"`

	CreatedAt   Timestamp  `json:"createDate"`
	Completed   bool       `json:"completed"`
	CompletedAt *Timestamp `json:"lastCompletedDate,omitempty"`

	Tags []string `json:"tags,omitempty"`

	Recurrence
}

// New mints a task with a fresh id and creation stamp.
func New(content string, scheduledAt time.Time, now time.Time) *Task {
	return &Task{
		ID:          uuid.NewString(),
		Content:     content,
		ScheduledAt: Timestamp{Time: scheduledAt},
		CreatedAt:   Timestamp{Time: now},
		Tags:        []string{},
	}
}

// Toggle flips completion. Completing stamps CompletedAt; un-completing
// clears it.
func (t *Task) Toggle(now time.Time) {
	t.Completed = !t.Completed
	if t.Completed {
		t.CompletedAt = &Timestamp{Time: now}
	} else {
		t.CompletedAt = nil
	}
}

// Reset returns a completed recurring task to pending for its next period.
func (t *Task) Reset() {
	t.Completed = false
	t.CompletedAt = nil
}

// ShouldReset reports whether a completed recurring task has entered a new
// period since it was last completed and is due to flip back to pending.
//
//	daily:   the last completion was on a different calendar day
//	weekly:  different week (weeks start Sunday) and today is the anchor weekday
//	monthly: different (year, month) and today is the anchor day
//	yearly:  different year and today is the anchor month+day
func (t *Task) ShouldReset(now time.Time) bool {
	if !t.Completed {
		return false
	}
	last := Timestamp{}
	if t.CompletedAt != nil {
		last = *t.CompletedAt
	}
	now = now.Local()

	switch t.Type {
	case RepeatDaily:
		return !last.SameDay(now)
	case RepeatWeekly:
		return !last.SameWeek(now) && int(now.Weekday()) == t.Weekday
	case RepeatMonthly:
		return !last.SameMonth(now) && now.Day() == t.MonthDay
	case RepeatYearly:
		return !last.SameYear(now) &&
			int(now.Month())-1 == t.YearMonth && now.Day() == t.YearDay
	}
	return false
}

// Next is the task's next firing instant strictly after now, or the zero
// time when there is none (a one-off task already past).
func (t *Task) Next(now time.Time) time.Time {
	if t.Type == RepeatNone {
		if t.ScheduledAt.After(now) {
			return t.ScheduledAt.Time
		}
		return time.Time{}
	}
	return t.NextOccurrence(t.ScheduledAt.Time, now)
}

// DueToday reports whether a recurring task fires on the current calendar
// day, used by the "today" view.
func (t *Task) DueToday(now time.Time) bool {
	now = now.Local()
	switch t.Type {
	case RepeatDaily:
		return true
	case RepeatWeekly:
		return int(now.Weekday()) == t.Weekday
	case RepeatMonthly:
		return now.Day() == t.MonthDay
	case RepeatYearly:
		return int(now.Month())-1 == t.YearMonth && now.Day() == t.YearDay
	}
	return false
}
