package task

import "time"

// RepeatType tags the recurrence variant of a task. The values match the
// snapshot wire format.
type RepeatType string

const (
	RepeatNone    RepeatType = ""
	RepeatDaily   RepeatType = "day"
	RepeatWeekly  RepeatType = "week"
	RepeatMonthly RepeatType = "month"
	RepeatYearly  RepeatType = "year"
)

func (r RepeatType) Valid() bool {
	switch r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	}
	return false
}

func (r RepeatType) String() string {
	switch r {
	case RepeatDaily:
		return "daily"
	case RepeatWeekly:
		return "weekly"
	case RepeatMonthly:
		return "monthly"
	case RepeatYearly:
		return "yearly"
	}
	return "none"
}

// Recurrence is the tagged variant {None, Daily, Weekly(weekday),
// Monthly(day), Yearly(month, day)}. Only the anchor fields for the tagged
// type are meaningful; the rest stay zero.
type Recurrence struct {
	Type RepeatType `json:"repeatType,omitempty"`

	// Weekday anchors weekly tasks, 0 (Sunday) through 6 (Saturday).
	Weekday int `json:"weekDay,omitempty"`

	// MonthDay anchors monthly tasks, 1 through 31.
	MonthDay int `json:"monthDay,omitempty"`

	// YearMonth and YearDay anchor yearly tasks. YearMonth is 0 (January)
	// through 11 (December), as in the snapshot format.
	YearMonth int `json:"yearMonth,omitempty"`
	YearDay   int `json:"yearDay,omitempty"`
}

// Anchored derives the recurrence anchors for the given type from a concrete
// date, the way the classifier files a parsed record.
func Anchored(t RepeatType, date time.Time) Recurrence {
	r := Recurrence{Type: t}
	switch t {
	case RepeatWeekly:
		r.Weekday = int(date.Weekday())
	case RepeatMonthly:
		r.MonthDay = date.Day()
	case RepeatYearly:
		r.YearMonth = int(date.Month()) - 1
		r.YearDay = date.Day()
	}
	return r
}

// NextOccurrence computes the next firing instant strictly after now for a
// task whose stored anchor carries the time-of-day. For RepeatNone the anchor
// itself is the only occurrence, whether or not it is already past.
func (r Recurrence) NextOccurrence(anchor, now time.Time) time.Time {
	hour, minute := anchor.Local().Hour(), anchor.Local().Minute()
	now = now.Local()

	switch r.Type {
	case RepeatDaily:
		next := at(now, hour, minute)
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		return next

	case RepeatWeekly:
		daysUntil := (r.Weekday - int(now.Weekday()) + 7) % 7
		if daysUntil == 0 && !at(now, hour, minute).After(now) {
			daysUntil = 7
		}
		return at(now.AddDate(0, 0, daysUntil), hour, minute)

	case RepeatMonthly:
		next := onDay(now.Year(), now.Month(), r.MonthDay, hour, minute, now.Location())
		if !next.After(now) {
			y, m := now.Year(), now.Month()+1
			next = onDay(y, m, r.MonthDay, hour, minute, now.Location())
		}
		return next

	case RepeatYearly:
		month := time.Month(r.YearMonth + 1)
		next := onDay(now.Year(), month, r.YearDay, hour, minute, now.Location())
		if !next.After(now) {
			next = onDay(now.Year()+1, month, r.YearDay, hour, minute, now.Location())
		}
		return next
	}

	return anchor
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// onDay builds an instant on the given calendar day, clamping days that do
// not exist in the target month (the 31st in a 30-day month, Feb 29 off leap
// years) to the month's last day instead of letting date normalization roll
// into the following month.
func onDay(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	// Month may be out of range (13 means January next year); normalize first.
	norm := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	if last := daysIn(norm.Year(), norm.Month(), loc); day > last {
		day = last
	}
	return time.Date(norm.Year(), norm.Month(), day, hour, minute, 0, 0, loc)
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
