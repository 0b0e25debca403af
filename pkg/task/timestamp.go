package task

import (
	"encoding/json"
	"fmt"
	"time"
)

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp wraps time.Time so snapshot fields serialize as RFC3339 strings
// and deserialize back into date-typed fields.
type Timestamp struct {
	time.Time
}

func (t Timestamp) SameDay(then time.Time) bool {
	if t.Local().Day() == then.Local().Day() &&
		t.Local().Month() == then.Local().Month() &&
		t.Local().Year() == then.Local().Year() {
		return true
	}
	return false
}

func (t Timestamp) SameMonth(then time.Time) bool {
	if t.Local().Month() == then.Local().Month() &&
		t.Local().Year() == then.Local().Year() {
		return true
	}
	return false
}

func (t Timestamp) SameYear(then time.Time) bool {
	return t.Local().Year() == then.Local().Year()
}

// SameWeek reports whether both instants fall in the same week, where a week
// starts on the most recent Sunday.
func (t Timestamp) SameWeek(then time.Time) bool {
	return WeekStart(t.Local()).Equal(WeekStart(then.Local()))
}

// WeekStart returns midnight of the most recent Sunday at or before v.
func WeekStart(v time.Time) time.Time {
	v = v.Local()
	start := time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, v.Location())
	return start.AddDate(0, 0, -int(start.Weekday()))
}

func (t *Timestamp) MarshalJSON() ([]byte, error) {
	if t == nil || t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
