package task

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.Local)
}

func TestDailyNextOccurrence(t *testing.T) {
	anchor := date(2026, time.March, 1, 9, 0)
	r := Recurrence{Type: RepeatDaily}

	got := r.NextOccurrence(anchor, date(2026, time.March, 10, 8, 0))
	if want := date(2026, time.March, 10, 9, 0); !got.Equal(want) {
		t.Fatalf("before anchor time: got %v, want %v", got, want)
	}

	got = r.NextOccurrence(anchor, date(2026, time.March, 10, 10, 0))
	if want := date(2026, time.March, 11, 9, 0); !got.Equal(want) {
		t.Fatalf("after anchor time: got %v, want %v", got, want)
	}
}

func TestWeeklyNextOccurrence(t *testing.T) {
	anchor := date(2026, time.March, 2, 9, 0) // a Monday
	r := Recurrence{Type: RepeatWeekly, Weekday: 1}

	// 2026-03-02 is a Monday. Before 09:00 the same day still counts.
	got := r.NextOccurrence(anchor, date(2026, time.March, 2, 8, 0))
	if want := date(2026, time.March, 2, 9, 0); !got.Equal(want) {
		t.Fatalf("same day still future: got %v, want %v", got, want)
	}

	// After 09:00 it rolls a full week.
	got = r.NextOccurrence(anchor, date(2026, time.March, 2, 9, 30))
	if want := date(2026, time.March, 9, 9, 0); !got.Equal(want) {
		t.Fatalf("same day past: got %v, want %v", got, want)
	}

	// Midweek lands on the coming Monday.
	got = r.NextOccurrence(anchor, date(2026, time.March, 5, 12, 0))
	if want := date(2026, time.March, 9, 9, 0); !got.Equal(want) {
		t.Fatalf("midweek: got %v, want %v", got, want)
	}
}

func TestMonthlyNextOccurrence(t *testing.T) {
	anchor := date(2026, time.January, 15, 18, 30)
	r := Recurrence{Type: RepeatMonthly, MonthDay: 15}

	got := r.NextOccurrence(anchor, date(2026, time.April, 10, 0, 0))
	if want := date(2026, time.April, 15, 18, 30); !got.Equal(want) {
		t.Fatalf("this month: got %v, want %v", got, want)
	}

	got = r.NextOccurrence(anchor, date(2026, time.April, 20, 0, 0))
	if want := date(2026, time.May, 15, 18, 30); !got.Equal(want) {
		t.Fatalf("next month: got %v, want %v", got, want)
	}
}

func TestMonthlyNextOccurrenceClampsShortMonths(t *testing.T) {
	anchor := date(2026, time.January, 31, 8, 0)
	r := Recurrence{Type: RepeatMonthly, MonthDay: 31}

	// April has 30 days; the anchor clamps to the 30th.
	got := r.NextOccurrence(anchor, date(2026, time.April, 5, 0, 0))
	if want := date(2026, time.April, 30, 8, 0); !got.Equal(want) {
		t.Fatalf("30-day month: got %v, want %v", got, want)
	}

	// February 2026 clamps to the 28th.
	got = r.NextOccurrence(anchor, date(2026, time.February, 1, 0, 0))
	if want := date(2026, time.February, 28, 8, 0); !got.Equal(want) {
		t.Fatalf("february: got %v, want %v", got, want)
	}
}

func TestMonthlyNextOccurrenceDecemberRollsToJanuary(t *testing.T) {
	anchor := date(2026, time.January, 10, 9, 0)
	r := Recurrence{Type: RepeatMonthly, MonthDay: 10}

	got := r.NextOccurrence(anchor, date(2026, time.December, 20, 0, 0))
	if want := date(2027, time.January, 10, 9, 0); !got.Equal(want) {
		t.Fatalf("year wrap: got %v, want %v", got, want)
	}
}

func TestYearlyNextOccurrence(t *testing.T) {
	anchor := date(2026, time.May, 20, 10, 0)
	r := Recurrence{Type: RepeatYearly, YearMonth: 4, YearDay: 20}

	got := r.NextOccurrence(anchor, date(2026, time.March, 1, 0, 0))
	if want := date(2026, time.May, 20, 10, 0); !got.Equal(want) {
		t.Fatalf("this year: got %v, want %v", got, want)
	}

	got = r.NextOccurrence(anchor, date(2026, time.June, 1, 0, 0))
	if want := date(2027, time.May, 20, 10, 0); !got.Equal(want) {
		t.Fatalf("next year: got %v, want %v", got, want)
	}
}

func TestYearlyNextOccurrenceClampsLeapDay(t *testing.T) {
	anchor := date(2024, time.February, 29, 7, 0)
	r := Recurrence{Type: RepeatYearly, YearMonth: 1, YearDay: 29}

	got := r.NextOccurrence(anchor, date(2026, time.January, 1, 0, 0))
	if want := date(2026, time.February, 28, 7, 0); !got.Equal(want) {
		t.Fatalf("off leap year: got %v, want %v", got, want)
	}
}

func TestAnchored(t *testing.T) {
	d := date(2026, time.March, 2, 9, 0) // Monday March 2nd

	r := Anchored(RepeatWeekly, d)
	if r.Weekday != 1 {
		t.Fatalf("weekly anchor: got weekday %d, want 1", r.Weekday)
	}

	r = Anchored(RepeatMonthly, d)
	if r.MonthDay != 2 {
		t.Fatalf("monthly anchor: got day %d, want 2", r.MonthDay)
	}

	r = Anchored(RepeatYearly, d)
	if r.YearMonth != 2 || r.YearDay != 2 {
		t.Fatalf("yearly anchor: got (%d, %d), want (2, 2)", r.YearMonth, r.YearDay)
	}
}
