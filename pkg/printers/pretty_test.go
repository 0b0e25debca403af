package printers

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/remind/pkg/task"
)

func TestIDColumnFitsUUID(t *testing.T) {
	// The id column pads every row out to the same width; a minted id plus
	// the two-space gutter must never exceed it.
	id := uuid.NewString()
	if pad := len(spacing) - len(id); pad != 2 {
		t.Fatalf("id column leaves %d-space gutter for %d-char id, want 2", pad, len(id))
	}
}

func TestRecurrenceLabel(t *testing.T) {
	anchor := time.Date(2026, time.March, 9, 9, 30, 0, 0, time.Local) // a Monday

	cases := []struct {
		typ  task.RepeatType
		want string
	}{
		{task.RepeatDaily, "每天 09:30"},
		{task.RepeatWeekly, "每周一 09:30"},
		{task.RepeatMonthly, "每月9日 09:30"},
		{task.RepeatYearly, "每年3月9日 09:30"},
	}
	for _, c := range cases {
		tk := task.New("x", anchor, anchor)
		tk.Recurrence = task.Anchored(c.typ, anchor)
		if got := RecurrenceLabel(tk); got != c.want {
			t.Fatalf("%s: got %q, want %q", c.typ, got, c.want)
		}
	}
}

func TestClockTextWithRange(t *testing.T) {
	start := time.Date(2026, time.March, 11, 19, 55, 0, 0, time.Local)
	tk := task.New("x", start, start)
	end := task.Timestamp{Time: start.Add(35 * time.Minute)}
	tk.EndAt = &end

	if got := ClockText(tk); got != "19:55-20:30" {
		t.Fatalf("got %q", got)
	}
}
