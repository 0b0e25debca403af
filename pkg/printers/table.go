package printers

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/remind/pkg/schedule"
	"tableflip.dev/remind/pkg/store"
)

// Table prints every task with its id, partition, schedule, and state, the
// view used when selecting ids for toggle, delete, or edit.
func Table(s *store.Store, now time.Time) {
	all := s.All()
	if len(all) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println(" none")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("ID"), bold("Partition"), bold("When"), bold("Next"), bold("Task"))

	for _, placed := range all {
		t := placed.Task
		next := "-"
		if !t.Completed {
			if at := t.Next(now); !at.IsZero() {
				next = schedule.CountdownUntil(at, now)
			}
		}
		tbl.AddRow(t.ID, string(placed.Partition), whenText(placed), next, fmt.Sprintf("%s %s", StatusMark(t), t.Content))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func whenText(placed store.Placed) string {
	t := placed.Task
	if t.Type != "" {
		return RecurrenceLabel(t)
	}
	at := t.ScheduledAt.Local()
	return fmt.Sprintf("%d-%02d-%02d %s", at.Year(), int(at.Month()), at.Day(), ClockText(t))
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}
