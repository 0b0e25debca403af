package parse

import (
	"fmt"
	"strings"

	"tableflip.dev/remind/pkg/task"
)

var repeatWords = map[task.RepeatType]string{
	task.RepeatDaily:   "每天",
	task.RepeatWeekly:  "每周",
	task.RepeatMonthly: "每月",
	task.RepeatYearly:  "每年",
}

// FormatTask serializes a task back into an input phrase the parser accepts,
// used when editing: the selected tasks become prefill text and the
// originals are deleted.
func FormatTask(t *task.Task) string {
	var b strings.Builder
	b.WriteString(t.Content)

	d := t.ScheduledAt.Local()
	fmt.Fprintf(&b, " %d-%d-%d %02d:%02d", d.Year(), int(d.Month()), d.Day(), d.Hour(), d.Minute())
	if t.EndAt != nil {
		e := t.EndAt.Local()
		fmt.Fprintf(&b, "-%02d:%02d", e.Hour(), e.Minute())
	}

	if word, ok := repeatWords[t.Type]; ok {
		b.WriteString(" ")
		b.WriteString(word)
	}

	if len(t.Tags) > 0 {
		b.WriteString(" #")
		b.WriteString(strings.Join(t.Tags, ","))
	}

	return b.String()
}

// FormatTasks joins serialized tasks with the splitter's phrase separator.
func FormatTasks(tasks []*task.Task) string {
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, FormatTask(t))
	}
	return strings.Join(lines, "; ")
}
