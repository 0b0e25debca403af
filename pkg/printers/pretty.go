// Package printers renders the task partitions and the upcoming-task banner
// for the terminal.
package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/remind/pkg/schedule"
	"tableflip.dev/remind/pkg/store"
	"tableflip.dev/remind/pkg/task"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69-f8b9-4dca-8f2e-171dff69f8b9  "))

	weekdayZH = [...]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" task")
	default:
		_, _ = c.Println(" tasks")
	}
}

// UpcomingBanner prints the single nearest task with its live countdown.
func (pp *PrettyPrint) UpcomingBanner(next schedule.Next, now time.Time) {
	b := color.New(color.Bold, color.FgHiCyan)
	_, _ = b.Println(schedule.Banner(next.Task.Content, next.At, now))
}

// NoUpcoming prints the placeholder when nothing is ahead.
func (pp *PrettyPrint) NoUpcoming() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Println("没有即将到来的任务")
}

// Countdown prints the countdown partition sorted by schedule, each row with
// its remaining time.
func (pp *PrettyPrint) Countdown(tasks []*task.Task, now time.Time) {
	if pp.none(tasks) {
		return
	}
	t := color.New()
	r := color.New(color.FgHiYellow)

	for _, tk := range tasks {
		pp.id(tk)
		_, _ = t.Printf("%s %s ", StatusMark(tk), tk.Content)
		_, _ = r.Printf("%s\n", schedule.CountdownUntil(tk.ScheduledAt.Time, now))
	}
	_, _ = t.Println("")
}

// Dated prints the dated partition grouped by calendar day.
func (pp *PrettyPrint) Dated(groups []store.DayGroup) {
	if len(groups) == 0 {
		pp.none(nil)
		return
	}
	h := color.New(color.Bold)
	t := color.New()

	for _, g := range groups {
		if pp.ShowID {
			_, _ = h.Print(spacing)
		}
		_, _ = h.Println(DayHeading(g.Day))
		for _, tk := range g.Tasks {
			pp.id(tk)
			_, _ = t.Printf("%s %s %s\n", StatusMark(tk), ClockText(tk), tk.Content)
		}
	}
	_, _ = t.Println("")
}

// Recurring prints one recurring partition, each row labeled with its
// recurrence anchor.
func (pp *PrettyPrint) Recurring(tasks []*task.Task) {
	if pp.none(tasks) {
		return
	}
	t := color.New()
	l := color.New(color.FgHiGreen)

	for _, tk := range tasks {
		pp.id(tk)
		_, _ = t.Printf("%s ", StatusMark(tk))
		_, _ = l.Printf("%s ", RecurrenceLabel(tk))
		_, _ = t.Printf("%s\n", tk.Content)
	}
	_, _ = t.Println("")
}

// Today prints the recurring tasks due on the current calendar day.
func (pp *PrettyPrint) Today(s *store.Store, now time.Time) {
	var due []*task.Task
	for _, p := range []store.Partition{store.Daily, store.Weekly, store.Monthly, store.Yearly} {
		for _, tk := range s.RecurringTasks(p) {
			if tk.DueToday(now) {
				due = append(due, tk)
			}
		}
	}
	pp.TitleWithCount("今日任务", len(due))
	pp.Recurring(due)
}

// RecurrenceLabel names a recurring task's cycle and anchor.
func RecurrenceLabel(t *task.Task) string {
	at := t.ScheduledAt.Local()
	clock := fmt.Sprintf("%02d:%02d", at.Hour(), at.Minute())
	switch t.Type {
	case task.RepeatDaily:
		return "每天 " + clock
	case task.RepeatWeekly:
		return fmt.Sprintf("每%s %s", weekdayZH[t.Weekday], clock)
	case task.RepeatMonthly:
		return fmt.Sprintf("每月%d日 %s", t.MonthDay, clock)
	case task.RepeatYearly:
		return fmt.Sprintf("每年%d月%d日 %s", t.YearMonth+1, t.YearDay, clock)
	}
	return clock
}

// ClockText renders a task's time of day, with the end of a range when one
// was given.
func ClockText(t *task.Task) string {
	at := t.ScheduledAt.Local()
	s := fmt.Sprintf("%02d:%02d", at.Hour(), at.Minute())
	if t.EndAt != nil {
		end := t.EndAt.Local()
		s += fmt.Sprintf("-%02d:%02d", end.Hour(), end.Minute())
	}
	return s
}

// DayHeading renders a dated group's calendar day with its weekday label.
func DayHeading(day time.Time) string {
	return fmt.Sprintf("%d年%d月%d日 %s", day.Year(), int(day.Month()), day.Day(), weekdayZH[int(day.Weekday())])
}

func StatusMark(t *task.Task) string {
	if t.Completed {
		return color.New(color.FgGreen).Sprint("✓")
	}
	return "○"
}

func (pp *PrettyPrint) id(t *task.Task) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	_, _ = y.Print(t.ID)
	if pad := len(spacing) - len(t.ID); pad > 0 {
		_, _ = y.Print(strings.Repeat(" ", pad))
	}
}

func (pp *PrettyPrint) none(tasks []*task.Task) bool {
	if len(tasks) > 0 {
		return false
	}
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Print(spacing)
	}
	_, _ = f.Print(" none\n\n")
	return true
}
