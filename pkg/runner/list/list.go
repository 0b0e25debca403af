package list

import (
	"context"
	"time"

	"tableflip.dev/remind/pkg/app"
	"tableflip.dev/remind/pkg/printers"
	"tableflip.dev/remind/pkg/store"
)

// Section selects which slice of the store to print. Empty means everything.
type Section string

const (
	All       Section = ""
	Countdown Section = "countdown"
	Dated     Section = "dated"
	Recurring Section = "recurring"
	Today     Section = "today"
)

type List struct {
	Section Section
	ShowID  bool
	Wide    bool
	Service *app.Service
}

func (l *List) Do(ctx context.Context) error {
	now := time.Now()
	s := l.Service.Tasks

	if l.Wide {
		printers.Table(s, now)
		return nil
	}

	pp := printers.PrettyPrint{ShowID: l.ShowID}
	switch l.Section {
	case Countdown:
		l.countdown(&pp, s, now)
	case Dated:
		l.dated(&pp, s)
	case Recurring:
		l.recurring(&pp, s)
	case Today:
		pp.Today(s, now)
	default:
		l.countdown(&pp, s, now)
		l.dated(&pp, s)
		l.recurring(&pp, s)
	}
	return nil
}

func (l *List) countdown(pp *printers.PrettyPrint, s *store.Store, now time.Time) {
	tasks := s.CountdownTasks()
	pp.TitleWithCount("倒计时", len(tasks))
	pp.Countdown(tasks, now)
}

func (l *List) dated(pp *printers.PrettyPrint, s *store.Store) {
	groups := s.DatedGroups()
	count := 0
	for _, g := range groups {
		count += len(g.Tasks)
	}
	pp.TitleWithCount("日程", count)
	pp.Dated(groups)
}

func (l *List) recurring(pp *printers.PrettyPrint, s *store.Store) {
	labels := []struct {
		p     store.Partition
		title string
	}{
		{store.Daily, "每天"},
		{store.Weekly, "每周"},
		{store.Monthly, "每月"},
		{store.Yearly, "每年"},
	}
	for _, l := range labels {
		tasks := s.RecurringTasks(l.p)
		if len(tasks) == 0 {
			continue
		}
		pp.TitleWithCount(l.title, len(tasks))
		pp.Recurring(tasks)
	}
}
