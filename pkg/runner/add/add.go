package add

import (
	"context"
	"time"

	"tableflip.dev/remind/pkg/app"
	"tableflip.dev/remind/pkg/printers"
	"tableflip.dev/remind/pkg/store"
	"tableflip.dev/remind/pkg/task"
)

type Add struct {
	Raw     string
	ShowID  bool
	Service *app.Service
}

// Do parses the raw input and files the resulting tasks, then prints each
// affected partition.
func (a *Add) Do(ctx context.Context) error {
	added, err := a.Service.AddTasks(ctx, a.Raw)
	if err != nil {
		return err
	}

	byPartition := make(map[store.Partition][]*task.Task)
	for _, placed := range added {
		byPartition[placed.Partition] = append(byPartition[placed.Partition], placed.Task)
	}

	pp := printers.PrettyPrint{ShowID: a.ShowID}
	for _, p := range store.Partitions {
		tasks, ok := byPartition[p]
		if !ok {
			continue
		}
		pp.TitleWithCount(string(p), len(tasks))
		switch p {
		case store.Countdown:
			pp.Countdown(tasks, time.Now())
		case store.Dated:
			pp.Dated(groupsFor(a.Service.Tasks, tasks))
		default:
			pp.Recurring(tasks)
		}
	}
	return nil
}

// groupsFor filters the dated view down to the days the added tasks landed
// on.
func groupsFor(s *store.Store, added []*task.Task) []store.DayGroup {
	ids := make(map[string]bool, len(added))
	for _, t := range added {
		ids[t.ID] = true
	}
	var groups []store.DayGroup
	for _, g := range s.DatedGroups() {
		var hit []*task.Task
		for _, t := range g.Tasks {
			if ids[t.ID] {
				hit = append(hit, t)
			}
		}
		if len(hit) > 0 {
			groups = append(groups, store.DayGroup{Day: g.Day, Tasks: hit})
		}
	}
	return groups
}
