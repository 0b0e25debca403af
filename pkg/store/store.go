// Package store holds the in-memory task partitions, the classifier that
// files parsed records into them, and the diskv-backed persistence that
// snapshots the whole set between runs.
package store

import (
	"sort"
	"time"

	"tableflip.dev/remind/pkg/parse"
	"tableflip.dev/remind/pkg/task"
)

// Partition names one of the store's task buckets. The values double as
// persistence key segments.
type Partition string

const (
	Countdown Partition = "countdown"
	Dated     Partition = "dated"
	Daily     Partition = "daily"
	Weekly    Partition = "weekly"
	Monthly   Partition = "monthly"
	Yearly    Partition = "yearly"
)

// Partitions lists every partition in encounter order. Upcoming-task ties
// between partitions resolve in this order.
var Partitions = []Partition{Countdown, Dated, Weekly, Monthly, Yearly, Daily}

// DatedIndex buckets one-off dated tasks by year, month (1-12), and calendar
// day. Buckets are created on demand and pruned when their last task leaves.
type DatedIndex map[int]map[int]map[int][]*task.Task

// Store is the process-wide task set. All mutation happens on a single
// logical goroutine (the CLI invocation or the watch program loop), so the
// store carries no lock; every mutating operation leaves it structurally
// valid before returning.
type Store struct {
	countdown []*task.Task
	dated     DatedIndex

	daily   []*task.Task
	weekly  []*task.Task
	monthly []*task.Task
	yearly  []*task.Task
}

func New() *Store {
	return &Store{dated: DatedIndex{}}
}

// Classify decides which partition a parsed record belongs to:
//
//  1. a recurrence cue wins over everything else
//  2. explicit countdown phrasing, or a future date with no end, is a countdown
//  3. everything else is a plain dated task
func Classify(r parse.Record, now time.Time) Partition {
	switch {
	case r.IsRepeat:
		return recurringPartition(r.RepeatType)
	case r.IsCountdown || (r.Date.After(now) && r.EndDate == nil):
		return Countdown
	default:
		return Dated
	}
}

func recurringPartition(t task.RepeatType) Partition {
	switch t {
	case task.RepeatWeekly:
		return Weekly
	case task.RepeatMonthly:
		return Monthly
	case task.RepeatYearly:
		return Yearly
	default:
		return Daily
	}
}

// partitionOf recovers a task's partition from its shape alone, used when
// refiling snapshot sections whose contents disagree with their label.
func partitionOf(t *task.Task) Partition {
	if t.Type != task.RepeatNone {
		return recurringPartition(t.Type)
	}
	return Dated
}

// Add classifies a parsed record, mints the task, and files it. Recurring
// tasks derive their anchor from the record's date.
func (s *Store) Add(r parse.Record, now time.Time) (*task.Task, Partition) {
	t := task.New(r.Content, r.Date, now)
	if r.EndDate != nil {
		end := task.Timestamp{Time: *r.EndDate}
		t.EndAt = &end
	}
	t.Duration = r.Duration
	if len(r.Tags) > 0 {
		t.Tags = r.Tags
	}
	if r.IsRepeat {
		t.Recurrence = task.Anchored(r.RepeatType, r.Date)
	}

	p := Classify(r, now)
	s.File(p, t)
	return t, p
}

// File appends a task to a partition. Dated tasks land in their calendar
// bucket; everything else keeps insertion order in a flat sequence.
func (s *Store) File(p Partition, t *task.Task) {
	switch p {
	case Countdown:
		s.countdown = append(s.countdown, t)
	case Dated:
		s.dated.add(t)
	case Daily:
		s.daily = append(s.daily, t)
	case Weekly:
		s.weekly = append(s.weekly, t)
	case Monthly:
		s.monthly = append(s.monthly, t)
	case Yearly:
		s.yearly = append(s.yearly, t)
	}
}

// Placed pairs a task with the partition it is filed under.
type Placed struct {
	Task      *task.Task
	Partition Partition
}

// All lists every task in encounter order: countdown, dated (by calendar
// bucket), then weekly, monthly, yearly, daily.
func (s *Store) All() []Placed {
	all := make([]Placed, 0, s.Len())
	for _, t := range s.countdown {
		all = append(all, Placed{t, Countdown})
	}
	s.dated.walk(func(t *task.Task) {
		all = append(all, Placed{t, Dated})
	})
	for _, t := range s.weekly {
		all = append(all, Placed{t, Weekly})
	}
	for _, t := range s.monthly {
		all = append(all, Placed{t, Monthly})
	}
	for _, t := range s.yearly {
		all = append(all, Placed{t, Yearly})
	}
	for _, t := range s.daily {
		all = append(all, Placed{t, Daily})
	}
	return all
}

// CountdownTasks returns the countdown partition sorted by scheduled instant,
// the order the countdown view renders in.
func (s *Store) CountdownTasks() []*task.Task {
	tasks := append([]*task.Task(nil), s.countdown...)
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].ScheduledAt.Before(tasks[j].ScheduledAt.Time)
	})
	return tasks
}

// DayGroup is one calendar day's worth of dated tasks.
type DayGroup struct {
	Day   time.Time
	Tasks []*task.Task
}

// DatedGroups returns the dated partition as day buckets in ascending
// calendar order, tasks within a day in insertion order.
func (s *Store) DatedGroups() []DayGroup {
	groups := make([]DayGroup, 0, len(s.dated))
	for _, year := range sortedKeys(s.dated) {
		months := s.dated[year]
		for _, month := range sortedKeys(months) {
			days := months[month]
			for _, day := range sortedKeys(days) {
				groups = append(groups, DayGroup{
					Day:   time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local),
					Tasks: days[day],
				})
			}
		}
	}
	return groups
}

// RecurringTasks returns one recurring partition in insertion order.
func (s *Store) RecurringTasks(p Partition) []*task.Task {
	switch p {
	case Daily:
		return s.daily
	case Weekly:
		return s.weekly
	case Monthly:
		return s.monthly
	case Yearly:
		return s.yearly
	}
	return nil
}

// Find locates a task by id across all partitions.
func (s *Store) Find(id string) (*task.Task, Partition, bool) {
	for _, placed := range s.All() {
		if placed.Task.ID == id {
			return placed.Task, placed.Partition, true
		}
	}
	return nil, "", false
}

// Remove deletes a task by id, pruning emptied dated buckets. It reports the
// removed task, or false when the id is unknown.
func (s *Store) Remove(id string) (*task.Task, bool) {
	if t, ok := removeByID(&s.countdown, id); ok {
		return t, true
	}
	if t, ok := s.dated.remove(id); ok {
		return t, true
	}
	for _, list := range []*[]*task.Task{&s.daily, &s.weekly, &s.monthly, &s.yearly} {
		if t, ok := removeByID(list, id); ok {
			return t, true
		}
	}
	return nil, false
}

func (s *Store) Len() int {
	n := len(s.countdown) + len(s.daily) + len(s.weekly) + len(s.monthly) + len(s.yearly)
	s.dated.walk(func(*task.Task) { n++ })
	return n
}

func (s *Store) Empty() bool { return s.Len() == 0 }

func removeByID(list *[]*task.Task, id string) (*task.Task, bool) {
	for i, t := range *list {
		if t.ID == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return t, true
		}
	}
	return nil, false
}

func (d DatedIndex) add(t *task.Task) {
	at := t.ScheduledAt.Local()
	year, month, day := at.Year(), int(at.Month()), at.Day()
	if d[year] == nil {
		d[year] = map[int]map[int][]*task.Task{}
	}
	if d[year][month] == nil {
		d[year][month] = map[int][]*task.Task{}
	}
	d[year][month][day] = append(d[year][month][day], t)
}

func (d DatedIndex) remove(id string) (*task.Task, bool) {
	for year, months := range d {
		for month, days := range months {
			for day, tasks := range days {
				for i, t := range tasks {
					if t.ID != id {
						continue
					}
					tasks = append(tasks[:i], tasks[i+1:]...)
					if len(tasks) == 0 {
						delete(days, day)
					} else {
						days[day] = tasks
					}
					if len(days) == 0 {
						delete(months, month)
					}
					if len(months) == 0 {
						delete(d, year)
					}
					return t, true
				}
			}
		}
	}
	return nil, false
}

// walk visits dated tasks in ascending calendar order, insertion order
// within a day.
func (d DatedIndex) walk(visit func(*task.Task)) {
	for _, year := range sortedKeys(d) {
		months := d[year]
		for _, month := range sortedKeys(months) {
			days := months[month]
			for _, day := range sortedKeys(days) {
				for _, t := range days[day] {
					visit(t)
				}
			}
		}
	}
}

func sortedKeys[M ~map[int]V, V any](m M) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
