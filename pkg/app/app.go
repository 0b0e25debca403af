// Package app provides the high-level task operations shared by the CLI
// commands and the watch view: batch add, completion toggling, delete and
// edit, upcoming-task selection, and the periodic sweeps.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"tableflip.dev/remind/pkg/notify"
	"tableflip.dev/remind/pkg/parse"
	"tableflip.dev/remind/pkg/schedule"
	"tableflip.dev/remind/pkg/sound"
	"tableflip.dev/remind/pkg/store"
	"tableflip.dev/remind/pkg/task"
)

// AlarmPlayer plays the expiry alarm. sound.Alarm is the usual
// implementation.
type AlarmPlayer interface {
	Play(ctx context.Context) error
}

// Service wraps the task store and its collaborators so UIs and CLIs share
// one mutation path. Every mutation saves the whole store before returning.
type Service struct {
	Persistence store.Persistence
	Tasks       *store.Store
	Notifier    notify.Service
	Alarm       AlarmPlayer

	// Now is the clock; nil means time.Now. Tests pin it.
	Now func() time.Time
}

var _ AlarmPlayer = sound.Alarm{}

var ErrNotFound = errors.New("app: task not found")

// Load populates the service's store from persistence. A read fault means an
// empty store, never a failed start.
func (s *Service) Load() error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	s.Tasks = s.Persistence.Load()
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AddTasks parses raw input and files every resulting task. The batch is all
// or nothing: when any phrase fails to parse, no task is added and the error
// names the offending phrases.
func (s *Service) AddTasks(ctx context.Context, raw string) ([]store.Placed, error) {
	now := s.now()
	results := parse.Parse(raw, now)
	if len(results.Failed) > 0 {
		phrases := make([]string, 0, len(results.Failed))
		for _, f := range results.Failed {
			phrases = append(phrases, fmt.Sprintf("%q: %v", f.Text, f.Err))
		}
		return nil, fmt.Errorf("app: %d of %d phrases unparseable, nothing added: %s",
			len(results.Failed), len(results.Failed)+len(results.Success), strings.Join(phrases, "; "))
	}
	if len(results.Success) == 0 {
		return nil, errors.New("app: nothing to add")
	}

	added := make([]store.Placed, 0, len(results.Success))
	for _, r := range results.Success {
		t, p := s.Tasks.Add(r, now)
		added = append(added, store.Placed{Task: t, Partition: p})
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return added, nil
}

// ToggleCompletion flips a task's completed state.
func (s *Service) ToggleCompletion(ctx context.Context, id string) (*task.Task, error) {
	t, _, ok := s.Tasks.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t.Toggle(s.now())
	if err := s.save(); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTasks removes the given ids and reports the removed tasks. Unknown
// ids fail the whole call before anything is deleted.
func (s *Service) DeleteTasks(ctx context.Context, ids []string) ([]*task.Task, error) {
	for _, id := range ids {
		if _, _, ok := s.Tasks.Find(id); !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
	}
	removed := make([]*task.Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := s.Tasks.Remove(id); ok {
			removed = append(removed, t)
		}
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return removed, nil
}

// EditTasks serializes the selected tasks back into parseable text, deletes
// the originals, and returns the text as prefill for a corrected add.
func (s *Service) EditTasks(ctx context.Context, ids []string) (string, error) {
	selected := make([]*task.Task, 0, len(ids))
	for _, id := range ids {
		t, _, ok := s.Tasks.Find(id)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		selected = append(selected, t)
	}
	prefill := parse.FormatTasks(selected)
	for _, id := range ids {
		s.Tasks.Remove(id)
	}
	if err := s.save(); err != nil {
		return "", err
	}
	return prefill, nil
}

// Upcoming selects the next task to fire across all partitions.
func (s *Service) Upcoming(ctx context.Context) (schedule.Next, bool) {
	return schedule.Upcoming(s.Tasks, s.now())
}

// Expire sweeps overdue countdown tasks out of the store and raises the
// notification and alarm for them. Notification and audio failures are
// reported to stderr but never fail the sweep.
func (s *Service) Expire(ctx context.Context) ([]*task.Task, error) {
	expired := schedule.SweepExpired(s.Tasks, s.now())
	if len(expired) == 0 {
		return nil, nil
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	if s.Notifier != nil {
		if err := s.Notifier.NotifyExpired(ctx, expired); err != nil {
			fmt.Fprintf(os.Stderr, "app: notify: %v\n", err)
		}
	}
	if s.Alarm != nil {
		if err := s.Alarm.Play(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "app: alarm: %v\n", err)
		}
	}
	return expired, nil
}

// ResetRecurring flips completed recurring tasks back to pending once their
// next period begins.
func (s *Service) ResetRecurring(ctx context.Context) ([]*task.Task, error) {
	reset := schedule.SweepResets(s.Tasks, s.now())
	if len(reset) == 0 {
		return nil, nil
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return reset, nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}

// Reload replaces the in-memory store with the persisted state, used when a
// watch event reports an external change.
func (s *Service) Reload() {
	if s.Persistence != nil {
		s.Tasks = s.Persistence.Load()
	}
}

func (s *Service) save() error {
	if s.Persistence == nil {
		return nil
	}
	return s.Persistence.Save(s.Tasks)
}
