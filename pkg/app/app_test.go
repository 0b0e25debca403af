package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"tableflip.dev/remind/pkg/store"
	"tableflip.dev/remind/pkg/task"
)

var now = time.Date(2026, time.March, 11, 10, 0, 0, 0, time.Local)

type recordingNotifier struct {
	expired [][]*task.Task
}

func (r *recordingNotifier) NotifyExpired(_ context.Context, expired []*task.Task) error {
	r.expired = append(r.expired, expired)
	return nil
}

func (r *recordingNotifier) TestNotification(context.Context) error { return nil }

func newService() *Service {
	return &Service{
		Tasks: store.New(),
		Now:   func() time.Time { return now },
	}
}

func TestAddTasksBatch(t *testing.T) {
	s := newService()
	added, err := s.AddTasks(context.Background(), "下午3点开会, 每天8:00喝水")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(added) != 2 {
		t.Fatalf("added %d tasks, want 2", len(added))
	}
	if s.Tasks.Len() != 2 {
		t.Fatalf("store holds %d tasks, want 2", s.Tasks.Len())
	}
}

func TestAddTasksNothingToAdd(t *testing.T) {
	s := newService()
	if _, err := s.AddTasks(context.Background(), " ,; "); err == nil {
		t.Fatalf("expected an error for empty input")
	}
}

func TestToggleCompletion(t *testing.T) {
	s := newService()
	added, err := s.AddTasks(context.Background(), "每天8:00喝水")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	id := added[0].Task.ID

	got, err := s.ToggleCompletion(context.Background(), id)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !got.Completed || got.CompletedAt == nil {
		t.Fatalf("task should be completed with a stamp, got %+v", got)
	}

	if _, err := s.ToggleCompletion(context.Background(), "missing"); err == nil {
		t.Fatalf("expected an error for an unknown id")
	}
}

func TestDeleteTasksAllOrNothing(t *testing.T) {
	s := newService()
	added, _ := s.AddTasks(context.Background(), "下午3点开会")
	id := added[0].Task.ID

	if _, err := s.DeleteTasks(context.Background(), []string{id, "missing"}); err == nil {
		t.Fatalf("expected an error when any id is unknown")
	}
	if s.Tasks.Len() != 1 {
		t.Fatalf("failed delete must not remove anything, %d tasks left", s.Tasks.Len())
	}

	removed, err := s.DeleteTasks(context.Background(), []string{id})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(removed) != 1 || s.Tasks.Len() != 0 {
		t.Fatalf("delete removed %d, store holds %d", len(removed), s.Tasks.Len())
	}
}

func TestEditTasksReturnsPrefillAndDeletes(t *testing.T) {
	s := newService()
	added, _ := s.AddTasks(context.Background(), "明天下午3点交报告")
	id := added[0].Task.ID

	prefill, err := s.EditTasks(context.Background(), []string{id})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(prefill, "交报告") || !strings.Contains(prefill, "15:00") {
		t.Fatalf("prefill lost details: %q", prefill)
	}
	if s.Tasks.Len() != 0 {
		t.Fatalf("edited originals should be deleted, %d left", s.Tasks.Len())
	}

	// The prefill re-adds cleanly.
	if _, err := s.AddTasks(context.Background(), prefill); err != nil {
		t.Fatalf("re-add prefill %q: %v", prefill, err)
	}
}

func TestExpireNotifiesBatch(t *testing.T) {
	s := newService()
	n := &recordingNotifier{}
	s.Notifier = n
	s.AddTasks(context.Background(), "30分钟后开会, 40分钟后跑步")

	// Nothing expires before the scheduled instants.
	expired, err := s.Expire(context.Background())
	if err != nil || len(expired) != 0 {
		t.Fatalf("early sweep: %v %v", expired, err)
	}

	s.Now = func() time.Time { return now.Add(time.Hour) }
	expired, err = s.Expire(context.Background())
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if len(expired) != 2 {
		t.Fatalf("expired %d tasks, want 2", len(expired))
	}
	if len(n.expired) != 1 || len(n.expired[0]) != 2 {
		t.Fatalf("notifier saw %v", n.expired)
	}
	if s.Tasks.Len() != 0 {
		t.Fatalf("expired tasks should leave the store, %d left", s.Tasks.Len())
	}
}

func TestResetRecurring(t *testing.T) {
	s := newService()
	added, _ := s.AddTasks(context.Background(), "每天8:00喝水")
	id := added[0].Task.ID
	if _, err := s.ToggleCompletion(context.Background(), id); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	s.Now = func() time.Time { return now.AddDate(0, 0, 1) }
	reset, err := s.ResetRecurring(context.Background())
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(reset) != 1 || reset[0].Completed {
		t.Fatalf("daily task should be pending again, got %v", reset)
	}
}
