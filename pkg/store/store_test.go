package store

import (
	"encoding/json"
	"testing"
	"time"

	"tableflip.dev/remind/pkg/parse"
	"tableflip.dev/remind/pkg/task"
)

var now = time.Date(2026, time.March, 11, 10, 0, 0, 0, time.Local)

func TestClassify(t *testing.T) {
	future := now.Add(2 * time.Hour)
	past := now.Add(-2 * time.Hour)
	end := future.Add(30 * time.Minute)

	cases := []struct {
		name string
		r    parse.Record
		want Partition
	}{
		{"repeat wins over countdown cue", parse.Record{IsRepeat: true, RepeatType: task.RepeatWeekly, IsCountdown: true, Date: future}, Weekly},
		{"daily repeat", parse.Record{IsRepeat: true, RepeatType: task.RepeatDaily, Date: future}, Daily},
		{"explicit countdown", parse.Record{IsCountdown: true, Date: past}, Countdown},
		{"future without end", parse.Record{Date: future}, Countdown},
		{"future with end", parse.Record{Date: future, EndDate: &end}, Dated},
		{"past date", parse.Record{Date: past}, Dated},
	}
	for _, c := range cases {
		if got := Classify(c.r, now); got != c.want {
			t.Fatalf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestAddDerivesRecurrenceAnchor(t *testing.T) {
	s := New()
	monday := time.Date(2026, time.March, 9, 9, 0, 0, 0, time.Local)
	tk, p := s.Add(parse.Record{
		Content: "晨会", Date: monday,
		IsRepeat: true, RepeatType: task.RepeatWeekly,
	}, now)
	if p != Weekly {
		t.Fatalf("partition: got %s, want %s", p, Weekly)
	}
	if tk.Weekday != 1 {
		t.Fatalf("weekday anchor: got %d, want 1", tk.Weekday)
	}
}

func TestDatedBucketsAndRemoval(t *testing.T) {
	s := New()
	a, pa := s.Add(parse.Record{Content: "a", Date: now.AddDate(0, -1, 0).Add(-time.Hour)}, now)
	b, pb := s.Add(parse.Record{Content: "b", Date: now.Add(-time.Hour)}, now)
	if pa != Dated || pb != Dated {
		t.Fatalf("fixture not dated: got %s and %s", pa, pb)
	}

	groups := s.DatedGroups()
	if len(groups) != 2 {
		t.Fatalf("got %d day groups, want 2", len(groups))
	}
	if groups[0].Tasks[0] != a || groups[1].Tasks[0] != b {
		t.Fatalf("groups out of calendar order")
	}

	if _, ok := s.Remove(a.ID); !ok {
		t.Fatalf("remove %s failed", a.ID)
	}
	if s.Len() != 1 {
		t.Fatalf("len after removal: got %d, want 1", s.Len())
	}
	if len(s.dated) != 1 {
		t.Fatalf("emptied day bucket was not pruned: %v", s.dated)
	}
	if _, ok := s.Remove(a.ID); ok {
		t.Fatalf("second removal of %s should fail", a.ID)
	}
}

func TestAllEncounterOrder(t *testing.T) {
	s := New()
	cd, _ := s.Add(parse.Record{Content: "cd", Date: now.Add(time.Hour)}, now)
	dl, _ := s.Add(parse.Record{Content: "dl", Date: now, IsRepeat: true, RepeatType: task.RepeatDaily}, now)
	wk, _ := s.Add(parse.Record{Content: "wk", Date: now, IsRepeat: true, RepeatType: task.RepeatWeekly}, now)
	dt, _ := s.Add(parse.Record{Content: "dt", Date: now.Add(-time.Hour)}, now)

	want := []*task.Task{cd, dt, wk, dl}
	all := s.All()
	if len(all) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(all), len(want))
	}
	for i, placed := range all {
		if placed.Task != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, placed.Task.Content, want[i].Content)
		}
	}
}

func TestCountdownTasksSortedBySchedule(t *testing.T) {
	s := New()
	later, _ := s.Add(parse.Record{Content: "later", Date: now.Add(3 * time.Hour)}, now)
	sooner, _ := s.Add(parse.Record{Content: "sooner", Date: now.Add(time.Hour)}, now)

	tasks := s.CountdownTasks()
	if tasks[0] != sooner || tasks[1] != later {
		t.Fatalf("countdown view not sorted by schedule: %q first", tasks[0].Content)
	}
	// The underlying partition keeps insertion order.
	if s.countdown[0] != later {
		t.Fatalf("sort must not reorder the partition itself")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := New()
	s.Add(parse.Record{Content: "cd", Date: now.Add(time.Hour), IsCountdown: true}, now)
	s.Add(parse.Record{Content: "dt", Date: now.Add(-time.Hour)}, now)
	s.Add(parse.Record{Content: "wk", Date: now, IsRepeat: true, RepeatType: task.RepeatWeekly}, now)

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	restored := FromSnapshot(snap)
	if restored.Len() != s.Len() {
		t.Fatalf("restored %d tasks, want %d", restored.Len(), s.Len())
	}
	for i, placed := range restored.All() {
		orig := s.All()[i]
		if placed.Task.ID != orig.Task.ID || placed.Partition != orig.Partition {
			t.Fatalf("position %d: got %q in %s, want %q in %s",
				i, placed.Task.ID, placed.Partition, orig.Task.ID, orig.Partition)
		}
	}
}

func TestFromSnapshotToleratesMissingSections(t *testing.T) {
	var snap Snapshot
	if err := json.Unmarshal([]byte(`{"countdownTasks":null}`), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s := FromSnapshot(snap); !s.Empty() {
		t.Fatalf("expected an empty store, got %d tasks", s.Len())
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	base := t.TempDir()
	p, err := Open(testConfig{path: base})
	if err != nil {
		t.Fatalf("open persistence: %v", err)
	}

	s := New()
	tk, _ := s.Add(parse.Record{Content: "cd", Date: now.Add(time.Hour)}, now)
	if err := p.Save(s); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := p.Load()
	if loaded.Len() != 1 {
		t.Fatalf("loaded %d tasks, want 1", loaded.Len())
	}
	got, part, ok := loaded.Find(tk.ID)
	if !ok || part != Countdown {
		t.Fatalf("task %s not found in countdown partition", tk.ID)
	}
	if !got.ScheduledAt.Equal(tk.ScheduledAt.Time) {
		t.Fatalf("scheduled instant drifted: got %v, want %v", got.ScheduledAt, tk.ScheduledAt)
	}
}

func TestPersistenceLoadFaultMeansEmptyStore(t *testing.T) {
	base := t.TempDir()
	p, err := Open(testConfig{path: base})
	if err != nil {
		t.Fatalf("open persistence: %v", err)
	}
	if s := p.Load(); !s.Empty() {
		t.Fatalf("expected an empty store from a fresh path, got %d tasks", s.Len())
	}
}
