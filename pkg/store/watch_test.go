package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/remind/pkg/parse"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string   { return t.path }
func (t testConfig) NtfyTopic() string  { return "" }
func (t testConfig) AlarmSound() string { return "" }

func TestPersistenceWatchEmitsPartitionChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Open(testConfig{path: base})
	if err != nil {
		t.Fatalf("open persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe to directories before saving.
	time.Sleep(50 * time.Millisecond)

	s := New()
	s.Add(parse.Record{Content: "hello", Date: time.Now().Add(time.Hour)}, time.Now())
	if err := p.Save(s); err != nil {
		t.Fatalf("save store: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventStoreInvalidated {
				return
			}
			if evt.Type == EventPartitionChanged {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for a change event")
		}
	}
}
