package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Persistence saves and loads the task store snapshot. Load never fails: a
// missing or unreadable snapshot means an empty store, so a corrupt disk
// state degrades to a fresh start instead of blocking startup.
type Persistence interface {
	Load() *Store
	Save(s *Store) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Open creates a Persistence backed by diskv using the provided config.
func Open(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// Each partition is one diskv key under the tasks directory, so a snapshot
// is six small JSON documents instead of one growing blob.
const sectionDir = "tasks"

func sectionKey(p Partition) string {
	return sectionDir + "/" + string(p)
}

func (p *persistence) Load() *Store {
	var snap Snapshot
	p.readSection(Countdown, &snap.Countdown)
	p.readSection(Dated, &snap.Dated)
	p.readSection(Daily, &snap.Recurring.Daily)
	p.readSection(Weekly, &snap.Recurring.Weekly)
	p.readSection(Monthly, &snap.Recurring.Monthly)
	p.readSection(Yearly, &snap.Recurring.Yearly)
	return FromSnapshot(snap)
}

// readSection fills target from one partition's document. Any read or decode
// fault leaves the target empty; decode faults are reported but not fatal.
func (p *persistence) readSection(part Partition, target any) {
	val, err := p.d.Read(sectionKey(part))
	if err != nil {
		return
	}
	if len(val) == 0 {
		return
	}
	if err := json.Unmarshal(val, target); err != nil {
		fmt.Fprintf(os.Stderr, "store: %s: %s\n", sectionKey(part), err)
	}
}

func (p *persistence) Save(s *Store) error {
	snap := s.Snapshot()
	sections := []struct {
		part  Partition
		value any
	}{
		{Countdown, snap.Countdown},
		{Dated, snap.Dated},
		{Daily, snap.Recurring.Daily},
		{Weekly, snap.Recurring.Weekly},
		{Monthly, snap.Recurring.Monthly},
		{Yearly, snap.Recurring.Yearly},
	}
	for _, sec := range sections {
		data, err := json.Marshal(sec.value)
		if err != nil {
			return fmt.Errorf("store: marshal %s: %w", sec.part, err)
		}
		if err := p.d.Write(sectionKey(sec.part), data); err != nil {
			return fmt.Errorf("store: write %s: %w", sec.part, err)
		}
	}
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
}
