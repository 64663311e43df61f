package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/journey/pkg/journal"
)

func TestPersistenceWatchEmitsJournalChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(&Settings{Path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	created, err := p.Create(ctx, journal.Fields{Title: journal.Text("hello world")})
	if err != nil {
		t.Fatalf("create journal: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventJournalChanged {
				if evt.ID != created.ID {
					t.Fatalf("expected journal %q, got %q", created.ID, evt.ID)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for journal change event")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	p, err := Load(&Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}

func TestJournalForPath(t *testing.T) {
	p := &Disk{basePath: "/base"}
	tests := map[string]string{
		filepath.Join("/base", "journal", "abc-123"): "abc-123",
		filepath.Join("/base", "meta", "tombstones"): "",
		filepath.Join("/base", "stray"):              "",
		"/base":                                      "",
	}
	for path, want := range tests {
		if got := p.journalForPath(path); got != want {
			t.Errorf("journalForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestCollectDirsSkipsTempDir(t *testing.T) {
	base := t.TempDir()
	p, err := Load(&Settings{Path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if _, err := p.Create(context.Background(), journal.Fields{}); err != nil {
		t.Fatalf("create journal: %v", err)
	}

	dirs, err := collectDirs(base, p.tempDir())
	if err != nil {
		t.Fatalf("collect dirs: %v", err)
	}
	for _, dir := range dirs {
		if dir == p.tempDir() {
			t.Fatalf("temp dir %q should not be watched", dir)
		}
	}
	if len(dirs) != 2 {
		t.Fatalf("expected base and journal dirs, got %v", dirs)
	}
}

func TestInTempDir(t *testing.T) {
	p := &Disk{basePath: "/base"}
	tests := map[string]bool{
		filepath.Join("/base", ".tmp"):           true,
		filepath.Join("/base", ".tmp", "123456"): true,
		filepath.Join("/base", "journal", "abc"): false,
		filepath.Join("/base", ".tmpfile"):       false,
		"/base":                                  false,
	}
	for path, want := range tests {
		if got := p.inTempDir(path); got != want {
			t.Errorf("inTempDir(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(20 * time.Millisecond)
	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }

	th.Enqueue(Event{Type: EventJournalChanged, ID: "a"}, send)
	th.Enqueue(Event{Type: EventJournalChanged, ID: "a"}, send)
	th.Enqueue(Event{Type: EventJournalChanged, ID: "b"}, send)

	seen := map[string]bool{}
	deadline := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case ev := <-got:
			seen[ev.ID] = true
		case <-deadline:
			t.Fatalf("timed out, saw %v", seen)
		}
	}
	select {
	case ev := <-got:
		t.Fatalf("unexpected extra event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
