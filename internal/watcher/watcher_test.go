package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestIsOrganFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"Burea.organ", true},
		{"dir/BUREA.ORGAN", true},
		{"Burea.organ.bak", false},
		{"notes.txt", false},
	}
	for _, tt := range tests {
		if got := IsOrganFile(tt.path); got != tt.want {
			t.Errorf("IsOrganFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestNewRequiresRootAndHandler(t *testing.T) {
	noop := func(context.Context, string) error { return nil }
	if _, err := New(Config{OnChange: noop}); err == nil {
		t.Error("expected error without root")
	}
	if _, err := New(Config{Root: t.TempDir()}); err == nil {
		t.Error("expected error without change handler")
	}
}

type recorder struct {
	mu      sync.Mutex
	changed []string
	removed []string
}

func (r *recorder) config(root string) Config {
	return Config{
		Root:          root,
		DebounceDelay: 20 * time.Millisecond,
		OnChange: func(_ context.Context, path string) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.changed = append(r.changed, path)
			return nil
		},
		OnRemove: func(path string) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.removed = append(r.removed, path)
			return nil
		},
	}
}

func TestDebounceCoalescesWrites(t *testing.T) {
	rec := &recorder{}
	w, err := New(rec.config(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(w.root, "a.organ")
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Create})
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	w.handleEvent(fsnotify.Event{Name: filepath.Join(w.root, "a.organ.bak"), Op: fsnotify.Write})

	ctx := context.Background()
	w.processPending(ctx, time.Now())
	if len(rec.changed) != 0 {
		t.Fatalf("changed before debounce delay: %v", rec.changed)
	}

	w.processPending(ctx, time.Now().Add(time.Second))
	if len(rec.changed) != 1 || rec.changed[0] != path {
		t.Errorf("changed = %v, want one call for a.organ", rec.changed)
	}
}

func TestRemoveDropsPending(t *testing.T) {
	rec := &recorder{}
	w, err := New(rec.config(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(w.root, "a.organ")
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	w.handleEvent(fsnotify.Event{Name: path, Op: fsnotify.Remove})
	w.processPending(context.Background(), time.Now().Add(time.Second))

	if len(rec.changed) != 0 {
		t.Errorf("removed file was still reported changed: %v", rec.changed)
	}
	if len(rec.removed) != 1 || rec.removed[0] != path {
		t.Errorf("removed = %v", rec.removed)
	}
}

func TestStartReportsFileWrites(t *testing.T) {
	root := t.TempDir()
	events := make(chan string, 4)
	cfg := Config{
		Root:          root,
		DebounceDelay: 20 * time.Millisecond,
		OnChange: func(_ context.Context, path string) error {
			events <- path
			return nil
		},
	}
	w, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(root, "new.organ")
	if err := os.WriteFile(path, []byte("[Organ]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-events:
		if filepath.Base(got) != "new.organ" {
			t.Errorf("changed = %s", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Start returned %v, want context.Canceled", err)
	}
}
