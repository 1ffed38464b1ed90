package nirwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_FSNotify(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}
	defer w.Close()

	dir := t.TempDir()
	if err := w.Add(dir); err != nil {
		t.Fatal(err)
	}

	go func() {
		_ = os.WriteFile(filepath.Join(dir, "f.json"), []byte("{}"), 0o644)
	}()

	select {
	case ev := <-w.Events():
		if ev.Path == "" {
			t.Fatal("empty path")
		}

		if ev.Op&(OpCreate|OpWrite) == 0 {
			t.Fatalf("Op = %v, want OpCreate or OpWrite set", ev.Op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for fsnotify event")
	}
}

// TestWatcher_ChmodOnlyIsFiltered exercises loop()'s op == 0 branch: a
// chmod-only change never reaches Events(), since it maps to no Op bit.
func TestWatcher_ChmodOnlyIsFiltered(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}
	defer w.Close()

	dir := t.TempDir()
	p := filepath.Join(dir, "f.json")
	if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := w.Add(dir); err != nil {
		t.Fatal(err)
	}

	// Drain the create event from the WriteFile above, if fsnotify
	// surfaced it before Add (platform-dependent either way).
	drain := time.After(200 * time.Millisecond)

loop:
	for {
		select {
		case <-w.Events():
		case <-drain:
			break loop
		}
	}

	go func() {
		_ = os.Chmod(p, 0o600)
	}()

	select {
	case ev := <-w.Events():
		t.Fatalf("want no event for a chmod-only change, got %+v", ev)
	case <-time.After(500 * time.Millisecond):
		// expected: chmod never reaches Events()
	}
}

func TestWatcher_CloseStopsLoop(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}

	dir := t.TempDir()
	if err := w.Add(dir); err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatal("Events() produced a value after Close()")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for Events() to close after Close()")
	}
}

func TestWatcher_AddMissingDirErrors(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("Add on a missing directory: want error, got nil")
	}
}
