// Package nirwatch watches a directory of JSON-described Defn snapshot
// files and reports create/write/remove/rename events on them, for
// local tooling loops (cmd/nirc -watch re-serializes on each create or
// write). It only forwards fsnotify events; it never reads, inspects or
// validates IR itself.
package nirwatch

import (
	"github.com/fsnotify/fsnotify"
)

// Op mirrors the subset of filesystem operations a snapshot watcher
// cares about, collapsing fsnotify's richer op set down to what
// triggers a re-serialize.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
)

// Event is a single observed change to a watched snapshot file.
type Event struct {
	Path string
	Op   Op
}

// Watcher wraps an *fsnotify.Watcher, translating its events into
// Event and forwarding errors on a buffered channel.
type Watcher struct {
	w   *fsnotify.Watcher
	evC chan Event
	erC chan error
	done chan struct{}
}

// New creates a Watcher with no directories added yet; call Add to
// start watching one.
func New() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &Watcher{w: w, evC: make(chan Event, 128), erC: make(chan error, 1), done: make(chan struct{})}
	go fw.loop()

	return fw, nil
}

func (fw *Watcher) loop() {
	defer close(fw.evC)

	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}

			var op Op

			if ev.Op&fsnotify.Create != 0 {
				op |= OpCreate
			}

			if ev.Op&fsnotify.Write != 0 {
				op |= OpWrite
			}

			if ev.Op&fsnotify.Remove != 0 {
				op |= OpRemove
			}

			if ev.Op&fsnotify.Rename != 0 {
				op |= OpRename
			}

			if op == 0 {
				continue // Chmod-only events don't warrant a re-serialize
			}

			select {
			case fw.evC <- Event{Path: ev.Name, Op: op}:
			case <-fw.done:
				return
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}

			select {
			case fw.erC <- err:
			default:
			}
		case <-fw.done:
			return
		}
	}
}

// Events returns the channel of observed snapshot-file changes.
func (fw *Watcher) Events() <-chan Event { return fw.evC }

// Errors returns the channel of underlying watch errors.
func (fw *Watcher) Errors() <-chan error { return fw.erC }

// Add starts watching dir for changes.
func (fw *Watcher) Add(dir string) error { return fw.w.Add(dir) }

// Remove stops watching dir.
func (fw *Watcher) Remove(dir string) error { return fw.w.Remove(dir) }

// Close stops the watch loop and releases the underlying fsnotify
// watcher.
func (fw *Watcher) Close() error {
	close(fw.done)

	return fw.w.Close()
}
