// Package watcher reports changes to event files so viewers can reload.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-consensus-timeline/internal/util"
)

// DefaultDebounce coalesces the burst of writes an appending producer makes
const DefaultDebounce = 150 * time.Millisecond

// Change is one coalesced modification of a watched file
type Change struct {
	Path      string
	Operation string
}

// FileWatcher watches a fixed set of files. The parent directories are
// watched so that files replaced by rename keep being tracked.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration
	events   chan Change
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewFileWatcher starts watching files. A zero debounce uses DefaultDebounce.
func NewFileWatcher(files []string, debounce time.Duration) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw := &FileWatcher{
		watcher:  watcher,
		files:    make(map[string]struct{}, len(files)),
		debounce: debounce,
		events:   make(chan Change, 16),
		done:     make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		fw.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	fw.wg.Add(1)
	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer fw.wg.Done()
	defer close(fw.events)

	pending := make(map[string]fsnotify.Op)
	timer := time.NewTimer(fw.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	flush := func() {
		for path, op := range pending {
			select {
			case fw.events <- Change{Path: path, Operation: op.String()}:
			case <-fw.done:
				return
			}
		}
		clear(pending)
	}

	for {
		select {
		case <-fw.done:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.tracked(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			if len(pending) == 0 {
				timer.Reset(fw.debounce)
			}
			pending[event.Name] |= event.Op

		case <-timer.C:
			flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

func (fw *FileWatcher) tracked(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	_, ok := fw.files[abs]
	return ok
}

// Events delivers coalesced changes; it is closed by Close
func (fw *FileWatcher) Events() <-chan Change {
	return fw.events
}

// Close stops watching and waits for the event loop to exit
func (fw *FileWatcher) Close() error {
	select {
	case <-fw.done:
		return nil
	default:
	}
	close(fw.done)
	err := fw.watcher.Close()
	fw.wg.Wait()
	return err
}
