package config

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a file must stay unchanged before it is reported.
const DefaultSettle = 100 * time.Millisecond

// Watcher reports level and tuning files that changed in the watched
// directories. A path is reported once it has been quiet for the settle
// time, so an editor saving in several writes yields one event after the
// last write.
type Watcher struct {
	Events chan string
	Errors chan error

	fs      *fsnotify.Watcher
	settle  time.Duration
	settled chan string
	done    chan struct{}
	stop    sync.Once

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	return NewSettlingWatcher(DefaultSettle, dirs...)
}

// NewSettlingWatcher watches dirs and reports a path once no event has
// arrived for it within settle.
func NewSettlingWatcher(settle time.Duration, dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		fs:      fw,
		settle:  settle,
		settled: make(chan string, 16),
		done:    make(chan struct{}),
		pending: make(map[string]*time.Timer),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.stop.Do(func() {
		close(w.done)
		w.mu.Lock()
		for p, t := range w.pending {
			t.Stop()
			delete(w.pending, p)
		}
		w.mu.Unlock()
		err = w.fs.Close()
	})
	return err
}

// touch restarts the settle timer of p.
func (w *Watcher) touch(p string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[p]; ok {
		t.Reset(w.settle)
		return
	}
	w.pending[p] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, p)
		w.mu.Unlock()
		select {
		case w.settled <- p:
		case <-w.done:
		}
	})
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&relevant != 0 && (IsLevelFile(ev.Name) || IsTuningFile(ev.Name)) {
				w.touch(ev.Name)
			}
		case p := <-w.settled:
			select {
			case w.Events <- p:
			case <-w.done:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}

func IsLevelFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".json" || ext == ".tmx"
}

func IsTuningFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
