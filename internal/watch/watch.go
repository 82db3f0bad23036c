// Package watch notifies when dataset files change on disk.
package watch

import (
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Iron-Ham/sift/internal/logging"
)

// DefaultDebounce is used when New is given a non-positive debounce.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a fixed set of files and reports changes to them after a
// quiet period.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool // cleaned absolute paths
	debounce time.Duration
	logger   *logging.Logger

	onChange func(changed []string)

	mu       sync.RWMutex
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// New creates a watcher for paths. The parent directories are watched so
// files replaced by editors (write to temp, rename over) are still seen.
func New(paths []string, debounce time.Duration, logger *logging.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.NopLogger()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]bool, len(paths)),
		debounce: debounce,
		logger:   logger.WithComponent("watch"),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	return w, nil
}

// OnChange sets the callback invoked with the changed paths, sorted. It
// runs on the watcher goroutine.
func (w *Watcher) OnChange(cb func(changed []string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = cb
}

// Start begins watching for file changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher and waits for its goroutine to exit. It is safe to
// call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
	select {
	case <-w.doneCh:
	case <-time.After(time.Second):
	}
}

func (w *Watcher) watchLoop() {
	defer close(w.doneCh)

	// Many editors create several events for a single save.
	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C

	pending := make(map[string]bool)

	for {
		select {
		case <-w.stopCh:
			debounceTimer.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if !w.files[name] {
				continue
			}
			pending[name] = true
			debounceTimer.Reset(w.debounce)

		case <-debounceTimer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			slices.Sort(changed)
			pending = make(map[string]bool)

			w.logger.Debug("dataset changed", "paths", changed)

			w.mu.RLock()
			cb := w.onChange
			w.mu.RUnlock()
			if cb != nil {
				cb(changed)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}
