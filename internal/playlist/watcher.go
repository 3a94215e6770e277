package playlist

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mediabridge/internal/logging"
)

const rescanDebounce = 500 * time.Millisecond

// Watcher rescans the registry when playlist files change on disk, so edits
// show up without restarting the daemon. Bursts of filesystem events are
// coalesced into one rescan.
type Watcher struct {
	logger   *slog.Logger
	registry *Registry
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer

	done chan struct{}
	once sync.Once
}

// NewWatcher starts watching the registry's directory.
func NewWatcher(logger *slog.Logger, registry *Registry) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(registry.Dir()); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		logger:   logging.NewComponentLogger(logger, "playlist"),
		registry: registry,
		watcher:  fsw,
		debounce: rescanDebounce,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(strings.ToLower(event.Name), ".m3u") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleRescan()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("playlist watcher error", logging.Error(err))
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) scheduleRescan() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if err := w.registry.Rescan(); err != nil {
			w.logger.Warn("playlist rescan failed", logging.Error(err))
		}
	})
}

// Close stops the watcher. Pending debounced rescans are cancelled.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}
