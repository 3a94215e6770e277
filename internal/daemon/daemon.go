package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"mediabridge/internal/config"
	"mediabridge/internal/journal"
	"mediabridge/internal/logging"
	"mediabridge/internal/media"
	"mediabridge/internal/notifications"
	"mediabridge/internal/playlist"
)

// selectorFunc builds the media controller for the configured backend. Tests
// substitute one returning a fake controller.
type selectorFunc func(cfg *config.Config, logger *slog.Logger) (media.Controller, error)

// Daemon coordinates the media watcher and enforces single-instance
// execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *journal.Store
	registry *playlist.Registry
	notifier notifications.Service
	selector selectorFunc
	logPath  string

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu         sync.Mutex
	controller media.Controller
	lastState  media.PlaybackState
	hasState   bool
}

// Status represents daemon runtime information.
type Status struct {
	Running       bool
	Backend       string
	NowPlaying    media.PlaybackState
	PlaylistDir   string
	JournalDBPath string
	LockFilePath  string
	PID           int
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *journal.Store, registry *playlist.Registry, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || registry == nil || logger == nil {
		return nil, errors.New("daemon requires config, journal store, playlist registry, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "mediabridged.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		registry: registry,
		notifier: notifications.NewService(cfg),
		selector: media.Select,
		logPath:  filepath.Join(cfg.Paths.LogDir, "mediabridge.log"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock, selects a media backend, and launches the
// playback watcher.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another mediabridge daemon instance is already running")
	}

	controller, err := d.selector(d.cfg, d.logger)
	if err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("select media backend: %w", err)
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	d.mu.Lock()
	d.controller = controller
	d.lastState = media.DefaultState()
	d.hasState = false
	d.mu.Unlock()

	d.wg.Add(1)
	go d.watch(d.ctx)

	d.running.Store(true)
	d.logger.Info("mediabridge daemon started",
		logging.String(logging.FieldBackend, controller.Name()),
		logging.String("lock", d.lockPath))
	if err := d.notifier.NotifyBackendSelected(d.ctx, controller.Name()); err != nil {
		d.logger.Warn("backend notification failed", logging.Error(err))
	}
	return nil
}

// Stop halts the watcher, closes the backend, and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()

	d.mu.Lock()
	controller := d.controller
	d.controller = nil
	d.mu.Unlock()
	if controller != nil {
		if err := controller.Close(); err != nil {
			d.logger.Warn("failed to close media backend", logging.Error(err))
		}
	}

	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("mediabridge daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Running reports whether the watcher is active.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Backend returns the name of the active media backend, if any.
func (d *Daemon) Backend() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.controller == nil {
		return ""
	}
	return d.controller.Name()
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) Status {
	state, _, err := d.NowPlaying(ctx)
	if err != nil {
		state = media.DefaultState()
	}
	return Status{
		Running:       d.running.Load(),
		Backend:       d.Backend(),
		NowPlaying:    state,
		PlaylistDir:   d.cfg.Paths.PlaylistDir,
		JournalDBPath: d.store.Path(),
		LockFilePath:  d.lockPath,
		PID:           os.Getpid(),
	}
}

func (d *Daemon) pollInterval() time.Duration {
	seconds := d.cfg.Player.PollInterval
	if seconds <= 0 {
		seconds = 1
	}
	return time.Duration(seconds) * time.Second
}
