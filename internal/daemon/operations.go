package daemon

import (
	"context"
	"errors"
	"strings"

	"mediabridge/internal/deps"
	"mediabridge/internal/journal"
	"mediabridge/internal/logging"
	"mediabridge/internal/media"
	"mediabridge/internal/notifications"
	"mediabridge/internal/playlist"
)

// ErrNotRunning indicates an operation that needs an active backend was
// called while the daemon is stopped.
var ErrNotRunning = errors.New("daemon is not running")

// Control dispatches a transport action to the active backend.
func (d *Daemon) Control(ctx context.Context, action media.Action) error {
	d.mu.Lock()
	controller := d.controller
	d.mu.Unlock()
	if controller == nil {
		return ErrNotRunning
	}

	if err := media.Apply(ctx, controller, action); err != nil {
		d.logger.Warn("media action failed",
			logging.String(logging.FieldAction, string(action)),
			logging.String(logging.FieldBackend, controller.Name()),
			logging.Error(err))
		return err
	}
	d.logger.Info("media action applied",
		logging.String(logging.FieldAction, string(action)),
		logging.String(logging.FieldBackend, controller.Name()))
	return nil
}

// NowPlaying reports the current playback state. With an active backend the
// state is read live; otherwise the newest journal entry is served so the
// last observation survives daemon restarts.
func (d *Daemon) NowPlaying(ctx context.Context) (media.PlaybackState, string, error) {
	d.mu.Lock()
	controller := d.controller
	d.mu.Unlock()

	if controller != nil {
		state, err := controller.State(ctx)
		if err == nil {
			return state, controller.Name(), nil
		}
		d.logger.Debug("live state read failed, falling back to journal", logging.Error(err))
	}

	event, err := d.store.Latest(ctx)
	if err != nil {
		return media.DefaultState(), "", err
	}
	if event == nil {
		return media.DefaultState(), "", nil
	}
	return event.State(), event.Backend, nil
}

// Playlists returns every discovered playlist after a fresh scan.
func (d *Daemon) Playlists() ([]playlist.Playlist, error) {
	if err := d.registry.Rescan(); err != nil {
		return nil, err
	}
	return d.registry.All(), nil
}

// StartPlaylist launches the named playlist in the default media player.
func (d *Daemon) StartPlaylist(ctx context.Context, name string) (playlist.Playlist, error) {
	if err := d.registry.Rescan(); err != nil {
		return playlist.Playlist{}, err
	}
	pl, err := d.registry.Start(ctx, name)
	if err != nil {
		return playlist.Playlist{}, err
	}
	if err := d.notifier.NotifyPlaylistStarted(ctx, pl.Name, pl.TrackCount()); err != nil {
		d.logger.Warn("playlist notification failed", logging.Error(err))
	}
	return pl, nil
}

// History returns up to limit journaled playback events, newest first.
func (d *Daemon) History(ctx context.Context, limit int) ([]journal.Event, error) {
	return d.store.Recent(ctx, limit)
}

// ClearHistory removes all journaled playback events.
func (d *Daemon) ClearHistory(ctx context.Context) error {
	return d.store.Clear(ctx)
}

// DatabaseHealth returns detailed journal database diagnostics.
func (d *Daemon) DatabaseHealth(ctx context.Context) (journal.DatabaseHealth, error) {
	return d.store.CheckHealth(ctx)
}

// Dependencies reports the availability of external tools the configured
// backends rely on.
func (d *Daemon) Dependencies() []deps.Status {
	return deps.CheckBinaries(deps.ForConfig(d.cfg))
}

// Backends reports the availability of every media backend on this host.
func (d *Daemon) Backends() []media.Descriptor {
	return media.Probe(d.cfg)
}

// TestNotification triggers a test notification using the current
// configuration.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if d.cfg == nil {
		return false, "configuration unavailable", errors.New("configuration unavailable")
	}
	if strings.TrimSpace(d.cfg.Notifications.NtfyTopic) == "" {
		return false, "ntfy topic not configured", nil
	}
	notifier := notifications.NewService(d.cfg)
	if err := notifier.TestNotification(ctx); err != nil {
		return false, "failed to send notification", err
	}
	return true, "test notification sent", nil
}
