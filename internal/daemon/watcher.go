package daemon

import (
	"context"
	"time"

	"mediabridge/internal/logging"
	"mediabridge/internal/media"
)

// watch polls the backend for playback state and journals every transition.
// The loop runs until the daemon context is cancelled.
func (d *Daemon) watch(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.pollInterval())
	defer ticker.Stop()

	// Take an initial observation so status is available right away.
	d.observe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.observe(ctx)
		}
	}
}

// observe reads the current playback state and records it when it differs
// from the previous observation. Read failures degrade to the default state
// so a vanished player shows up as a stop, not a crash.
func (d *Daemon) observe(ctx context.Context) {
	d.mu.Lock()
	controller := d.controller
	d.mu.Unlock()
	if controller == nil {
		return
	}

	state, err := controller.State(ctx)
	if err != nil {
		d.logger.Debug("playback state read failed", logging.Error(err))
		state = media.DefaultState()
	}

	d.mu.Lock()
	changed := !d.hasState || state != d.lastState
	trackChanged := changed && state.TrackLabel() != d.lastState.TrackLabel()
	d.lastState = state
	d.hasState = true
	d.mu.Unlock()

	if !changed {
		return
	}

	if _, err := d.store.Append(ctx, controller.Name(), state); err != nil {
		d.logger.Warn("failed to journal playback state",
			logging.Error(err),
			logging.String(logging.FieldEventType, "journal_append_failed"),
			logging.String(logging.FieldImpact, "playback history will have gaps"))
	}

	d.logger.Debug("playback state changed",
		logging.String(logging.FieldBackend, controller.Name()),
		logging.String("status", string(state.Status)),
		logging.String("track", state.TrackLabel()))

	if trackChanged && state.Status == media.StatusPlaying {
		if err := d.notifier.NotifyTrackChanged(ctx, state); err != nil {
			d.logger.Warn("track notification failed", logging.Error(err))
		}
	}
}
