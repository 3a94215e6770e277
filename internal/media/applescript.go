package media

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"mediabridge/internal/logging"
)

// appleScriptApps lists the players probed in preference order.
var appleScriptApps = []string{"Music", "Spotify"}

// AppleScriptController drives macOS players through osascript. It targets
// whichever supported player is currently running, preferring the first one
// in appleScriptApps order.
type AppleScriptController struct {
	logger *slog.Logger
	runner scriptRunner
}

// scriptRunner executes an AppleScript snippet and returns its output.
type scriptRunner func(ctx context.Context, script string) (string, error)

func osascriptRunner(ctx context.Context, script string) (string, error) {
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	return strings.TrimSpace(string(out)), err
}

// NewAppleScriptController builds the macOS backend.
func NewAppleScriptController(logger *slog.Logger) *AppleScriptController {
	return &AppleScriptController{
		logger: logging.NewComponentLogger(logger, "applescript"),
		runner: osascriptRunner,
	}
}

// Name identifies the backend.
func (c *AppleScriptController) Name() string { return BackendAppleScript }

// activeApp returns the first supported player that is running.
func (c *AppleScriptController) activeApp(ctx context.Context) (string, error) {
	for _, app := range appleScriptApps {
		script := fmt.Sprintf(`tell application "System Events" to (name of processes) contains %q`, app)
		out, err := c.runner(ctx, script)
		if err != nil {
			c.logger.Debug("process probe failed",
				logging.String("app", app), logging.Error(err))
			continue
		}
		if out == "true" {
			return app, nil
		}
	}
	return "", ErrNoActivePlayer
}

func (c *AppleScriptController) tell(ctx context.Context, command string) error {
	app, err := c.activeApp(ctx)
	if err != nil {
		return err
	}
	script := fmt.Sprintf("tell application %q to %s", app, command)
	if _, err := c.runner(ctx, script); err != nil {
		return fmt.Errorf("osascript %s: %w", command, err)
	}
	return nil
}

func (c *AppleScriptController) Play(ctx context.Context) error {
	return c.tell(ctx, "play")
}

func (c *AppleScriptController) Pause(ctx context.Context) error {
	return c.tell(ctx, "pause")
}

func (c *AppleScriptController) Stop(ctx context.Context) error {
	// Neither Music nor Spotify exposes a distinct stop verb; pause is the
	// closest observable behavior.
	return c.tell(ctx, "pause")
}

func (c *AppleScriptController) Next(ctx context.Context) error {
	return c.tell(ctx, "next track")
}

func (c *AppleScriptController) Previous(ctx context.Context) error {
	return c.tell(ctx, "previous track")
}

// State reads player state and current track metadata from the active player.
// Errors degrade to the default state so polling keeps running when a player
// quits mid-session.
func (c *AppleScriptController) State(ctx context.Context) (PlaybackState, error) {
	app, err := c.activeApp(ctx)
	if err != nil {
		return DefaultState(), nil
	}

	state := DefaultState()

	out, err := c.runner(ctx, fmt.Sprintf("tell application %q to player state as string", app))
	if err != nil {
		return DefaultState(), nil
	}
	state.Status = parseAppleScriptStatus(out)

	if title, err := c.runner(ctx, fmt.Sprintf("tell application %q to name of current track", app)); err == nil {
		state.Title = title
	}
	if artist, err := c.runner(ctx, fmt.Sprintf("tell application %q to artist of current track", app)); err == nil {
		state.Artist = artist
	}
	if album, err := c.runner(ctx, fmt.Sprintf("tell application %q to album of current track", app)); err == nil {
		state.Album = album
	}

	return state, nil
}

// Close is a no-op; each call spawns its own osascript process.
func (c *AppleScriptController) Close() error { return nil }

func parseAppleScriptStatus(value string) Status {
	switch value {
	case "playing":
		return StatusPlaying
	case "paused":
		return StatusPaused
	case "stopped":
		return StatusStopped
	default:
		return StatusUnknown
	}
}
