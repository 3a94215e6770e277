package media

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"mediabridge/internal/logging"
)

// KeyController emits hardware media key presses through an external key
// injection tool. It cannot observe playback, so State always reports the
// default state; play and pause share a single toggle key.
type KeyController struct {
	logger *slog.Logger
	tool   string
	runner commandRunner
}

// commandRunner executes an external command. Tests substitute a recorder.
type commandRunner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// NewKeyController builds a media key backend around the configured
// injection tool (xdotool by default).
func NewKeyController(logger *slog.Logger, tool string) *KeyController {
	return &KeyController{
		logger: logging.NewComponentLogger(logger, "mediakeys"),
		tool:   tool,
		runner: execRunner,
	}
}

// Name identifies the backend.
func (c *KeyController) Name() string { return BackendMediaKeys }

func (c *KeyController) press(ctx context.Context, key string) error {
	c.logger.Debug("pressing media key", logging.String("key", key))
	if err := c.runner(ctx, c.tool, "key", key); err != nil {
		return fmt.Errorf("%s key %s: %w", c.tool, key, err)
	}
	return nil
}

func (c *KeyController) Play(ctx context.Context) error {
	return c.press(ctx, "XF86AudioPlay")
}

func (c *KeyController) Pause(ctx context.Context) error {
	// Media keyboards expose a single play/pause toggle.
	return c.press(ctx, "XF86AudioPlay")
}

func (c *KeyController) Stop(ctx context.Context) error {
	return c.press(ctx, "XF86AudioStop")
}

func (c *KeyController) Next(ctx context.Context) error {
	return c.press(ctx, "XF86AudioNext")
}

func (c *KeyController) Previous(ctx context.Context) error {
	return c.press(ctx, "XF86AudioPrev")
}

// State cannot be observed through key injection.
func (c *KeyController) State(ctx context.Context) (PlaybackState, error) {
	return DefaultState(), nil
}

// Close is a no-op; the controller holds no resources.
func (c *KeyController) Close() error { return nil }
