package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mediabridge/internal/config"
	"mediabridge/internal/media"
)

const userAgent = "MediaBridge-Go/0.1.0"

// Service defines the notification surface exposed to the daemon.
type Service interface {
	NotifyBackendSelected(ctx context.Context, backend string) error
	NotifyTrackChanged(ctx context.Context, state media.PlaybackState) error
	NotifyPlaylistStarted(ctx context.Context, name string, tracks int) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint:     topic,
		client:       client,
		trackChanges: cfg.Notifications.TrackChanges,
		errors:       cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint     string
	client       *http.Client
	trackChanges bool
	errors       bool
}

func (n *ntfyService) NotifyBackendSelected(ctx context.Context, backend string) error {
	backend = strings.TrimSpace(backend)
	data := payload{
		title:   "MediaBridge - Started",
		message: fmt.Sprintf("Media control active via %s", backend),
		tags:    []string{"mediabridge", "backend", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyTrackChanged(ctx context.Context, state media.PlaybackState) error {
	if !n.trackChanges {
		return nil
	}
	label := state.TrackLabel()
	if label == "" {
		return nil
	}
	message := fmt.Sprintf("Now playing: %s", label)
	if album := strings.TrimSpace(state.Album); album != "" {
		message = fmt.Sprintf("%s\nAlbum: %s", message, album)
	}
	data := payload{
		title:   "MediaBridge - Now Playing",
		message: message,
		tags:    []string{"mediabridge", "track", "changed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyPlaylistStarted(ctx context.Context, name string, tracks int) error {
	name = strings.TrimSpace(name)
	data := payload{
		title:   "MediaBridge - Playlist Started",
		message: fmt.Sprintf("Started playlist %s (%d tracks)", name, tracks),
		tags:    []string{"mediabridge", "playlist", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "MediaBridge - Error",
		message:  builder.String(),
		tags:     []string{"mediabridge", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "MediaBridge - Test",
		message:  "Notification system test",
		tags:     []string{"mediabridge", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyBackendSelected(context.Context, string) error           { return nil }
func (noopService) NotifyTrackChanged(context.Context, media.PlaybackState) error { return nil }
func (noopService) NotifyPlaylistStarted(context.Context, string, int) error      { return nil }
func (noopService) NotifyError(context.Context, error, string) error              { return nil }
func (noopService) TestNotification(context.Context) error                        { return nil }
