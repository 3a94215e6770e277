package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Status describes the playback status reported by a backend.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusPaused  Status = "paused"
	StatusStopped Status = "stopped"
	StatusUnknown Status = "unknown"
)

// PlaybackState captures what the active player is doing. The zero value
// (empty fields, StatusUnknown after DefaultState) means nothing is known.
type PlaybackState struct {
	Artist        string
	Album         string
	Title         string
	ShuffleActive bool
	RepeatActive  bool
	Status        Status
}

// DefaultState returns the state reported when no player information is
// available.
func DefaultState() PlaybackState {
	return PlaybackState{Status: StatusUnknown}
}

// IsZero reports whether the state carries no track information.
func (s PlaybackState) IsZero() bool {
	return s.Artist == "" && s.Album == "" && s.Title == "" &&
		!s.ShuffleActive && !s.RepeatActive &&
		(s.Status == "" || s.Status == StatusUnknown)
}

// TrackLabel renders a short "Title - Artist" label for logs and
// notifications.
func (s PlaybackState) TrackLabel() string {
	title := strings.TrimSpace(s.Title)
	artist := strings.TrimSpace(s.Artist)
	switch {
	case title == "" && artist == "":
		return ""
	case artist == "":
		return title
	case title == "":
		return artist
	default:
		return title + " - " + artist
	}
}

// Controller is the capability interface every backend implements.
type Controller interface {
	// Name identifies the backend (mpris, media_keys, applescript).
	Name() string
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Stop(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	// State reports the current playback state. Backends without state
	// feedback return DefaultState with a nil error.
	State(ctx context.Context) (PlaybackState, error)
	Close() error
}

// Action is a transport command accepted by every backend.
type Action string

const (
	ActionPlay     Action = "play"
	ActionPause    Action = "pause"
	ActionStop     Action = "stop"
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
)

var allActions = []Action{ActionPlay, ActionPause, ActionStop, ActionNext, ActionPrevious}

// Actions returns the ordered list of known actions.
func Actions() []Action {
	cp := make([]Action, len(allActions))
	copy(cp, allActions)
	return cp
}

// ParseAction converts a string into a known Action.
func ParseAction(value string) (Action, bool) {
	normalized := Action(strings.ToLower(strings.TrimSpace(value)))
	for _, action := range allActions {
		if action == normalized {
			return action, true
		}
	}
	return "", false
}

// ErrNoActivePlayer indicates the backend found no player to control.
var ErrNoActivePlayer = errors.New("no active media player")

// Apply dispatches an action to the controller.
func Apply(ctx context.Context, c Controller, action Action) error {
	if c == nil {
		return errors.New("no controller configured")
	}
	switch action {
	case ActionPlay:
		return c.Play(ctx)
	case ActionPause:
		return c.Pause(ctx)
	case ActionStop:
		return c.Stop(ctx)
	case ActionNext:
		return c.Next(ctx)
	case ActionPrevious:
		return c.Previous(ctx)
	default:
		return fmt.Errorf("unknown media action %q", action)
	}
}
