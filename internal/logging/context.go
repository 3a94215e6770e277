package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldBackend is the standardized structured logging key for media backend names.
	FieldBackend = "backend"
	// FieldPlaylist is the standardized structured logging key for playlist names.
	FieldPlaylist = "playlist"
	// FieldAction is the standardized structured logging key for media control actions.
	FieldAction = "action"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldEventType tags log lines with a machine-readable event name.
	FieldEventType = "event_type"
	// FieldErrorHint carries the suggested next step for a logged failure.
	FieldErrorHint = "error_hint"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey string

const (
	backendContextKey     contextKey = "backend"
	playlistContextKey    contextKey = "playlist"
	correlationContextKey contextKey = "correlation_id"
)

// WithBackend stores the active backend name on the context.
func WithBackend(ctx context.Context, backend string) context.Context {
	return context.WithValue(ctx, backendContextKey, backend)
}

// WithPlaylist stores the playlist name on the context.
func WithPlaylist(ctx context.Context, playlist string) context.Context {
	return context.WithValue(ctx, playlistContextKey, playlist)
}

// WithCorrelationID stores a request correlation identifier on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationContextKey, id)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if backend, ok := ctx.Value(backendContextKey).(string); ok && backend != "" {
		fields = append(fields, slog.String(FieldBackend, backend))
	}
	if playlist, ok := ctx.Value(playlistContextKey).(string); ok && playlist != "" {
		fields = append(fields, slog.String(FieldPlaylist, playlist))
	}
	if rid, ok := ctx.Value(correlationContextKey).(string); ok && rid != "" {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
