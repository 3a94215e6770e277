package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mediabridge/internal/media"
)

const eventColumns = `id, event_id, backend, title, artist, album, status, shuffle_active, repeat_active, occurred_at`

// Append records a playback state observation and prunes events beyond the
// configured cap. It returns the stored event.
func (s *Store) Append(ctx context.Context, backend string, state media.PlaybackState) (Event, error) {
	ctx = ensureContext(ctx)
	event := Event{
		EventID:       uuid.NewString(),
		Backend:       backend,
		Title:         state.Title,
		Artist:        state.Artist,
		Album:         state.Album,
		Status:        state.Status,
		ShuffleActive: state.ShuffleActive,
		RepeatActive:  state.RepeatActive,
		OccurredAt:    time.Now().UTC(),
	}

	res, err := s.execWithRetry(ctx, `
        INSERT INTO playback_events (event_id, backend, title, artist, album, status, shuffle_active, repeat_active, occurred_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.EventID, event.Backend, event.Title, event.Artist, event.Album,
		string(event.Status), event.ShuffleActive, event.RepeatActive,
		event.OccurredAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Event{}, fmt.Errorf("append playback event: %w", err)
	}
	event.ID, err = res.LastInsertId()
	if err != nil {
		return Event{}, fmt.Errorf("read event id: %w", err)
	}

	if err := s.prune(ctx); err != nil {
		return Event{}, err
	}
	return event, nil
}

// prune drops the oldest events beyond the configured cap. A cap of zero
// disables pruning.
func (s *Store) prune(ctx context.Context) error {
	if s.maxEvents <= 0 {
		return nil
	}
	_, err := s.execWithRetry(ctx, `
        DELETE FROM playback_events
        WHERE id NOT IN (SELECT id FROM playback_events ORDER BY id DESC LIMIT ?)`,
		s.maxEvents,
	)
	if err != nil {
		return fmt.Errorf("prune playback events: %w", err)
	}
	return nil
}

// Latest returns the most recent event, or nil when the journal is empty.
func (s *Store) Latest(ctx context.Context) (*Event, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `
        SELECT `+eventColumns+` FROM playback_events ORDER BY id DESC LIMIT 1`)
	event, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("latest playback event: %w", err)
	}
	return &event, nil
}

// Recent returns up to limit events, newest first. A non-positive limit
// returns everything.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + eventColumns + ` FROM playback_events ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list playback events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan playback event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Count returns the number of stored events.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM playback_events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count playback events: %w", err)
	}
	return count, nil
}

// Clear removes every stored event.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.execWithRetry(ensureContext(ctx), `DELETE FROM playback_events`); err != nil {
		return fmt.Errorf("clear playback events: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (Event, error) {
	var (
		event    Event
		status   string
		occurred string
	)
	err := row.Scan(
		&event.ID, &event.EventID, &event.Backend,
		&event.Title, &event.Artist, &event.Album,
		&status, &event.ShuffleActive, &event.RepeatActive, &occurred,
	)
	if err != nil {
		return Event{}, err
	}
	event.Status = media.Status(status)
	if ts, parseErr := time.Parse(time.RFC3339Nano, occurred); parseErr == nil {
		event.OccurredAt = ts
	}
	return event, nil
}
