package testsupport

import (
	"context"
	"testing"

	"mediabridge/internal/config"
	"mediabridge/internal/journal"
	"mediabridge/internal/media"
)

// MustOpenJournal opens a journal.Store for tests and registers cleanup.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()

	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AppendEvent records a playback event for tests using the provided store.
func AppendEvent(t testing.TB, store *journal.Store, backend string, state media.PlaybackState) journal.Event {
	t.Helper()

	event, err := store.Append(context.Background(), backend, state)
	if err != nil {
		t.Fatalf("store.Append: %v", err)
	}
	return event
}
