package journal_test

import (
	"context"
	"fmt"
	"testing"

	"mediabridge/internal/media"
	"mediabridge/internal/testsupport"
)

func playingState(title string) media.PlaybackState {
	return media.PlaybackState{
		Artist: "Boards of Canada",
		Album:  "Music Has the Right to Children",
		Title:  title,
		Status: media.StatusPlaying,
	}
}

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)

	ctx := context.Background()
	event, err := store.Append(ctx, "mpris", playingState("Roygbiv"))
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if event.ID == 0 {
		t.Fatal("expected event ID to be assigned")
	}
	if event.EventID == "" {
		t.Fatal("expected event UUID to be assigned")
	}
	if event.OccurredAt.IsZero() {
		t.Fatal("expected event timestamp to be set")
	}
}

func TestLatestReflectsNewestEvent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest != nil {
		t.Fatalf("empty journal returned event %#v", latest)
	}

	testsupport.AppendEvent(t, store, "mpris", playingState("Roygbiv"))
	second := testsupport.AppendEvent(t, store, "mpris", playingState("Aquarius"))

	latest, err = store.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest == nil || latest.EventID != second.EventID {
		t.Fatalf("Latest = %#v, want event %s", latest, second.EventID)
	}
	if latest.Title != "Aquarius" || latest.Status != media.StatusPlaying {
		t.Fatalf("unexpected latest event: %#v", latest)
	}
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)

	for i := 0; i < 5; i++ {
		testsupport.AppendEvent(t, store, "mpris", playingState(fmt.Sprintf("Track %d", i)))
	}

	events, err := store.Recent(context.Background(), 3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Recent returned %d events, want 3", len(events))
	}
	if events[0].Title != "Track 4" || events[2].Title != "Track 2" {
		t.Fatalf("unexpected order: %q, %q, %q", events[0].Title, events[1].Title, events[2].Title)
	}
}

func TestAppendPrunesBeyondCap(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMaxEvents(3))
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		testsupport.AppendEvent(t, store, "mpris", playingState(fmt.Sprintf("Track %d", i)))
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("journal holds %d events, want 3 after pruning", count)
	}

	events, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if events[len(events)-1].Title != "Track 3" {
		t.Fatalf("oldest surviving event = %q, want Track 3", events[len(events)-1].Title)
	}
}

func TestEventStateRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)

	state := media.PlaybackState{
		Artist:        "Autechre",
		Album:         "Tri Repetae",
		Title:         "Dael",
		ShuffleActive: true,
		RepeatActive:  true,
		Status:        media.StatusPaused,
	}
	testsupport.AppendEvent(t, store, "mpris", state)

	latest, err := store.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest == nil {
		t.Fatal("expected an event")
	}
	if got := latest.State(); got != state {
		t.Fatalf("State() = %#v, want %#v", got, state)
	}
}

func TestClearEmptiesJournal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	testsupport.AppendEvent(t, store, "mpris", playingState("Roygbiv"))
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("journal holds %d events after clear", count)
	}
}

func TestCheckHealthReportsSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)

	testsupport.AppendEvent(t, store, "mpris", playingState("Roygbiv"))

	health, err := store.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable || !health.TableExists {
		t.Fatalf("unexpected health: %#v", health)
	}
	if len(health.MissingColumns) != 0 {
		t.Fatalf("missing columns: %v", health.MissingColumns)
	}
	if health.TotalEvents != 1 {
		t.Fatalf("TotalEvents = %d, want 1", health.TotalEvents)
	}
	if !health.IntegrityCheck {
		t.Fatal("integrity check failed")
	}
}
