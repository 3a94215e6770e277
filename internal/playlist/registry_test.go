package playlist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mediabridge/internal/logging"
)

type launchRecord struct {
	opener string
	path   string
}

func newTestRegistry(t *testing.T, dir string) (*Registry, *[]launchRecord) {
	t.Helper()
	reg, err := NewRegistry(logging.NewNop(), dir, "xdg-open")
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	launches := &[]launchRecord{}
	reg.launch = func(_ context.Context, opener string, path string) error {
		*launches = append(*launches, launchRecord{opener: opener, path: path})
		return nil
	}
	return reg, launches
}

func TestRegistryScansAndSortsNames(t *testing.T) {
	dir := t.TempDir()
	writePlaylist(t, dir, "rock.m3u", "/music/a.mp3\n")
	writePlaylist(t, dir, "Ambient.m3u", "/music/b.mp3\n")
	writePlaylist(t, dir, "notes.txt", "not a playlist\n")

	reg, _ := newTestRegistry(t, dir)
	names := reg.Names()
	if len(names) != 2 || names[0] != "Ambient" || names[1] != "rock" {
		t.Fatalf("Names = %v", names)
	}
}

func TestRegistryGetIgnoresCase(t *testing.T) {
	dir := t.TempDir()
	writePlaylist(t, dir, "Focus Mix.m3u", "/music/a.mp3\n")

	reg, _ := newTestRegistry(t, dir)
	for _, query := range []string{"Focus Mix", "focus mix", "FOCUS MIX", "  focus mix  "} {
		pl, ok := reg.Get(query)
		if !ok {
			t.Fatalf("Get(%q) missed", query)
		}
		if pl.Name != "Focus Mix" {
			t.Fatalf("Get(%q) = %q", query, pl.Name)
		}
	}
	if _, ok := reg.Get("does not exist"); ok {
		t.Fatal("unexpected hit for unknown name")
	}
}

func TestRegistryMissingDirectoryIsEmpty(t *testing.T) {
	reg, _ := newTestRegistry(t, filepath.Join(t.TempDir(), "absent"))
	if names := reg.Names(); len(names) != 0 {
		t.Fatalf("Names = %v, want empty", names)
	}
}

func TestRegistrySkipsUnreadablePlaylist(t *testing.T) {
	dir := t.TempDir()
	writePlaylist(t, dir, "good.m3u", "/music/a.mp3\n")
	// A directory with a playlist extension cannot be parsed.
	if err := os.Mkdir(filepath.Join(dir, "bad.m3u"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	reg, _ := newTestRegistry(t, dir)
	names := reg.Names()
	if len(names) != 1 || names[0] != "good" {
		t.Fatalf("Names = %v, want [good]", names)
	}
}

func TestRegistryRescanPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	reg, _ := newTestRegistry(t, dir)
	if len(reg.Names()) != 0 {
		t.Fatal("registry should start empty")
	}

	writePlaylist(t, dir, "new.m3u", "/music/a.mp3\n")
	if err := reg.Rescan(); err != nil {
		t.Fatalf("Rescan: %v", err)
	}
	if _, ok := reg.Get("new"); !ok {
		t.Fatal("rescan did not pick up the new playlist")
	}
}

func TestRegistryStartLaunchesOpener(t *testing.T) {
	dir := t.TempDir()
	path := writePlaylist(t, dir, "Focus Mix.m3u", "/music/a.mp3\n")
	reg, launches := newTestRegistry(t, dir)

	pl, err := reg.Start(context.Background(), "focus mix")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if pl.Name != "Focus Mix" {
		t.Errorf("started %q", pl.Name)
	}
	if len(*launches) != 1 {
		t.Fatalf("launches = %v", *launches)
	}
	launch := (*launches)[0]
	if launch.opener != "xdg-open" || launch.path != path {
		t.Errorf("launch = %+v", launch)
	}
}

func TestRegistryStartUnknownPlaylist(t *testing.T) {
	reg, _ := newTestRegistry(t, t.TempDir())
	if _, err := reg.Start(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRegistryStartDeletedFile(t *testing.T) {
	dir := t.TempDir()
	path := writePlaylist(t, dir, "gone.m3u", "/music/a.mp3\n")
	reg, launches := newTestRegistry(t, dir)

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := reg.Start(context.Background(), "gone"); err == nil {
		t.Fatal("expected error for deleted playlist file")
	}
	if len(*launches) != 0 {
		t.Fatal("opener should not run for a missing file")
	}
}

func TestWatcherRescansOnChange(t *testing.T) {
	dir := t.TempDir()
	reg, _ := newTestRegistry(t, dir)

	w, err := NewWatcher(logging.NewNop(), reg)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()
	w.debounce = 10 * time.Millisecond

	writePlaylist(t, dir, "fresh.m3u", "/music/a.mp3\n")

	deadline := time.After(3 * time.Second)
	for {
		if _, ok := reg.Get("fresh"); ok {
			return
		}
		select {
		case <-deadline:
			t.Fatal("watcher never picked up the new playlist")
		case <-time.After(20 * time.Millisecond):
		}
	}
}
