package playlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writePlaylist(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write playlist: %v", err)
	}
	return path
}

func TestLoadM3UExtended(t *testing.T) {
	content := strings.Join([]string{
		"#EXTM3U",
		"#EXTINF:312,Pink Floyd - Time",
		"/music/pink_floyd/time.flac",
		"",
		"# a stray comment",
		"#EXTINF:-1,Radio Paradise",
		"https://stream.radioparadise.com/aac-320",
		"/music/unannotated.mp3",
	}, "\n")
	path := writePlaylist(t, t.TempDir(), "Focus Mix.m3u", content)

	pl, err := LoadM3U(path)
	if err != nil {
		t.Fatalf("LoadM3U: %v", err)
	}
	if pl.Name != "Focus Mix" {
		t.Errorf("Name = %q, want Focus Mix", pl.Name)
	}
	if pl.TrackCount() != 3 {
		t.Fatalf("TrackCount = %d, want 3", pl.TrackCount())
	}

	first := pl.Tracks[0]
	if first.Location != "/music/pink_floyd/time.flac" {
		t.Errorf("first location = %q", first.Location)
	}
	if first.Title != "Pink Floyd - Time" {
		t.Errorf("first title = %q", first.Title)
	}
	if first.Duration != 312*time.Second {
		t.Errorf("first duration = %s, want 312s", first.Duration)
	}

	stream := pl.Tracks[1]
	if stream.Title != "Radio Paradise" {
		t.Errorf("stream title = %q", stream.Title)
	}
	if stream.Duration != 0 {
		t.Errorf("negative EXTINF duration should read as undeclared, got %s", stream.Duration)
	}

	plain := pl.Tracks[2]
	if plain.Title != "" || plain.Duration != 0 {
		t.Errorf("unannotated track carried metadata: %+v", plain)
	}
}

func TestLoadM3UPlainList(t *testing.T) {
	content := "/music/a.mp3\n/music/b.mp3\n"
	path := writePlaylist(t, t.TempDir(), "plain.m3u", content)

	pl, err := LoadM3U(path)
	if err != nil {
		t.Fatalf("LoadM3U: %v", err)
	}
	if pl.TrackCount() != 2 {
		t.Fatalf("TrackCount = %d, want 2", pl.TrackCount())
	}
}

func TestLoadM3UEmptyFile(t *testing.T) {
	path := writePlaylist(t, t.TempDir(), "empty.m3u", "#EXTM3U\n")

	pl, err := LoadM3U(path)
	if err != nil {
		t.Fatalf("LoadM3U: %v", err)
	}
	if pl.TrackCount() != 0 {
		t.Fatalf("TrackCount = %d, want 0", pl.TrackCount())
	}
}

func TestLoadM3UMissingFile(t *testing.T) {
	if _, err := LoadM3U(filepath.Join(t.TempDir(), "nope.m3u")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
