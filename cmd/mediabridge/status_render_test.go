package main

import (
	"fmt"
	"strings"
	"testing"

	"mediabridge/internal/ipc"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("MediaBridge", statusError, "Not running", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "MediaBridge:", "[ERROR] Not running")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("MediaBridge", statusOK, "Running", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []ipc.DependencyStatus{
		{Name: "Key injector", Available: false},
		{Name: "Playlist opener", Available: true, Command: "xdg-open"},
		{Name: "AppleScript runner", Available: false, Optional: true, Detail: "not found on PATH"},
	}
	lines := dependencyLines(statuses, false)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[ERROR] not available") {
		t.Fatalf("expected error detail in first line, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "[OK] Ready (command: xdg-open)") {
		t.Fatalf("expected ready detail in second line, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "[WARN] not found on PATH") {
		t.Fatalf("expected warn detail in third line, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "Missing dependencies") || !strings.Contains(lines[3], "Key injector") {
		t.Fatalf("expected missing summary last, got %q", lines[3])
	}
}

func TestBackendLines(t *testing.T) {
	backends := []ipc.BackendStatus{
		{Name: "mpris", Available: true},
		{Name: "media_keys", Available: true},
		{Name: "applescript", Available: false, Detail: "requires macOS"},
	}
	lines := backendLines(backends, "mpris", false)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[OK] Active") {
		t.Fatalf("expected active backend first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "[OK] Available") {
		t.Fatalf("expected available backend second, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "[WARN] requires macOS") {
		t.Fatalf("expected unavailable detail third, got %q", lines[2])
	}
}

func TestNowPlayingLabel(t *testing.T) {
	label := nowPlayingLabel(ipc.PlaybackState{Title: "Echoes", Artist: "Pink Floyd", Status: "playing"})
	if label != "Echoes - Pink Floyd (playing)" {
		t.Fatalf("unexpected label %q", label)
	}
	if got := nowPlayingLabel(ipc.PlaybackState{Status: "stopped"}); got != "" {
		t.Fatalf("expected empty label without title, got %q", got)
	}
}
