package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mediabridge/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("NTFY_TOPIC", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantPlaylists := filepath.Join(tempHome, ".local", "share", "mediabridge", "playlists")
	if cfg.Paths.PlaylistDir != wantPlaylists {
		t.Fatalf("unexpected playlist dir: got %q want %q", cfg.Paths.PlaylistDir, wantPlaylists)
	}
	if cfg.Player.Method != "auto" {
		t.Fatalf("unexpected player method: %q", cfg.Player.Method)
	}
	if cfg.Player.PollInterval != 1 {
		t.Fatalf("unexpected poll interval: %d", cfg.Player.PollInterval)
	}
	if cfg.Packaging.Installer != "pip" {
		t.Fatalf("unexpected installer: %q", cfg.Packaging.Installer)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
}

func TestLoadReadsFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
playlist_dir = "` + filepath.Join(dir, "lists") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[player]
method = "MPRIS"
poll_interval = 5

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Player.Method != "mpris" {
		t.Fatalf("expected lowered method, got %q", cfg.Player.Method)
	}
	if cfg.Player.PollInterval != 5 {
		t.Fatalf("unexpected poll interval: %d", cfg.Player.PollInterval)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Player.KeyTool != "xdotool" {
		t.Fatalf("expected key tool default, got %q", cfg.Player.KeyTool)
	}
}

func TestLoadRejectsUnknownPlayerMethod(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[player]\nmethod = \"winamp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "player.method") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestNtfyTopicEnvFallback(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("NTFY_TOPIC", "https://ntfy.sh/bridge-test")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Notifications.NtfyTopic != "https://ntfy.sh/bridge-test" {
		t.Fatalf("expected env fallback, got %q", cfg.Notifications.NtfyTopic)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.Player.Method != "auto" {
		t.Fatalf("sample method mismatch: %q", cfg.Player.Method)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.PlaylistDir = filepath.Join(dir, "playlists")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, d := range []string{cfg.Paths.PlaylistDir, cfg.Paths.LogDir} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q, err=%v", d, err)
		}
	}
}

func TestExpandPathTilde(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	got, err := config.ExpandPath("~/music")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(tempHome, "music") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
