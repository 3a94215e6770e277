package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"mediabridge/internal/config"
	"mediabridge/internal/daemon"
	"mediabridge/internal/ipc"
	"mediabridge/internal/journal"
	"mediabridge/internal/logging"
	"mediabridge/internal/media"
	"mediabridge/internal/playlist"
	"mediabridge/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	store      *journal.Store
	daemon     *daemon.Daemon
	server     *ipc.Server
	socketPath string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t,
		testsupport.WithPlayerMethod(media.BackendMediaKeys),
		testsupport.WithStubbedBinaries("xdotool", "xdg-open"))

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	testsupport.WritePlaylist(t, cfg.Paths.PlaylistDir, "Focus Mix", "/music/a.mp3", "/music/b.mp3")

	store := testsupport.MustOpenJournal(t, cfg)
	logger := logging.NewNop()

	registry, err := playlist.NewRegistry(logger, cfg.Paths.PlaylistDir, "xdg-open")
	if err != nil {
		t.Fatalf("playlist.NewRegistry: %v", err)
	}

	d, err := daemon.New(cfg, store, registry, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	socketPath := filepath.Join(cfg.Paths.LogDir, "cli.sock")
	srv, err := ipc.NewServer(ctx, socketPath, d, logger)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping CLI test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(func() {
		srv.Close()
	})

	if err := d.Start(ctx); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	return &cliTestEnv{
		cfg:        cfg,
		store:      store,
		daemon:     d,
		server:     srv,
		socketPath: socketPath,
		configPath: configPath,
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, socket, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", socket}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, fragment string) {
	t.Helper()
	if !strings.Contains(output, fragment) {
		t.Fatalf("expected output to contain %q, got %q", fragment, output)
	}
}

func TestCLIPlayerCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"player", "play"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("player play: %v", err)
	}
	requireContains(t, out, "Sent play to media_keys")

	out, _, err = runCLI(t, []string{"now"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("now: %v", err)
	}
	requireContains(t, out, "Status:")
	requireContains(t, out, "Backend: media_keys")

	if _, _, err := runCLI(t, []string{"player", "rewind"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected unknown player subcommand to fail")
	}
}

func TestCLIPlaylistCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"playlist", "list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("playlist list: %v", err)
	}
	requireContains(t, out, "Focus Mix")

	out, _, err = runCLI(t, []string{"playlist", "start", "focus mix"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("playlist start: %v", err)
	}
	requireContains(t, out, "Started playlist Focus Mix (2 tracks)")

	if _, _, err := runCLI(t, []string{"playlist", "start", "No Such List"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected unknown playlist to fail")
	}
}

func TestCLIHistoryCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	testsupport.AppendEvent(t, env.store, media.BackendMediaKeys, media.PlaybackState{
		Title:  "Echoes",
		Artist: "Pink Floyd",
		Status: media.StatusPlaying,
	})

	out, _, err := runCLI(t, []string{"history", "list"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "Echoes - Pink Floyd")

	out, _, err = runCLI(t, []string{"history", "clear"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "Playback history cleared")

	out, _, err = runCLI(t, []string{"history", "health"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("history health: %v", err)
	}
	requireContains(t, out, "Journal Health")
	requireContains(t, out, "[OK]")
}

func TestCLITestNotifyWithoutTopic(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"test-notify"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	requireContains(t, out, "ntfy topic not configured")
}

func TestCLIStatusSnapshot(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== Daemon ==")
	requireContains(t, out, "Running")
	requireContains(t, out, "media_keys")
	requireContains(t, out, "== Dependencies ==")
}
