package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"mediabridge/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "Unset"}})
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].Available {
		t.Fatal("expected unset command to be unavailable")
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", results[0].Detail)
	}
}

func TestForConfigUsesConfiguredTools(t *testing.T) {
	cfg := config.Default()
	cfg.Player.KeyTool = "my-key-tool"
	cfg.Player.Opener = "my-opener"

	reqs := ForConfig(&cfg)
	byName := map[string]Requirement{}
	for _, req := range reqs {
		byName[req.Name] = req
	}
	if byName["Key injector"].Command != "my-key-tool" {
		t.Fatalf("unexpected key injector: %q", byName["Key injector"].Command)
	}
	if byName["Playlist opener"].Command != "my-opener" {
		t.Fatalf("unexpected opener: %q", byName["Playlist opener"].Command)
	}
}

func TestDefaultOpenerMatchesPlatform(t *testing.T) {
	opener := DefaultOpener()
	if runtime.GOOS == "darwin" && opener != "open" {
		t.Fatalf("unexpected opener on darwin: %q", opener)
	}
	if runtime.GOOS == "linux" && opener != "xdg-open" {
		t.Fatalf("unexpected opener on linux: %q", opener)
	}
}

func TestSessionBusAvailableWithAddress(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("session bus probing is Linux-only")
	}
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "unix:path=/tmp/test-bus")
	ok, detail := SessionBusAvailable()
	if !ok {
		t.Fatalf("expected session bus to be available, detail: %s", detail)
	}
}

func TestSessionBusUnavailableWithoutAddress(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("session bus probing is Linux-only")
	}
	t.Setenv("DBUS_SESSION_BUS_ADDRESS", "")
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	ok, detail := SessionBusAvailable()
	if ok {
		t.Fatal("expected session bus to be unavailable")
	}
	if detail == "" {
		t.Fatal("expected detail message")
	}
}
