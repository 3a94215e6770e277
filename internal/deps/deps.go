package deps

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"mediabridge/internal/config"
)

// Requirement defines an external tool mediabridge relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ForConfig builds the dependency requirements implied by the configuration.
// Which tools are needed depends on the platform and the selected backend.
func ForConfig(cfg *config.Config) []Requirement {
	if cfg == nil {
		return nil
	}
	reqs := []Requirement{
		{
			Name:        "Key injector",
			Command:     cfg.Player.KeyTool,
			Description: "Simulates media key presses for the media_keys backend",
			Optional:    true,
		},
		{
			Name:        "Playlist opener",
			Command:     openerCommand(cfg),
			Description: "Hands playlist files to the default media player",
			Optional:    true,
		},
	}
	if runtime.GOOS == "darwin" {
		reqs = append(reqs, Requirement{
			Name:        "AppleScript runner",
			Command:     "osascript",
			Description: "Controls Music/Spotify for the applescript backend",
			Optional:    true,
		})
	}
	return reqs
}

func openerCommand(cfg *config.Config) string {
	if cfg != nil && strings.TrimSpace(cfg.Player.Opener) != "" {
		return cfg.Player.Opener
	}
	return DefaultOpener()
}

// DefaultOpener returns the platform file opener used to start playlists.
func DefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	default:
		return "xdg-open"
	}
}

// SessionBusAvailable reports whether a D-Bus session bus address is present,
// which the MPRIS backend needs before it can connect.
func SessionBusAvailable() (bool, string) {
	if runtime.GOOS != "linux" {
		return false, fmt.Sprintf("MPRIS requires a Linux session bus (running on %s)", runtime.GOOS)
	}
	if addr := strings.TrimSpace(os.Getenv("DBUS_SESSION_BUS_ADDRESS")); addr != "" {
		return true, ""
	}
	// Fall back to the well-known per-user socket location.
	if dir := strings.TrimSpace(os.Getenv("XDG_RUNTIME_DIR")); dir != "" {
		if _, err := os.Stat(dir + "/bus"); err == nil {
			return true, ""
		}
	}
	return false, "no D-Bus session bus address found"
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
