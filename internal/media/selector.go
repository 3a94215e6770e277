package media

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"mediabridge/internal/config"
	"mediabridge/internal/deps"
)

// Backend names accepted by configuration and reported by controllers.
const (
	BackendAuto        = "auto"
	BackendMPRIS       = "mpris"
	BackendMediaKeys   = "media_keys"
	BackendAppleScript = "applescript"
)

// Descriptor reports the availability of one backend on this host.
type Descriptor struct {
	Name        string
	Description string
	Available   bool
	Detail      string
}

// Probe inspects the host and reports each backend's availability. The
// result is advisory; Select performs the same checks when choosing.
func Probe(cfg *config.Config) []Descriptor {
	return probe(cfg, runtime.GOOS, exec.LookPath)
}

type lookPathFunc func(string) (string, error)

func probe(cfg *config.Config, goos string, lookPath lookPathFunc) []Descriptor {
	descriptors := []Descriptor{
		probeMPRIS(goos),
		probeMediaKeys(cfg.Player.KeyTool, goos, lookPath),
		probeAppleScript(goos, lookPath),
	}
	return descriptors
}

func probeMPRIS(goos string) Descriptor {
	d := Descriptor{
		Name:        BackendMPRIS,
		Description: "session bus media players (Linux)",
	}
	if goos != "linux" {
		d.Detail = fmt.Sprintf("requires Linux, running on %s", goos)
		return d
	}
	ok, detail := deps.SessionBusAvailable()
	d.Available = ok
	d.Detail = detail
	return d
}

func probeMediaKeys(tool string, goos string, lookPath lookPathFunc) Descriptor {
	d := Descriptor{
		Name:        BackendMediaKeys,
		Description: fmt.Sprintf("hardware media key injection via %s", tool),
	}
	if goos == "darwin" {
		d.Detail = "not supported on macOS, use applescript"
		return d
	}
	if path, err := lookPath(tool); err == nil {
		d.Available = true
		d.Detail = path
	} else {
		d.Detail = fmt.Sprintf("%s not found on PATH", tool)
	}
	return d
}

func probeAppleScript(goos string, lookPath lookPathFunc) Descriptor {
	d := Descriptor{
		Name:        BackendAppleScript,
		Description: "Music and Spotify scripting (macOS)",
	}
	if goos != "darwin" {
		d.Detail = fmt.Sprintf("requires macOS, running on %s", goos)
		return d
	}
	if path, err := lookPath("osascript"); err == nil {
		d.Available = true
		d.Detail = path
	} else {
		d.Detail = "osascript not found on PATH"
	}
	return d
}

// Select builds the controller named by the configuration. The auto method
// probes backends in platform preference order and takes the first available
// one. Explicitly selecting an unavailable backend returns an error instead
// of degrading, so a misconfigured host fails loudly.
func Select(cfg *config.Config, logger *slog.Logger) (Controller, error) {
	return selectController(cfg, logger, runtime.GOOS, exec.LookPath)
}

func selectController(cfg *config.Config, logger *slog.Logger, goos string, lookPath lookPathFunc) (Controller, error) {
	method := cfg.Player.Method
	if method == BackendAuto {
		for _, name := range autoOrder(goos) {
			if descriptorFor(name, cfg, goos, lookPath).Available {
				method = name
				break
			}
		}
		if method == BackendAuto {
			return nil, fmt.Errorf("no media backend available on %s", goos)
		}
	}

	desc := descriptorFor(method, cfg, goos, lookPath)
	if desc.Name == "" {
		return nil, fmt.Errorf("unknown player method %q", method)
	}
	if !desc.Available {
		return nil, fmt.Errorf("backend %s unavailable: %s", method, desc.Detail)
	}

	switch method {
	case BackendMPRIS:
		return NewMPRISController(logger)
	case BackendMediaKeys:
		return NewKeyController(logger, cfg.Player.KeyTool), nil
	case BackendAppleScript:
		return NewAppleScriptController(logger), nil
	}
	return nil, fmt.Errorf("unknown player method %q", method)
}

func autoOrder(goos string) []string {
	if goos == "darwin" {
		return []string{BackendAppleScript, BackendMediaKeys}
	}
	return []string{BackendMPRIS, BackendMediaKeys}
}

func descriptorFor(name string, cfg *config.Config, goos string, lookPath lookPathFunc) Descriptor {
	switch name {
	case BackendMPRIS:
		return probeMPRIS(goos)
	case BackendMediaKeys:
		return probeMediaKeys(cfg.Player.KeyTool, goos, lookPath)
	case BackendAppleScript:
		return probeAppleScript(goos, lookPath)
	}
	return Descriptor{}
}
