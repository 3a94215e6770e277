package playlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"mediabridge/internal/logging"
)

// ErrNotFound indicates the requested playlist is not in the registry.
var ErrNotFound = errors.New("playlist not found")

// openerFunc launches a playlist file in the default media player. Tests
// substitute a recorder.
type openerFunc func(ctx context.Context, opener string, path string) error

func execOpener(ctx context.Context, opener string, path string) error {
	return exec.CommandContext(ctx, opener, path).Start()
}

// Registry holds the playlists discovered in the playlist directory. Lookups
// are case insensitive so a spoken or typed name matches regardless of how
// the file was capitalized.
type Registry struct {
	logger *slog.Logger
	dir    string
	opener string
	launch openerFunc
	folder cases.Caser

	mu        sync.RWMutex
	playlists map[string]Playlist
}

// NewRegistry builds a registry over the given directory and performs an
// initial scan. A missing directory yields an empty registry, not an error,
// so a fresh install works before any playlist exists.
func NewRegistry(logger *slog.Logger, dir string, opener string) (*Registry, error) {
	r := &Registry{
		logger: logging.NewComponentLogger(logger, "playlist"),
		dir:    dir,
		opener: opener,
		launch: execOpener,
		folder: cases.Fold(),
	}
	if err := r.Rescan(); err != nil {
		return nil, err
	}
	return r, nil
}

// Dir returns the directory the registry scans.
func (r *Registry) Dir() string { return r.dir }

// Rescan rebuilds the registry from the *.m3u files currently on disk.
// Unreadable files are logged and skipped so one bad playlist does not hide
// the rest.
func (r *Registry) Rescan() error {
	matches, err := filepath.Glob(filepath.Join(r.dir, "*.m3u"))
	if err != nil {
		return fmt.Errorf("scan playlist directory: %w", err)
	}

	playlists := make(map[string]Playlist, len(matches))
	for _, path := range matches {
		pl, err := LoadM3U(path)
		if err != nil {
			r.logger.Warn("skipping unreadable playlist",
				logging.String("path", path), logging.Error(err))
			continue
		}
		playlists[r.folder.String(pl.Name)] = pl
	}

	r.mu.Lock()
	r.playlists = playlists
	r.mu.Unlock()

	r.logger.Debug("playlist registry rebuilt",
		logging.String("dir", r.dir), logging.Int("count", len(playlists)))
	return nil
}

// Names returns the playlist names sorted case-insensitively.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.playlists))
	for _, pl := range r.playlists {
		names = append(names, pl.Name)
	}
	r.mu.RUnlock()

	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// All returns every playlist sorted by name.
func (r *Registry) All() []Playlist {
	r.mu.RLock()
	playlists := make([]Playlist, 0, len(r.playlists))
	for _, pl := range r.playlists {
		playlists = append(playlists, pl)
	}
	r.mu.RUnlock()

	sort.Slice(playlists, func(i, j int) bool {
		return strings.ToLower(playlists[i].Name) < strings.ToLower(playlists[j].Name)
	})
	return playlists
}

// Get looks up a playlist by name, ignoring case.
func (r *Registry) Get(name string) (Playlist, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pl, ok := r.playlists[r.folder.String(strings.TrimSpace(name))]
	return pl, ok
}

// Start hands the named playlist to the platform opener, which launches it
// in the default media player. The opener is started and not awaited; the
// player owns the playback session from there.
func (r *Registry) Start(ctx context.Context, name string) (Playlist, error) {
	pl, ok := r.Get(name)
	if !ok {
		return Playlist{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if _, err := os.Stat(pl.Path); err != nil {
		return Playlist{}, fmt.Errorf("playlist file missing: %w", err)
	}
	if err := r.launch(ctx, r.opener, pl.Path); err != nil {
		return Playlist{}, fmt.Errorf("open playlist with %s: %w", r.opener, err)
	}
	r.logger.Info("playlist started",
		logging.String(logging.FieldPlaylist, pl.Name),
		logging.Int("tracks", pl.TrackCount()))
	return pl, nil
}
