package playlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	m3uHeader = "#EXTM3U"
	m3uExtInf = "#EXTINF:"
)

// LoadM3U reads one playlist file. The name is the file base name without
// its extension.
func LoadM3U(path string) (Playlist, error) {
	file, err := os.Open(path)
	if err != nil {
		return Playlist{}, fmt.Errorf("open playlist: %w", err)
	}
	defer file.Close()

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	tracks, err := parseM3U(file)
	if err != nil {
		return Playlist{}, fmt.Errorf("parse playlist %s: %w", base, err)
	}
	return Playlist{Name: name, Path: path, Tracks: tracks}, nil
}

// parseM3U reads extended M3U content. The #EXTM3U header is optional; plain
// playlists with one location per line are accepted. Unknown directives and
// blank lines are skipped, and a missing or malformed EXTINF leaves the
// track's title and duration empty.
func parseM3U(r io.Reader) ([]Track, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var tracks []Track
	var pending Track
	hasPending := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == m3uHeader {
			continue
		}
		if strings.HasPrefix(line, m3uExtInf) {
			pending = parseExtInf(strings.TrimPrefix(line, m3uExtInf))
			hasPending = true
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		track := Track{Location: line}
		if hasPending {
			track.Title = pending.Title
			track.Duration = pending.Duration
			hasPending = false
		}
		tracks = append(tracks, track)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}

// parseExtInf decodes the "duration,title" payload of an EXTINF directive.
// A negative or unparseable duration is treated as undeclared.
func parseExtInf(payload string) Track {
	var track Track
	duration, title, found := strings.Cut(payload, ",")
	if !found {
		duration = payload
	}
	track.Title = strings.TrimSpace(title)
	if seconds, err := strconv.Atoi(strings.TrimSpace(duration)); err == nil && seconds > 0 {
		track.Duration = time.Duration(seconds) * time.Second
	}
	return track
}
