package playlist

import "time"

// Track is a single entry in a playlist.
type Track struct {
	// Location is the media URI or file path as written in the playlist.
	Location string
	// Title is the display title from the EXTINF directive, if present.
	Title string
	// Duration is the declared track length. Zero means undeclared.
	Duration time.Duration
}

// Playlist is an immutable snapshot of one playlist file.
type Playlist struct {
	// Name is the playlist file name without its extension.
	Name string
	// Path is the absolute location of the playlist file.
	Path string
	// Tracks holds the playlist entries in file order.
	Tracks []Track
}

// TrackCount returns the number of entries in the playlist.
func (p Playlist) TrackCount() int {
	return len(p.Tracks)
}
