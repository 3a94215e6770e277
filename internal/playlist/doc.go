// Package playlist discovers M3U playlists in a configured directory and
// hands them to the platform's default media player. Lookups are case
// insensitive and the registry can rescan on demand or on filesystem change.
package playlist
