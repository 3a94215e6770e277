// Package journal persists observed playback state changes in SQLite. Each
// state transition becomes an append-only event; the newest event serves as
// the current now-playing projection. The journal is capped at a configured
// number of events.
package journal
