// Package daemon coordinates the long-running mediabridge process.
//
// It wires configuration, the playback journal, the playlist registry, and
// the selected media backend into a single lifecycle with flock-based locking
// to prevent multiple instances. A background watcher polls the backend for
// playback state and journals every transition.
//
// Keep orchestration logic here: backend behavior lives in internal/media and
// the daemon focuses on startup, shutdown, and high level coordination.
package daemon
