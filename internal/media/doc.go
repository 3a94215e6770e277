// Package media defines the playback controller abstraction and its concrete
// backends.
//
// A Controller issues transport commands (play, pause, stop, next, previous)
// and reports the current playback state. Three backends exist: MPRIS drives
// Linux players over the session D-Bus, the media_keys backend injects
// simulated media key presses through an external tool, and the applescript
// backend scripts Music/Spotify on macOS. The selector probes availability
// and picks the best backend for the host, honouring an explicit choice from
// configuration.
//
// Backends never panic on missing players; control calls return errors and
// state reads degrade to the zero PlaybackState.
package media
