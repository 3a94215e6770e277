// Package config loads, normalizes, and validates mediabridge configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NTFY_TOPIC. The Config type centralizes every knob the daemon and CLI need:
// playlist and log directories, backend selection, packaging locations, and
// notification settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
