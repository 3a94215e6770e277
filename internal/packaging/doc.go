// Package packaging builds the distributable plugin archive. It vendors
// declared dependencies into the archive so the plugin ships with its own
// dependency closure, and keeps the output directory idempotent across
// builds.
package packaging
