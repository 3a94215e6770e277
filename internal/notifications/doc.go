// Package notifications delivers daemon events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Track-change and error notifications can be gated independently.
//
// Extend this package if you need alternative transports; daemon code depends
// only on the simple Service interface.
package notifications
