// Package deps probes the external tools mediabridge depends on.
//
// Backends shell out to platform utilities (key injectors, osascript, file
// openers) rather than linking platform SDKs, so availability is a runtime
// question. The selector and the daemon status surface both consume the
// Status reports produced here.
package deps
