// Package plugin models the manifest contract between a packaged plugin and
// its host loader. The host unpacks an archive into plugins/<Name>/ and reads
// manifest.json to locate the entry point.
package plugin
