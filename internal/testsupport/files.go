package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile creates the target path with the given content, creating parent
// directories as needed.
func WriteFile(t testing.TB, path string, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WritePlaylist creates an extended M3U playlist named <name>.m3u in dir with
// one entry per track location and returns its path.
func WritePlaylist(t testing.TB, dir string, name string, locations ...string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for i, location := range locations {
		fmt.Fprintf(&b, "#EXTINF:-1,Track %d\n%s\n", i+1, location)
	}

	path := filepath.Join(dir, name+".m3u")
	WriteFile(t, path, b.String())
	return path
}
