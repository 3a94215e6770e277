package plugin_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"mediabridge/internal/plugin"
	"mediabridge/internal/testsupport"
)

func TestLoadValidManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	testsupport.WriteFile(t, path, `{
  "name": "MediaPlayer",
  "version": "1.2.0",
  "entry_point": "MediaPlayerPlugin.py",
  "author": "example",
  "dependencies": ["dbus-python"]
}`)

	manifest, err := plugin.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if manifest.Name != "MediaPlayer" {
		t.Errorf("Name = %q", manifest.Name)
	}
	if manifest.EntryPoint != "MediaPlayerPlugin.py" {
		t.Errorf("EntryPoint = %q", manifest.EntryPoint)
	}
	if len(manifest.Dependencies) != 1 || manifest.Dependencies[0] != "dbus-python" {
		t.Errorf("Dependencies = %v", manifest.Dependencies)
	}
}

func TestLoadRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing name", `{"entry_point": "main.py"}`},
		{"missing entry point", `{"name": "MediaPlayer"}`},
		{"blank name", `{"name": "  ", "entry_point": "main.py"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manifest.json")
			testsupport.WriteFile(t, path, tc.content)
			if _, err := plugin.Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	testsupport.WriteFile(t, path, `{"name": `)
	if _, err := plugin.Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRoundTrips(t *testing.T) {
	manifest := plugin.Manifest{
		Name:       "MediaPlayer",
		Version:    "1.2.0",
		EntryPoint: "MediaPlayerPlugin.py",
	}
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := manifest.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := plugin.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, manifest) {
		t.Fatalf("round trip mismatch: %#v", loaded)
	}
}
