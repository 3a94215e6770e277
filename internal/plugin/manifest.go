package plugin

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Manifest is the static plugin metadata consumed by the host loader and the
// packaging builder.
type Manifest struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	EntryPoint   string   `json:"entry_point"`
	Author       string   `json:"author,omitempty"`
	Description  string   `json:"description,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// Load reads and validates a manifest.json file.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if err := manifest.Validate(); err != nil {
		return Manifest{}, err
	}
	return manifest, nil
}

// Validate checks the fields the host loader requires.
func (m Manifest) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if strings.TrimSpace(m.EntryPoint) == "" {
		return fmt.Errorf("manifest: entry_point is required")
	}
	return nil
}

// Save writes the manifest as indented JSON.
func (m Manifest) Save(path string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
