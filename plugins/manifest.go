package plugins

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/cssplugins/internal/plugin"
)

// Manifest describes a declarative plugin loaded from YAML. Config holds the
// defaults user config is merged over.
type Manifest struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name,omitempty" yaml:"name,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string        `json:"version" yaml:"version"`
	Config      plugin.Config `json:"config,omitempty" yaml:"config,omitempty"`
}

// Normalized returns a trimmed, copy-on-write variant of the manifest.
func (m Manifest) Normalized() Manifest {
	clone := Manifest{
		ID:          strings.TrimSpace(m.ID),
		Name:        strings.TrimSpace(m.Name),
		Description: strings.TrimSpace(m.Description),
		Version:     strings.TrimSpace(m.Version),
	}
	if len(m.Config) > 0 {
		clone.Config = make(plugin.Config, len(m.Config))
		for key, value := range m.Config {
			trimmed := strings.TrimSpace(key)
			if trimmed == "" {
				continue
			}
			clone.Config[trimmed] = value
		}
	}
	return clone
}

// Validate ensures the manifest is well-formed.
func (m Manifest) Validate() error {
	normalized := m.Normalized()
	if normalized.ID == "" {
		return fmt.Errorf("plugin: id is required")
	}
	if normalized.Version == "" {
		return fmt.Errorf("plugin %s: version is required", normalized.ID)
	}
	return nil
}

// ParseManifestYAML decodes and validates a single manifest payload.
func ParseManifestYAML(data []byte) (Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Manifest{}, fmt.Errorf("plugin: manifest payload is empty")
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("plugin: decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m.Normalized(), nil
}

// LoadManifestFile reads a YAML manifest from disk.
func LoadManifestFile(path string) (Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("plugin: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Manifest{}, fmt.Errorf("plugin: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("plugin: read %s: %w", path, err)
	}
	m, err := ParseManifestYAML(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("plugin: %s: %w", path, err)
	}
	return m, nil
}

func loadManifestPlugin(name, path string, cfg plugin.Config) (plugin.Instance, error) {
	m, err := LoadManifestFile(path)
	if err != nil {
		return nil, err
	}
	info := plugin.Info{
		ID:          name,
		Name:        m.Name,
		Description: m.Description,
		Version:     m.Version,
		Source:      filepath.Clean(path),
	}
	if info.Name == "" {
		info.Name = m.ID
	}
	return newDynamicInstance(info, mergeConfigs(m.Config, cfg)), nil
}

// mergeConfigs overlays override keys onto base. Neither input is modified.
func mergeConfigs(base, override plugin.Config) plugin.Config {
	merged := make(plugin.Config, len(base)+len(override))
	for k, v := range base.Clone() {
		merged[k] = v
	}
	for k, v := range override.Clone() {
		if key := strings.TrimSpace(k); key != "" {
			merged[key] = v
		}
	}
	return merged
}
