package plugins

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kingrea/cssplugins/internal/plugin"
)

// RegisterDir registers every .go, .yaml and .yml file directly under dir as
// a package plugin named after the file without its extension. Registered
// names resolve without a node_modules lookup. A missing directory registers
// nothing.
func RegisterDir(reg *plugin.Registry, dir string) ([]string, error) {
	if reg == nil {
		return nil, nil
	}
	files, err := pluginFiles(dir)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]string, len(files))
	names := make([]string, 0, len(files))
	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("plugin: duplicate plugin %s (%s and %s)", name, existing, path)
		}
		seen[name] = path
		pluginPath := path
		if err := reg.Register(name, func(cfg plugin.Config) (plugin.Instance, error) {
			return Load(name, pluginPath, cfg)
		}); err != nil {
			return nil, fmt.Errorf("plugin: register %s from %s: %w", name, path, err)
		}
		names = append(names, name)
	}
	return names, nil
}

func pluginFiles(dir string) ([]string, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("plugin: read %s: %w", trimmed, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".go", ".yaml", ".yml":
			files = append(files, filepath.Join(trimmed, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
