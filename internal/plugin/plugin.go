package plugin

import (
	"fmt"
	"strings"
)

// Well-known values for Info.Source.
const (
	SourceBuiltin = "builtin"
	SourcePackage = "package"
)

// Info describes a plugin instance's identity and where it came from.
type Info struct {
	ID          string
	Name        string
	Description string
	Version     string
	// Source is SourceBuiltin, SourcePackage, or the resolved file path of a
	// dynamically loaded plugin.
	Source string
}

// Validate ensures the info block is well-formed.
func (i Info) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("plugin: id is required")
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("plugin: name is required for %s", i.ID)
	}
	if strings.TrimSpace(i.Version) == "" {
		return fmt.Errorf("plugin: version is required for %s", i.ID)
	}
	return nil
}

// Instance is a configured plugin ready to be handed to the CSS pipeline.
type Instance interface {
	Info() Info
	// Options returns a copy of the configuration the plugin was built with.
	Options() Config
}

// Base provides Info and Options for plugin implementations.
type Base struct {
	info    Info
	options Config
}

// NewBase seeds the helper with plugin info and a private copy of options.
func NewBase(info Info, options Config) Base {
	return Base{info: info, options: options.Clone()}
}

// Info implements Instance.Info.
func (b *Base) Info() Info {
	return b.info
}

// Options implements Instance.Options.
func (b *Base) Options() Config {
	return b.options.Clone()
}
