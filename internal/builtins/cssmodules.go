package builtins

import (
	"github.com/kingrea/cssplugins/internal/plugin"
)

// CSSModulesOptions configures CSS Modules class scoping.
type CSSModulesOptions struct {
	GenerateScopedName string   `yaml:"generateScopedName,omitempty"`
	ScopeBehaviour     string   `yaml:"scopeBehaviour,omitempty" validate:"omitempty,oneof=local global"`
	GlobalModulePaths  []string `yaml:"globalModulePaths,omitempty"`
	HashPrefix         string   `yaml:"hashPrefix,omitempty"`
}

// CSSModules scopes class names per stylesheet.
type CSSModules struct {
	plugin.Base
	optionsCheck
	settings CSSModulesOptions
}

// NewCSSModules builds the CSS Modules plugin. An empty config is valid;
// the pipeline then applies its own naming pattern.
func NewCSSModules(cfg plugin.Config) *CSSModules {
	var opts CSSModulesOptions
	err := decodeOptions(CSSModulesID, cfg, &opts)
	return &CSSModules{
		Base:         plugin.NewBase(builtinInfo(CSSModulesID, "CSS Modules", "Scopes class names to their stylesheet."), cfg),
		optionsCheck: optionsCheck{err: err},
		settings:     opts,
	}
}

// Settings returns the decoded options.
func (m *CSSModules) Settings() CSSModulesOptions {
	clone := m.settings
	clone.GlobalModulePaths = append([]string(nil), m.settings.GlobalModulePaths...)
	return clone
}
