package builtins

import (
	"github.com/kingrea/cssplugins/internal/plugin"
)

// Constant is a single key/value substitution.
type Constant struct {
	Key string `yaml:"key" validate:"required"`
	Val string `yaml:"val"`
}

// ConstparseOptions lists the constants substituted into stylesheets.
type ConstparseOptions struct {
	Constants []Constant `yaml:"constants" validate:"unique=Key,dive"`
	Platform  string     `yaml:"platform,omitempty"`
}

// Constparse replaces constant references with their values.
type Constparse struct {
	plugin.Base
	optionsCheck
	settings ConstparseOptions
}

// NewConstparse builds the constant-substitution plugin.
func NewConstparse(cfg plugin.Config) *Constparse {
	var opts ConstparseOptions
	err := decodeOptions(ConstparseID, cfg, &opts)
	return &Constparse{
		Base:         plugin.NewBase(builtinInfo(ConstparseID, "Constant Parse", "Substitutes build-time constants such as the tab bar height."), cfg),
		optionsCheck: optionsCheck{err: err},
		settings:     opts,
	}
}

// Settings returns the decoded options.
func (c *Constparse) Settings() ConstparseOptions {
	clone := c.settings
	clone.Constants = append([]Constant(nil), c.settings.Constants...)
	return clone
}

// Lookup returns the value of the constant named key.
func (c *Constparse) Lookup(key string) (string, bool) {
	for _, constant := range c.settings.Constants {
		if constant.Key == key {
			return constant.Val, true
		}
	}
	return "", false
}
