// Package option models the enable/config envelope users attach to every
// PostCSS plugin and the merge rules applied against built-in defaults.
package option

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/cssplugins/internal/plugin"
)

// PluginOption is the per-plugin record supplied by users. Nil fields are
// absent and fall back to defaults during MergeDefaults.
type PluginOption struct {
	Enable *bool         `yaml:"enable,omitempty"`
	Config plugin.Config `yaml:"config,omitempty"`
}

// UnmarshalYAML decodes an option record. enable accepts any scalar: false,
// 0, NaN and the empty string disable the plugin, null leaves the flag unset
// and every other value enables it.
func (o *PluginOption) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Enable yaml.Node     `yaml:"enable"`
		Config plugin.Config `yaml:"config"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	enable, err := truthy(&raw.Enable)
	if err != nil {
		return err
	}
	*o = PluginOption{Enable: enable, Config: raw.Config}
	return nil
}

func truthy(node *yaml.Node) (*bool, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("option: enable must be a scalar (line %d)", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("option: enable: %w", err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("option: enable: %w", err)
		}
		return Bool(f != 0 && !math.IsNaN(f)), nil
	default:
		return Bool(node.Value != ""), nil
	}
}

// Enabled reports whether Enable is set and true.
func (o *PluginOption) Enabled() bool {
	return o != nil && o.Enable != nil && *o.Enable
}

// Clone returns a deep copy of the option.
func (o PluginOption) Clone() PluginOption {
	clone := PluginOption{Config: o.Config.Clone()}
	if o.Enable != nil {
		enable := *o.Enable
		clone.Enable = &enable
	}
	return clone
}

// Enabled returns an option with Enable set to true and the given config.
func Enabled(cfg plugin.Config) PluginOption {
	return PluginOption{Enable: Bool(true), Config: cfg}
}

// Disabled returns an option with Enable set to false and the given config.
func Disabled(cfg plugin.Config) PluginOption {
	return PluginOption{Enable: Bool(false), Config: cfg}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// MergeDefaults overlays override onto def. The merge is shallow: a non-nil
// Enable replaces the default flag and a non-nil Config replaces the default
// config wholesale. The result never aliases def or override.
func MergeDefaults(def PluginOption, override *PluginOption) PluginOption {
	merged := def.Clone()
	if override == nil {
		return merged
	}
	if override.Enable != nil {
		enable := *override.Enable
		merged.Enable = &enable
	}
	if override.Config != nil {
		merged.Config = override.Config.Clone()
	}
	return merged
}
