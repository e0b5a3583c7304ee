package postcss

import (
	"github.com/kingrea/cssplugins/internal/builtins"
	"github.com/kingrea/cssplugins/internal/option"
	"github.com/kingrea/cssplugins/internal/plugin"
)

// Names with built-in defaults. Every other postcss key is a dynamic plugin.
var optionsWithDefaults = map[string]struct{}{
	builtins.AutoprefixerID: {},
	builtins.PxtransformID:  {},
	builtins.CSSModulesID:   {},
}

// The defaults are rebuilt on every call so no caller can observe another
// call's geometry or overrides.

func defaultAutoprefixerOption() option.PluginOption {
	return option.Enabled(plugin.Config{
		"browsers": []any{"Android >= 4", "iOS >= 6"},
		"flexbox":  "no-2009",
	})
}

func defaultPxtransformOption() option.PluginOption {
	return option.Enabled(plugin.Config{
		"platform": builtins.DefaultPlatform,
	})
}

func defaultCSSModulesOption() option.PluginOption {
	return option.Disabled(plugin.Config{
		"generateScopedName": "[name]__[local]___[hash:base64:5]",
	})
}

func defaultConstparseConfig() plugin.Config {
	return plugin.Config{
		"constants": []any{
			map[string]any{"key": "taro-tabbar-height", "val": "50PX"},
		},
		"platform": builtins.DefaultPlatform,
	}
}

// IsKnown reports whether name has built-in defaults.
func IsKnown(name string) bool {
	_, ok := optionsWithDefaults[name]
	return ok
}
