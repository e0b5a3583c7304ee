package builtins

import (
	"errors"
	"fmt"

	"github.com/kingrea/cssplugins/internal/plugin"
)

// AutoprefixerOptions mirrors the options autoprefixer accepts.
type AutoprefixerOptions struct {
	Browsers []string `yaml:"browsers,omitempty" validate:"dive,required"`
	// Flexbox is true, false, or "no-2009".
	Flexbox any `yaml:"flexbox,omitempty"`
	// Grid is true, false, "autoplace" or "no-autoplace".
	Grid    any   `yaml:"grid,omitempty"`
	Cascade *bool `yaml:"cascade,omitempty"`
	Add     *bool `yaml:"add,omitempty"`
	Remove  *bool `yaml:"remove,omitempty"`
}

// Autoprefixer adds vendor prefixes for the configured browser list.
type Autoprefixer struct {
	plugin.Base
	optionsCheck
	settings AutoprefixerOptions
}

// NewAutoprefixer builds the autoprefixer plugin.
func NewAutoprefixer(cfg plugin.Config) *Autoprefixer {
	var opts AutoprefixerOptions
	errs := []error{decodeOptions(AutoprefixerID, cfg, &opts)}
	if err := checkFlag("flexbox", opts.Flexbox, "no-2009"); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", AutoprefixerID, err))
	}
	if err := checkFlag("grid", opts.Grid, "autoplace", "no-autoplace"); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", AutoprefixerID, err))
	}
	return &Autoprefixer{
		Base:         plugin.NewBase(builtinInfo(AutoprefixerID, "Autoprefixer", "Adds vendor prefixes to CSS rules."), cfg),
		optionsCheck: optionsCheck{err: errors.Join(errs...)},
		settings:     opts,
	}
}

// Settings returns the decoded options.
func (a *Autoprefixer) Settings() AutoprefixerOptions {
	clone := a.settings
	clone.Browsers = append([]string(nil), a.settings.Browsers...)
	return clone
}

// checkFlag accepts nil, a bool, or one of the allowed keywords.
func checkFlag(name string, value any, keywords ...string) error {
	switch v := value.(type) {
	case nil, bool:
		return nil
	case string:
		for _, keyword := range keywords {
			if v == keyword {
				return nil
			}
		}
		return fmt.Errorf("%s must be a bool or one of %v, got %q", name, keywords, v)
	default:
		return fmt.Errorf("%s must be a bool or one of %v", name, keywords)
	}
}
