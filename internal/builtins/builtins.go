// Package builtins provides the PostCSS plugins every build carries:
// autoprefixer, pxtransform, cssModules and constparse.
//
// Each factory decodes its free-form config into a typed options struct and
// validates it. The raw config is kept as the instance's options even when
// decoding or validation fails; the problems are reported through
// OptionsChecker.
package builtins

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/kingrea/cssplugins/internal/plugin"
)

// Plugin identifiers, matching the keys users put under `postcss:`.
const (
	AutoprefixerID = "autoprefixer"
	PxtransformID  = "pxtransform"
	CSSModulesID   = "cssModules"
	ConstparseID   = "constparse"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RegisterBuiltins installs all of the built-in plugin factories into the
// provided registry.
func RegisterBuiltins(reg *plugin.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(AutoprefixerID, factory(NewAutoprefixer))
	reg.MustRegister(PxtransformID, factory(NewPxtransform))
	reg.MustRegister(CSSModulesID, factory(NewCSSModules))
	reg.MustRegister(ConstparseID, factory(NewConstparse))
}

// OptionsChecker is implemented by every built-in instance.
type OptionsChecker interface {
	// OptionsErr returns the decode and validation problems found in the
	// config, or nil.
	OptionsErr() error
}

type optionsCheck struct {
	err error
}

func (c optionsCheck) OptionsErr() error {
	return c.err
}

func factory[T plugin.Instance](build func(plugin.Config) T) plugin.Factory {
	return func(cfg plugin.Config) (plugin.Instance, error) {
		return build(cfg), nil
	}
}

// decodeOptions fills out from cfg as far as the values allow. Mismatched
// fields keep their zero value.
func decodeOptions(id string, cfg plugin.Config, out any) error {
	var errs []error
	if err := cfg.Decode(out); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", id, err))
	}
	if err := validate.Struct(out); err != nil {
		errs = append(errs, fmt.Errorf("%s: invalid options: %w", id, err))
	}
	return errors.Join(errs...)
}

func builtinInfo(id, name, description string) plugin.Info {
	return plugin.Info{
		ID:          id,
		Name:        name,
		Description: description,
		Version:     builtinVersion,
		Source:      plugin.SourceBuiltin,
	}
}

const builtinVersion = "1.0.0"
