package builtins

import (
	"github.com/kingrea/cssplugins/internal/plugin"
)

// Default pxtransform settings applied when the config leaves them unset.
const (
	DefaultPlatform      = "h5"
	DefaultDesignWidth   = 750
	DefaultUnitPrecision = 5
)

// PxtransformOptions configures pixel-unit conversion.
type PxtransformOptions struct {
	Platform          string   `yaml:"platform,omitempty" validate:"omitempty,oneof=h5 weapp swan alipay tt qq jd rn quickapp"`
	DesignWidth       float64  `yaml:"designWidth,omitempty" validate:"gte=0"`
	DeviceRatio       float64  `yaml:"deviceRatio,omitempty" validate:"gte=0"`
	UnitPrecision     int      `yaml:"unitPrecision,omitempty" validate:"gte=0"`
	MinPixelValue     float64  `yaml:"minPixelValue,omitempty" validate:"gte=0"`
	PropList          []string `yaml:"propList,omitempty"`
	SelectorBlackList []string `yaml:"selectorBlackList,omitempty"`
	MediaQuery        bool     `yaml:"mediaQuery,omitempty"`
}

// Pxtransform converts px units for the target platform.
type Pxtransform struct {
	plugin.Base
	optionsCheck
	settings PxtransformOptions
}

// NewPxtransform builds the pxtransform plugin. Unset platform, designWidth,
// unitPrecision and propList take their defaults.
func NewPxtransform(cfg plugin.Config) *Pxtransform {
	var opts PxtransformOptions
	err := decodeOptions(PxtransformID, cfg, &opts)
	if opts.Platform == "" {
		opts.Platform = DefaultPlatform
	}
	if opts.DesignWidth == 0 {
		opts.DesignWidth = DefaultDesignWidth
	}
	if opts.UnitPrecision == 0 {
		opts.UnitPrecision = DefaultUnitPrecision
	}
	if len(opts.PropList) == 0 {
		opts.PropList = []string{"*"}
	}
	return &Pxtransform{
		Base:         plugin.NewBase(builtinInfo(PxtransformID, "Pixel Transform", "Converts px units for the target platform."), cfg),
		optionsCheck: optionsCheck{err: err},
		settings:     opts,
	}
}

// Settings returns the decoded options with defaults applied.
func (p *Pxtransform) Settings() PxtransformOptions {
	clone := p.settings
	clone.PropList = append([]string(nil), p.settings.PropList...)
	clone.SelectorBlackList = append([]string(nil), p.settings.SelectorBlackList...)
	return clone
}
