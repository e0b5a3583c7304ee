// Package postcss assembles the ordered list of PostCSS plugin instances for
// a build: the built-in plugins with user overrides merged over their
// defaults, followed by any extra plugins users name in their options.
package postcss

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kingrea/cssplugins/internal/builtins"
	"github.com/kingrea/cssplugins/internal/logging"
	"github.com/kingrea/cssplugins/internal/option"
	"github.com/kingrea/cssplugins/internal/plugin"
	"github.com/kingrea/cssplugins/internal/resolve"
	"github.com/kingrea/cssplugins/plugins"
)

// Request carries the build geometry and the per-plugin options. Zero
// geometry values are treated as absent.
type Request struct {
	DesignWidth   float64
	DeviceRatio   float64
	PostcssOption *option.PostcssOption
}

// LoadFunc turns a resolved module file into a plugin instance.
type LoadFunc func(name, path string, cfg plugin.Config) (plugin.Instance, error)

// Resolver builds plugin lists. It holds no per-call state and is safe for
// concurrent use.
type Resolver struct {
	// AppPath is the application root local plugins and node_modules lookups
	// are relative to.
	AppPath string
	// Builtins provides the autoprefixer, pxtransform, cssModules and
	// constparse factories.
	Builtins *plugin.Registry
	// Packages holds plugins compiled into the binary. Package names found
	// here skip the filesystem lookup.
	Packages *plugin.Registry
	Modules  *resolve.Resolver
	Load     LoadFunc
	Logger   *logging.Logger
}

// New returns a Resolver rooted at appPath with the built-in plugins
// registered and the default module loader.
func New(appPath string, logger *logging.Logger) *Resolver {
	reg := plugin.NewRegistry()
	builtins.RegisterBuiltins(reg)
	return &Resolver{
		AppPath:  appPath,
		Builtins: reg,
		Packages: plugin.NewRegistry(),
		Modules:  &resolve.Resolver{},
		Load:     plugins.Load,
		Logger:   logger.With("postcss"),
	}
}

// Resolve returns the plugin instances for req in pipeline order:
// autoprefixer, pxtransform, cssModules, constparse, then enabled dynamic
// plugins in option order. Failures are logged and the offending plugin
// omitted; the result always holds at least constparse.
func (r *Resolver) Resolve(req Request) []plugin.Instance {
	opts := req.PostcssOption
	list := make([]plugin.Instance, 0, 4+opts.Len())

	autoprefixerOption := option.MergeDefaults(defaultAutoprefixerOption(), opts.Get(builtins.AutoprefixerID))

	// Request geometry is applied after the merge and wins over user values.
	pxtransformOption := option.MergeDefaults(defaultPxtransformOption(), opts.Get(builtins.PxtransformID))
	if pxtransformOption.Config == nil && (req.DesignWidth != 0 || req.DeviceRatio != 0) {
		pxtransformOption.Config = plugin.Config{}
	}
	if req.DesignWidth != 0 {
		pxtransformOption.Config["designWidth"] = req.DesignWidth
	}
	if req.DeviceRatio != 0 {
		pxtransformOption.Config["deviceRatio"] = req.DeviceRatio
	}
	cssModulesOption := option.MergeDefaults(defaultCSSModulesOption(), opts.Get(builtins.CSSModulesID))

	if autoprefixerOption.Enabled() {
		list = r.appendBuiltin(list, builtins.AutoprefixerID, autoprefixerOption.Config)
	}
	if pxtransformOption.Enabled() {
		list = r.appendBuiltin(list, builtins.PxtransformID, pxtransformOption.Config)
	}
	if cssModulesOption.Enabled() {
		cfg := cssModulesOption.Config
		// A user option replaces the default naming pattern instead of
		// merging with it.
		if custom := opts.Get(builtins.CSSModulesID); custom != nil {
			cfg = custom.Config.Clone()
			if cfg == nil {
				cfg = plugin.Config{}
			}
		}
		list = r.appendBuiltin(list, builtins.CSSModulesID, cfg)
	}
	list = r.appendBuiltin(list, builtins.ConstparseID, defaultConstparseConfig())

	for _, name := range opts.Names() {
		if IsKnown(name) {
			continue
		}
		pluginOption := opts.Get(name)
		if !pluginOption.Enabled() {
			continue
		}
		cfg := pluginOption.Config.Clone()
		if cfg == nil {
			cfg = plugin.Config{}
		}
		instance, err := r.loadDynamic(name, cfg)
		if err != nil {
			if errors.Is(err, resolve.ErrModuleNotFound) {
				r.Logger.Warnf("missing postcss plugin %s, ignored", name)
			} else {
				r.Logger.Error(err, "load postcss plugin %s", name)
			}
			continue
		}
		list = append(list, instance)
	}
	return list
}

func (r *Resolver) appendBuiltin(list []plugin.Instance, id string, cfg plugin.Config) []plugin.Instance {
	instance, err := r.builtinRegistry().Resolve(id, cfg)
	if err != nil {
		r.Logger.Error(err, "build postcss plugin %s", id)
		return list
	}
	if checker, ok := instance.(builtins.OptionsChecker); ok {
		if err := checker.OptionsErr(); err != nil {
			r.Logger.Warnf("postcss plugin %s has unchecked options: %v", id, err)
		}
	}
	return append(list, instance)
}

func (r *Resolver) loadDynamic(name string, cfg plugin.Config) (instance plugin.Instance, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			instance, err = nil, fmt.Errorf("postcss: plugin %s panicked: %v", name, recovered)
		}
	}()
	isPackage := resolve.IsPackage(name)
	if isPackage && r.Packages.Has(name) {
		return r.Packages.Resolve(name, cfg)
	}
	appPath, err := filepath.Abs(r.AppPath)
	if err != nil {
		return nil, fmt.Errorf("postcss: app path %s: %w", r.AppPath, err)
	}
	if strings.TrimSpace(name) == "" {
		return nil, &resolve.NotFoundError{Name: name, BaseDir: appPath}
	}
	target := name
	if !isPackage {
		target = filepath.Join(appPath, name)
	}
	result := r.modules().Lookup(target, appPath)
	if result.Status != resolve.Found {
		return nil, result.Err
	}
	r.Logger.Debugf("resolved postcss plugin %s to %s", name, result.Path)
	load := r.Load
	if load == nil {
		load = plugins.Load
	}
	instance, err = load(name, result.Path, cfg)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, fmt.Errorf("postcss: loader returned no instance for %s", name)
	}
	return instance, nil
}

var fallbackBuiltins = func() *plugin.Registry {
	reg := plugin.NewRegistry()
	builtins.RegisterBuiltins(reg)
	return reg
}()

func (r *Resolver) builtinRegistry() *plugin.Registry {
	if r.Builtins == nil {
		return fallbackBuiltins
	}
	return r.Builtins
}

func (r *Resolver) modules() *resolve.Resolver {
	if r.Modules == nil {
		return &resolve.Resolver{}
	}
	return r.Modules
}
