// internal/config/config.go
//
// This package loads the build configuration that feeds the PostCSS plugin
// resolver. Every application keeps a postcss.config.yaml in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/cssplugins/internal/option"
	"github.com/kingrea/cssplugins/internal/postcss"
)

const (
	// FileName is the config file looked up in the application root
	FileName = "postcss.config.yaml"

	// PluginsDir holds plugin files registered by file name, relative to the
	// application root
	PluginsDir = ".cssplugins/plugins"

	// AppPathEnv overrides the application root when no directory is given
	AppPathEnv = "CSSPLUGINS_APP_PATH"
)

const defaultConfigYAML = `# cssplugins build configuration
designWidth: 750

# Per-plugin options. autoprefixer, pxtransform and cssModules have built-in
# defaults; any other key is loaded from node_modules or, when it starts with
# "./", from a .go or .yaml file under the application root.
postcss:
  autoprefixer:
    enable: true
  pxtransform:
    enable: true
  cssModules:
    enable: false
  # Example local plugin:
  # ./plugins/banner:
  #   enable: true
  #   config:
  #     text: built by cssplugins
`

var validate = validator.New(validator.WithRequiredStructEnabled())

// BuildConfig models postcss.config.yaml.
type BuildConfig struct {
	DesignWidth float64               `yaml:"designWidth,omitempty" validate:"gte=0"`
	DeviceRatio float64               `yaml:"deviceRatio,omitempty" validate:"gte=0"`
	Postcss     *option.PostcssOption `yaml:"postcss,omitempty"`
}

// Config holds the runtime configuration for a resolution run.
type Config struct {
	// AppPath is the absolute application root
	AppPath string

	Build BuildConfig
}

// NewConfig resolves appPath (falling back to $CSSPLUGINS_APP_PATH, then the
// working directory) and loads its config file if present.
func NewConfig(appPath string) (*Config, error) {
	root := strings.TrimSpace(appPath)
	if root == "" {
		root = strings.TrimSpace(os.Getenv(AppPathEnv))
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("config: determine working directory: %w", err)
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("config: resolve app path %s: %w", root, err)
	}
	cfg := &Config{AppPath: abs, Build: defaultBuildConfig()}
	if err := cfg.loadFile(cfg.ConfigPath(), false); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigPath returns the default on-disk location for the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.AppPath, FileName)
}

// PluginsDir returns the directory scanned for named plugin files.
func (c *Config) PluginsDir() string {
	return filepath.Join(c.AppPath, filepath.FromSlash(PluginsDir))
}

// LoadFile replaces the build config with the contents of path, resolved
// against the app root when relative. Unlike the default file, an explicit
// path must exist.
func (c *Config) LoadFile(path string) error {
	return c.loadFile(resolvePath(c.AppPath, path), true)
}

// Request converts the build config into a resolver request.
func (c *Config) Request() postcss.Request {
	return postcss.Request{
		DesignWidth:   c.Build.DesignWidth,
		DeviceRatio:   c.Build.DeviceRatio,
		PostcssOption: c.Build.Postcss,
	}
}

// Parse decodes and validates a config payload.
func Parse(data []byte) (BuildConfig, error) {
	parsed := defaultBuildConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return BuildConfig{}, fmt.Errorf("config: parse: %w", err)
	}
	parsed.applyDefaults()
	if err := validate.Struct(parsed); err != nil {
		return BuildConfig{}, fmt.Errorf("config: %w", err)
	}
	return parsed, nil
}

// InitConfig writes the default config file into appPath unless one exists.
func InitConfig(appPath string) error {
	path := filepath.Join(appPath, FileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0644)
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	parsed, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%w (%s)", err, path)
	}
	c.Build = parsed
	return nil
}

func defaultBuildConfig() BuildConfig {
	return BuildConfig{Postcss: option.New()}
}

func (bc *BuildConfig) applyDefaults() {
	if bc.Postcss == nil {
		bc.Postcss = option.New()
	}
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
