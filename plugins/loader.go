package plugins

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kingrea/cssplugins/internal/plugin"
)

// ErrUnsupportedExtension reports a resolved file the loader cannot evaluate.
var ErrUnsupportedExtension = errors.New("plugin: unsupported file extension")

const defaultDynamicVersion = "0.0.0"

// Load evaluates the plugin file at path and invokes it with cfg. name is the
// key the user configured the plugin under and becomes the instance ID.
func Load(name, path string, cfg plugin.Config) (plugin.Instance, error) {
	if cfg == nil {
		cfg = plugin.Config{}
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".go":
		return loadGoPlugin(name, path, cfg)
	case ".yaml", ".yml":
		return loadManifestPlugin(name, path, cfg)
	default:
		return nil, fmt.Errorf("%w %q (%s)", ErrUnsupportedExtension, ext, path)
	}
}

type dynamicInstance struct {
	plugin.Base
}

func newDynamicInstance(info plugin.Info, options plugin.Config) *dynamicInstance {
	return &dynamicInstance{Base: plugin.NewBase(info, options)}
}
