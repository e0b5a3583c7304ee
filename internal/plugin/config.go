package plugin

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is a plugin's free-form configuration (opaque to the resolver).
type Config map[string]any

// Clone returns a deep copy of the config. Nested maps and slices are copied
// so callers can mutate the result without touching the source.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for key, value := range c {
		out[key] = cloneValue(value)
	}
	return out
}

// Decode converts the config into a typed options struct using its yaml tags.
func (c Config) Decode(out any) error {
	if len(c) == 0 {
		return nil
	}
	payload, err := yaml.Marshal(map[string]any(c))
	if err != nil {
		return fmt.Errorf("plugin: encode config: %w", err)
	}
	if err := yaml.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("plugin: decode config: %w", err)
	}
	return nil
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case Config:
		return v.Clone()
	case map[string]any:
		return map[string]any(Config(v).Clone())
	case map[any]any:
		out := make(map[any]any, len(v))
		for key, item := range v {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), v...)
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, item := range v {
			out[i] = map[string]any(Config(item).Clone())
		}
		return out
	default:
		return v
	}
}
