package plugins

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/kingrea/cssplugins/internal/plugin"
)

const (
	goPluginFuncName = "Plugin"
	goInfoFuncName   = "PluginInfo"
)

// loadGoPlugin interprets a package main file declaring
// Plugin(map[string]any) (map[string]any[, error]) and calls it with cfg.
// An optional PluginInfo() map[string]any supplies name, version and
// description.
func loadGoPlugin(name, path string, cfg plugin.Config) (plugin.Instance, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plugin: read %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(code))) == 0 {
		return nil, fmt.Errorf("plugin: %s is empty", path)
	}
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("plugin: load stdlib symbols: %w", err)
	}
	if _, err := i.EvalPath(path); err != nil {
		return nil, fmt.Errorf("plugin: interpret %s: %w", path, err)
	}
	fnValue, err := i.Eval(goPluginFuncName)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s must define %s(map[string]any) (map[string]any, error): %w", path, goPluginFuncName, err)
	}
	options, err := invokePluginFunc(fnValue, cfg)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s: %w", path, err)
	}
	info := plugin.Info{ID: name, Name: name, Version: defaultDynamicVersion, Source: path}
	if infoValue, err := i.Eval(goInfoFuncName); err == nil {
		meta, err := invokeInfoFunc(infoValue)
		if err != nil {
			return nil, fmt.Errorf("plugin: %s: %w", path, err)
		}
		applyInfo(&info, meta)
	}
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("plugin: %s: %w", path, err)
	}
	return newDynamicInstance(info, options), nil
}

func invokePluginFunc(value reflect.Value, cfg plugin.Config) (plugin.Config, error) {
	if !value.IsValid() {
		return nil, fmt.Errorf("missing %s function", goPluginFuncName)
	}
	fn := value
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%s is not a function", goPluginFuncName)
	}
	if fn.Type().NumIn() != 1 {
		return nil, fmt.Errorf("%s must take a single map[string]any argument", goPluginFuncName)
	}
	arg := reflect.ValueOf(map[string]any(cfg.Clone()))
	if !arg.Type().AssignableTo(fn.Type().In(0)) {
		return nil, fmt.Errorf("%s must take map[string]any, got %s", goPluginFuncName, fn.Type().In(0))
	}
	results := fn.Call([]reflect.Value{arg})
	if len(results) == 0 || len(results) > 2 {
		return nil, fmt.Errorf("%s must return (map[string]any[, error])", goPluginFuncName)
	}
	if len(results) == 2 {
		if err := resultError(results[1]); err != nil {
			return nil, err
		}
	}
	return toConfig(results[0])
}

func invokeInfoFunc(value reflect.Value) (map[string]any, error) {
	if value.Kind() != reflect.Func || value.Type().NumIn() != 0 {
		return nil, fmt.Errorf("%s must be a func() map[string]any", goInfoFuncName)
	}
	results := value.Call(nil)
	if len(results) != 1 {
		return nil, fmt.Errorf("%s must return map[string]any", goInfoFuncName)
	}
	return toConfig(results[0])
}

func resultError(value reflect.Value) error {
	if !value.IsValid() || isNilValue(value) {
		return nil
	}
	if e, ok := value.Interface().(error); ok && e != nil {
		return e
	}
	return fmt.Errorf("%s returned non-error second value", goPluginFuncName)
}

func toConfig(value reflect.Value) (plugin.Config, error) {
	if !value.IsValid() || isNilValue(value) {
		return plugin.Config{}, nil
	}
	if m, ok := value.Interface().(map[string]any); ok {
		return plugin.Config(m).Clone(), nil
	}
	if value.Kind() == reflect.Map && value.Type().Key().Kind() == reflect.String {
		out := make(plugin.Config, value.Len())
		iter := value.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected map[string]any, got %s", value.Type())
}

func isNilValue(value reflect.Value) bool {
	switch value.Kind() {
	case reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.Func, reflect.Chan:
		return value.IsNil()
	default:
		return false
	}
}

func applyInfo(info *plugin.Info, meta map[string]any) {
	if v, ok := meta["name"].(string); ok && strings.TrimSpace(v) != "" {
		info.Name = strings.TrimSpace(v)
	}
	if v, ok := meta["version"].(string); ok && strings.TrimSpace(v) != "" {
		info.Version = strings.TrimSpace(v)
	}
	if v, ok := meta["description"].(string); ok {
		info.Description = strings.TrimSpace(v)
	}
}
