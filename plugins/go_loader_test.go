package plugins

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/cssplugins/internal/plugin"
)

const goPluginSource = `package main

import "strings"

func PluginInfo() map[string]any {
	return map[string]any{
		"name":        "Banner",
		"version":     "1.2.0",
		"description": "Prepends a banner comment",
	}
}

func Plugin(config map[string]any) (map[string]any, error) {
	text, _ := config["text"].(string)
	return map[string]any{
		"banner": "/* " + strings.ToUpper(text) + " */",
	}, nil
}`

const goPluginNoInfo = `package main

func Plugin(config map[string]any) map[string]any {
	return config
}`

const goPluginFailing = `package main

import "errors"

func Plugin(config map[string]any) (map[string]any, error) {
	return nil, errors.New("bad config")
}`

func writePlugin(t *testing.T, name, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0644))
	return path
}

func TestLoadGoPlugin(t *testing.T) {
	path := writePlugin(t, "banner.go", goPluginSource)
	inst, err := Load("./plugins/banner", path, plugin.Config{"text": "hello"})
	require.NoError(t, err)

	info := inst.Info()
	assert.Equal(t, "./plugins/banner", info.ID)
	assert.Equal(t, "Banner", info.Name)
	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, path, info.Source)
	assert.Equal(t, plugin.Config{"banner": "/* HELLO */"}, inst.Options())
}

func TestLoadGoPluginWithoutInfo(t *testing.T) {
	path := writePlugin(t, "echo.go", goPluginNoInfo)
	inst, err := Load("echo", path, nil)
	require.NoError(t, err)
	assert.Equal(t, "echo", inst.Info().Name)
	assert.Equal(t, defaultDynamicVersion, inst.Info().Version)
	assert.Empty(t, inst.Options())
}

func TestLoadGoPluginFailures(t *testing.T) {
	tests := []struct {
		name   string
		source string
		msg    string
	}{
		{name: "missing func", source: "package main\n", msg: "must define Plugin"},
		{name: "factory error", source: goPluginFailing, msg: "bad config"},
		{name: "syntax error", source: "package main\nfunc Plugin(", msg: "interpret"},
		{name: "wrong signature", source: "package main\nfunc Plugin() map[string]any { return nil }\n", msg: "single map"},
		{name: "empty file", source: "  \n", msg: "empty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writePlugin(t, "broken.go", tc.source)
			_, err := Load("broken", path, nil)
			assert.ErrorContains(t, err, tc.msg)
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writePlugin(t, "plugin.js", "module.exports = () => ({})")
	_, err := Load("plugin", path, nil)
	assert.ErrorIs(t, err, ErrUnsupportedExtension)
}
