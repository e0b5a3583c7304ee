package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/cssplugins/internal/plugin"
)

const sampleManifest = `id: postcss-theme
version: 1.0.0
name: Theme Variables
description: Injects theme custom properties.
config:
  primary: "#1aad19"
  dark: false
`

func TestParseManifestYAML(t *testing.T) {
	m, err := ParseManifestYAML([]byte(sampleManifest))
	require.NoError(t, err)
	assert.Equal(t, "postcss-theme", m.ID)
	assert.Equal(t, "Theme Variables", m.Name)
	assert.Equal(t, plugin.Config{"primary": "#1aad19", "dark": false}, m.Config)
}

func TestParseManifestYAMLErrors(t *testing.T) {
	tests := map[string]string{
		"empty":           "",
		"missing id":      "version: 1.0.0\n",
		"missing version": "id: theme\n",
		"not yaml":        "id: [\n",
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseManifestYAML([]byte(payload))
			assert.Error(t, err)
		})
	}
}

func TestLoadManifestPluginMergesConfig(t *testing.T) {
	path := writePlugin(t, "theme.yaml", sampleManifest)
	user := plugin.Config{"dark": true, "accent": "#fff"}
	inst, err := Load("theme", path, user)
	require.NoError(t, err)

	assert.Equal(t, "theme", inst.Info().ID)
	assert.Equal(t, "Theme Variables", inst.Info().Name)
	assert.Equal(t, "1.0.0", inst.Info().Version)
	assert.Equal(t, plugin.Config{"primary": "#1aad19", "dark": true, "accent": "#fff"}, inst.Options())
	assert.Equal(t, plugin.Config{"dark": true, "accent": "#fff"}, user)
}

func TestLoadManifestNameFallsBackToID(t *testing.T) {
	path := writePlugin(t, "bare.yml", "id: bare\nversion: 0.1.0\n")
	inst, err := Load("./bare", path, nil)
	require.NoError(t, err)
	assert.Equal(t, "bare", inst.Info().Name)
	assert.Empty(t, inst.Options())
}

func TestLoadManifestFileMissing(t *testing.T) {
	_, err := LoadManifestFile("/does/not/exist.yaml")
	assert.ErrorContains(t, err, "stat")
	_, err = LoadManifestFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")
}
