package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestIsPackage(t *testing.T) {
	cases := map[string]bool{
		"postcss-px2rem":   true,
		"@scope/plugin":    true,
		"plugins/local":    true,
		"./plugins/local":  false,
		"../shared/plugin": false,
		"/abs/path/plugin": false,
		".hidden":          false,
		"":                 false,
		"   ":              false,
	}
	for name, want := range cases {
		assert.Equal(t, want, IsPackage(name), name)
	}
}

func TestResolveRelativeFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "plugins", "banner.go"), "package main\n")

	var r Resolver
	path, err := r.Resolve("./plugins/banner", root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "plugins", "banner.go"), path)

	path, err = r.Resolve("./plugins/banner.go", root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "plugins", "banner.go"), path)
}

func TestResolveAbsoluteDirectoryIndex(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "plugins", "theme", "index.yaml"), "id: theme\n")

	var r Resolver
	path, err := r.Resolve(filepath.Join(root, "plugins", "theme"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "plugins", "theme", "index.yaml"), path)
}

func TestResolvePackageMain(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "node_modules", "postcss-banner")
	writeFile(t, filepath.Join(pkgDir, "package.json"), `{
  "name": "postcss-banner",
  "version": "1.2.0",
  "main": "lib/plugin.go"
}`)
	writeFile(t, filepath.Join(pkgDir, "lib", "plugin.go"), "package main\n")

	var r Resolver
	nested := filepath.Join(root, "src", "pages")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	path, err := r.Resolve("postcss-banner", nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(pkgDir, "lib", "plugin.go"), path)
}

func TestResolvePackageMainDirectory(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "node_modules", "@scope", "theme")
	writeFile(t, filepath.Join(pkgDir, "package.json"), `{"main": "dist"}`)
	writeFile(t, filepath.Join(pkgDir, "dist", "index.yml"), "id: theme\n")

	var r Resolver
	path, err := r.Resolve("@scope/theme", root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(pkgDir, "dist", "index.yml"), path)
}

func TestResolvePackageIndexFallback(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "node_modules", "plain")
	writeFile(t, filepath.Join(pkgDir, "package.json"), `{"name": "plain"}`)
	writeFile(t, filepath.Join(pkgDir, "index.go"), "package main\n")

	var r Resolver
	path, err := r.Resolve("plain", root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(pkgDir, "index.go"), path)
}

func TestResolveNotFound(t *testing.T) {
	root := t.TempDir()
	var r Resolver

	_, err := r.Resolve("myPlugin", root)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrModuleNotFound))
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "myPlugin", nf.Name)

	_, err = r.Resolve("./missing", root)
	assert.ErrorIs(t, err, ErrModuleNotFound)

	result := r.Lookup("myPlugin", root)
	assert.Equal(t, NotFound, result.Status)
	assert.Equal(t, "not-found", result.Status.String())
}

func TestResolveMalformedPackageJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "node_modules", "broken", "package.json"), `{"main": [}`)

	var r Resolver
	result := r.Lookup("broken", root)
	assert.Equal(t, Failed, result.Status)
	assert.False(t, errors.Is(result.Err, ErrModuleNotFound))
	assert.ErrorContains(t, result.Err, "parse")
}

func TestResolveCustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "plugin.yml"), "id: x\n")
	writeFile(t, filepath.Join(root, "plugin.go"), "package main\n")

	r := Resolver{Extensions: []string{".yml"}}
	result := r.Lookup("./plugin", root)
	require.Equal(t, Found, result.Status)
	assert.Equal(t, filepath.Join(root, "plugin.yml"), result.Path)
}

func TestResolveEmptyName(t *testing.T) {
	var r Resolver
	result := r.Lookup("  ", t.TempDir())
	assert.Equal(t, Failed, result.Status)
}

func TestNodeModulesPaths(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "app", "node_modules", "pkg")
	dirs := nodeModulesPaths(base)
	assert.Equal(t, filepath.Join(base, "node_modules"), dirs[0])
	assert.NotContains(t, dirs, filepath.Join(string(filepath.Separator), "app", "node_modules", "node_modules"))
	assert.Contains(t, dirs, filepath.Join(string(filepath.Separator), "app", "node_modules"))
	assert.Equal(t, filepath.Join(string(filepath.Separator), "node_modules"), dirs[len(dirs)-1])
}
