package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInstance struct {
	Base
}

func newStub(id string, cfg Config) Factory {
	return func(Config) (Instance, error) {
		return &stubInstance{Base: NewBase(Info{ID: id, Name: id, Version: "1.0.0", Source: SourceBuiltin}, cfg)}, nil
	}
}

func TestRegistryRegisterAndResolve(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("b", newStub("b", nil)))
	require.NoError(t, reg.Register("a", newStub("a", Config{"x": 1})))

	assert.Equal(t, []string{"a", "b"}, reg.IDs())
	assert.True(t, reg.Has("a"))
	assert.False(t, reg.Has("missing"))

	inst, err := reg.Resolve("a", nil)
	require.NoError(t, err)
	assert.Equal(t, "a", inst.Info().ID)
	assert.Equal(t, Config{"x": 1}, inst.Options())
}

func TestRegistryRejectsDuplicatesAndEmpty(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("a", newStub("a", nil)))
	assert.Error(t, reg.Register("a", newStub("a", nil)))
	assert.Error(t, reg.Register("", newStub("x", nil)))
	assert.Error(t, reg.Register("nil-factory", nil))
	assert.Panics(t, func() { reg.MustRegister("a", newStub("a", nil)) })
}

func TestRegistryResolveFailures(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("boom")
	reg.MustRegister("failing", func(Config) (Instance, error) { return nil, boom })
	reg.MustRegister("nil", func(Config) (Instance, error) { return nil, nil })
	reg.MustRegister("no-version", func(cfg Config) (Instance, error) {
		return &stubInstance{Base: NewBase(Info{ID: "no-version", Name: "x"}, cfg)}, nil
	})

	_, err := reg.Resolve("unknown", nil)
	assert.ErrorContains(t, err, "unknown id")
	_, err = reg.Resolve("failing", nil)
	assert.ErrorIs(t, err, boom)
	_, err = reg.Resolve("nil", nil)
	assert.ErrorContains(t, err, "returned nil")
	_, err = reg.Resolve("no-version", nil)
	assert.ErrorContains(t, err, "version is required")
}

func TestNilRegistry(t *testing.T) {
	var reg *Registry
	assert.False(t, reg.Has("a"))
	assert.Nil(t, reg.IDs())
	_, err := reg.Resolve("a", nil)
	assert.Error(t, err)
}

func TestConfigCloneIsDeep(t *testing.T) {
	src := Config{
		"browsers":  []any{"iOS >= 6"},
		"nested":    map[string]any{"k": "v"},
		"constants": []map[string]any{{"key": "a"}},
		"names":     []string{"x"},
	}
	clone := src.Clone()
	clone["browsers"].([]any)[0] = "changed"
	clone["nested"].(map[string]any)["k"] = "changed"
	clone["constants"].([]map[string]any)[0]["key"] = "changed"
	clone["names"].([]string)[0] = "changed"

	assert.Equal(t, "iOS >= 6", src["browsers"].([]any)[0])
	assert.Equal(t, "v", src["nested"].(map[string]any)["k"])
	assert.Equal(t, "a", src["constants"].([]map[string]any)[0]["key"])
	assert.Equal(t, "x", src["names"].([]string)[0])
	assert.Nil(t, Config(nil).Clone())
}

func TestConfigDecode(t *testing.T) {
	var out struct {
		Browsers []string `yaml:"browsers"`
		Width    float64  `yaml:"designWidth"`
	}
	cfg := Config{"browsers": []any{"iOS >= 6"}, "designWidth": 750}
	require.NoError(t, cfg.Decode(&out))
	assert.Equal(t, []string{"iOS >= 6"}, out.Browsers)
	assert.Equal(t, 750.0, out.Width)
}

func TestBaseOptionsAreCopies(t *testing.T) {
	src := Config{"nested": map[string]any{"k": "v"}}
	base := NewBase(Info{ID: "a", Name: "a", Version: "1"}, src)
	src["nested"].(map[string]any)["k"] = "changed"
	got := base.Options()
	assert.Equal(t, "v", got["nested"].(map[string]any)["k"])
	got["extra"] = true
	_, ok := base.Options()["extra"]
	assert.False(t, ok)
}
