package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 480, c.Window.Width)
	assert.Equal(t, 320, c.Window.Height)
	assert.Equal(t, 60, c.Window.TPS)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "", c.Assets.Catalog)
	assert.Equal(t, "proggy", c.Assets.LabelFont)
	assert.Equal(t, 2*time.Second, c.Markers.RiseDuration)
	assert.Equal(t, float32(2), c.Pick.HoverLevel)
	assert.Equal(t, float32(3), c.Pick.FocusLevel)
	assert.Equal(t, 300*time.Millisecond, c.Pick.Duration)
	assert.Equal(t, 0.5, c.Pick.Threshold)
	assert.Equal(t, 8.0, c.Camera.ScaleX)
	assert.Equal(t, 3.0, c.Camera.ScaleY)
	assert.Equal(t, 3.0, c.Camera.ScaleZ)
	assert.Equal(t, time.Second, c.Camera.Duration)
	assert.Equal(t, 500*time.Millisecond, c.Ambient.Debounce)
	assert.Equal(t, 2000, c.Ambient.StarCount)
}

func TestDefaultMatchesLoad(t *testing.T) {
	isolate(t)
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, c, Default())
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "globe.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
level = "debug"

[pick]
threshold = 0.3
duration = "150ms"

[ambient]
star_count = 500
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 0.3, c.Pick.Threshold)
	assert.Equal(t, 150*time.Millisecond, c.Pick.Duration)
	assert.Equal(t, 500, c.Ambient.StarCount)
	// Untouched keys keep their defaults.
	assert.Equal(t, float32(3), c.Pick.FocusLevel)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "globe.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log": {"level": "debug"}}`), 0o644))
	t.Setenv("LIGHTGLOBE_LOG_LEVEL", "error")
	t.Setenv("LIGHTGLOBE_CAMERA_SCALE_X", "6")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", c.Log.Level)
	assert.Equal(t, 6.0, c.Camera.ScaleX)
}

func TestDotEnvFiles(t *testing.T) {
	isolate(t)
	t.Setenv("LIGHTGLOBE_ASSETS_TEXTURE", "")
	os.Unsetenv("LIGHTGLOBE_ASSETS_TEXTURE")

	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(env, []byte("LIGHTGLOBE_ASSETS_TEXTURE=earth.jpg\n"), 0o644))

	c, err := Load("", filepath.Join(dir, "missing.env"), env)
	require.NoError(t, err)
	assert.Equal(t, "earth.jpg", c.Assets.Texture)
}

func TestValidate(t *testing.T) {
	isolate(t)
	base, err := Load("")
	require.NoError(t, err)
	require.NoError(t, base.Validate())

	bad := []func(*Config){
		func(c *Config) { c.Window.Width = 0 },
		func(c *Config) { c.Window.TPS = 0 },
		func(c *Config) { c.Pick.HoverLevel = -1 },
		func(c *Config) { c.Pick.Threshold = 0 },
		func(c *Config) { c.Ambient.Debounce = -time.Second },
		func(c *Config) { c.Ambient.StarCount = -1 },
	}
	for i, mutate := range bad {
		c := base
		mutate(&c)
		assert.Error(t, c.Validate(), "case %d", i)
	}
}
