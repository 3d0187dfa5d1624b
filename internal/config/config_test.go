package config

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, file string) (*Config, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	l, err := NewLoader()
	require.NoError(t, err)
	return l.Load(file)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, "")
	require.NoError(t, err)

	d := DefaultConfig()
	assert.Equal(t, d.Appearance, cfg.Appearance)
	assert.Equal(t, d.Layout, cfg.Layout)
	assert.Equal(t, "A-g", cfg.Keys.Unlock)
	assert.Equal(t, d.Bindings.Fallback, cfg.Bindings.Fallback)
	assert.Equal(t, d.Bindings.Locked, cfg.Bindings.Locked)
	assert.Empty(t, cfg.Bindings.Resize)
	assert.Equal(t, []string{"fallback", "locked", "normal"}, slices.Sorted(maps.Keys(cfg.Bindings.Tables())))
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[appearance]
border_width = 3
focused_border = "#ff0000"

[keys]
unlock = "M-Escape"

[[bindings.locked]]
key = "M-Escape"
action = "toggle-lock"

[[bindings.locked]]
key = "A-Return"
action = "spawn xterm"

[[bindings.resize]]
key = "h"
action = "shrink-main"
`)
	cfg, err := load(t, path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Appearance.BorderWidth)
	assert.Equal(t, "#ff0000", cfg.Appearance.FocusedBorder)
	assert.Equal(t, bg1, cfg.Appearance.NormalBorder, "untouched keys keep their defaults")
	assert.Equal(t, "M-Escape", cfg.Keys.Unlock)
	assert.Equal(t, []Binding{{"M-Escape", "toggle-lock"}, {"A-Return", "spawn xterm"}}, cfg.Bindings.Locked)
	assert.Equal(t, []Binding{{"h", "shrink-main"}}, cfg.Bindings.Resize)
	assert.Equal(t, DefaultConfig().Bindings.Normal, cfg.Bindings.Normal)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("LOCKWM_LOG_LEVEL", "debug")
	t.Setenv("LOCKWM_KEYS_FOCUS_FOLLOWS_MOUSE", "true")
	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Keys.FocusFollowsMouse)
}

func TestLoad_Errors(t *testing.T) {
	_, err := load(t, filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "read config file")

	_, err = load(t, writeConfig(t, "[layout\n"))
	assert.ErrorContains(t, err, "read config file")

	_, err = load(t, writeConfig(t, `
[logging]
format = "xml"

[appearance]
normal_border = "gray"

[layout]
layouts = ["spiral"]
ratio = 1.5

[[bindings.move]]
key = "A-h"
`))
	require.Error(t, err)
	for _, want := range []string{"logging.format", "appearance.normal_border", `unknown layout "spiral"`, "layout.ratio", "bindings.move[0]"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor(aqua)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x8ec07c), c)

	for _, bad := range []string{"", "8ec07c", "#8ec07", "#zzzzzz"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/lockwm", dir)
}
