package main

import (
	"bytes"
	"errors"
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockwm/lockwm/internal/config"
	"github.com/lockwm/lockwm/internal/keys"
	"github.com/lockwm/lockwm/internal/wm"
	"github.com/lockwm/lockwm/internal/wm/wmtest"
)

type keyboard map[string]xp.Keycode

var us = keyboard{
	"Escape": 9, "q": 24, "Return": 36, "g": 42, "h": 43, "j": 44, "k": 45,
	"semicolon": 47, "bracketleft": 34, "bracketright": 35,
	"Up": 111, "Left": 113, "Right": 114, "Down": 116,
}

var errNoKey = errors.New("no such key")

func (kb keyboard) Resolve(desc string) (keys.Chord, error) {
	mask, sym, err := keys.ParseDescriptor(desc)
	if err != nil {
		return keys.Chord{}, err
	}
	code, ok := kb[sym]
	if !ok {
		return keys.Chord{}, errNoKey
	}
	return keys.Chord{Code: code, Mask: mask}, nil
}

func (kb keyboard) Describe(c keys.Chord) string {
	for sym, code := range kb {
		if code == c.Code {
			return keys.FormatDescriptor(c.Mask, sym)
		}
	}
	return c.String()
}

type grabs struct {
	last []keys.Chord
}

func (g *grabs) GrabKeys(cs []keys.Chord) error {
	g.last = cs
	return nil
}

func (g *grabs) described() []string {
	var ds []string
	for _, c := range g.last {
		ds = append(ds, us.Describe(c))
	}
	return ds
}

func chord(t *testing.T, desc string) keys.Chord {
	t.Helper()
	c, err := us.Resolve(desc)
	require.NoError(t, err)
	return c
}

func lookup(t *testing.T, tbl *keys.BindingTable, desc string) string {
	t.Helper()
	a, ok := tbl.Lookup(chord(t, desc))
	if !ok {
		return ""
	}
	return a.String()
}

func TestBuildTables_Defaults(t *testing.T) {
	cfg := config.DefaultConfig()
	d := keys.NewDispatcher(chord(t, cfg.Keys.Unlock), &grabs{}, zerolog.Nop())
	tbls, err := buildTables(cfg.Bindings, us, d)
	require.NoError(t, err)

	assert.Equal(t, 14, tbls.fallback.Len())
	assert.Equal(t, "exit", lookup(t, tbls.fallback, "A-Escape"))

	normal := tbls.byMode[keys.Normal]
	require.NotNil(t, normal)
	assert.Equal(t, 16, normal.Len(), "fallback plus A-g and A-h")
	assert.Equal(t, "focus-down", lookup(t, normal, "A-j"))
	assert.Equal(t, "inc-main -1", lookup(t, normal, "A-S-Down"))
	assert.Equal(t, "noop left-desktop", lookup(t, normal, "A-h"))
	assert.Equal(t, "toggle-lock", lookup(t, normal, "A-g"))

	locked := tbls.byMode[keys.Locked]
	require.NotNil(t, locked)
	assert.Equal(t, 1, locked.Len())
	assert.Equal(t, "", lookup(t, locked, "A-j"))

	for _, m := range []keys.Mode{keys.Resize, keys.Move, keys.Focus} {
		assert.NotContains(t, tbls.byMode, m)
	}
}

func TestBuildTables_Overlay(t *testing.T) {
	d := keys.NewDispatcher(chord(t, "A-g"), &grabs{}, zerolog.Nop())
	tbls, err := buildTables(config.BindingsConfig{
		Fallback: []config.Binding{{Key: "A-S-j", Action: "swap-down"}, {Key: "A-q", Action: "kill"}},
		Normal:   []config.Binding{{Key: "S-A-j", Action: "focus-down"}},
		Resize:   []config.Binding{{Key: "h", Action: "shrink-main"}, {Key: "Escape", Action: "mode normal"}},
	}, us, d)
	require.NoError(t, err)

	normal := tbls.byMode[keys.Normal]
	assert.Equal(t, "focus-down", lookup(t, normal, "A-S-j"), "normal overrides the fallback")
	assert.Equal(t, "kill", lookup(t, normal, "A-q"))
	assert.Equal(t, 0, tbls.byMode[keys.Locked].Len(), "locked always gets its own table")
	assert.Equal(t, "mode normal", lookup(t, tbls.byMode[keys.Resize], "Escape"))
	assert.NotContains(t, tbls.byMode, keys.Move)
}

func TestBuildTables_Errors(t *testing.T) {
	d := keys.NewDispatcher(chord(t, "A-g"), &grabs{}, zerolog.Nop())
	build := func(b config.BindingsConfig) error {
		_, err := buildTables(b, us, d)
		return err
	}

	err := build(config.BindingsConfig{Locked: []config.Binding{{Key: "A-eacute", Action: "kill"}}})
	var rerr *keys.ResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "A-eacute", rerr.Descriptor)
	assert.ErrorContains(t, err, "locked bindings")

	err = build(config.BindingsConfig{Fallback: []config.Binding{{Key: "A-j", Action: "kill"}, {Key: "A-j", Action: "exit"}}})
	assert.ErrorContains(t, err, "fallback bindings")

	err = build(config.BindingsConfig{Move: []config.Binding{{Key: "A-j", Action: "teleport"}}})
	assert.ErrorContains(t, err, `unknown action "teleport"`)

	err = build(config.BindingsConfig{Normal: []config.Binding{{Key: "A-j", Action: "kill"}, {Key: "A-j", Action: "exit"}}})
	assert.ErrorContains(t, err, "bound twice")

	_, err = resolveUnlock("A-eacute", us)
	require.ErrorAs(t, err, &rerr)
	assert.ErrorIs(t, err, errNoKey)
}

// With the default configuration, locking leaves only the unlock chord
// grabbed and every other chord passes through until the next unlock.
func TestDefaults_LockScenario(t *testing.T) {
	cfg := config.DefaultConfig()
	g := &grabs{}
	d := keys.NewDispatcher(chord(t, cfg.Keys.Unlock), g, zerolog.Nop())
	tbls, err := buildTables(cfg.Bindings, us, d)
	require.NoError(t, err)

	wmCfg, err := wmConfig(cfg)
	require.NoError(t, err)
	wmCfg.ComposeOrSetStartupHook(d)
	wmCfg.ComposeOrSetEventHook(d)
	x := wmtest.NewConn()
	m := wm.New(wmCfg, x, zerolog.Nop())
	ks := tbls.state()
	m.State.AddExtension(ks)
	m.State.Clients.Insert(1)
	m.State.Clients.Insert(2)

	require.NoError(t, wmCfg.StartupHook.Startup(m.State, x))
	assert.Len(t, g.last, 16)

	press := func(desc string) bool {
		c := chord(t, desc)
		consumed, err := wmCfg.EventHook.HandleEvent(xp.KeyPressEvent{Detail: c.Code, State: c.Mask}, m.State, x)
		require.NoError(t, err)
		return consumed
	}

	assert.True(t, press("A-j"))
	assert.Equal(t, xp.Window(1), m.State.Clients.Focused().Window())

	assert.True(t, press("A-g"))
	assert.Equal(t, keys.Locked, ks.Mode())
	assert.Equal(t, []string{"A-g"}, g.described())

	assert.False(t, press("A-j"))
	assert.False(t, press("A-q"))
	assert.Equal(t, xp.Window(1), m.State.Clients.Focused().Window())
	assert.Empty(t, x.Closed)

	assert.True(t, press("A-g"))
	assert.Equal(t, keys.Normal, ks.Mode())
	assert.Len(t, g.last, 16)
	assert.True(t, press("A-k"))
	assert.Equal(t, xp.Window(2), m.State.Clients.Focused().Window())
}

func TestPrintTables(t *testing.T) {
	d := keys.NewDispatcher(chord(t, "A-g"), &grabs{}, zerolog.Nop())
	tbls, err := buildTables(config.BindingsConfig{
		Fallback: []config.Binding{{Key: "A-q", Action: "kill"}},
		Locked:   []config.Binding{{Key: "A-g", Action: "toggle-lock"}},
	}, us, d)
	require.NoError(t, err)

	var buf bytes.Buffer
	printTables(&buf, chord(t, "A-g"), tbls, us)
	assert.Equal(t, "unlock\tA-g\n"+
		"\n[normal]\nA-q\tkill\n"+
		"\n[locked]\nA-g\ttoggle-lock\n"+
		"\n[fallback]\nA-q\tkill\n", buf.String())
}

func TestWMConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Appearance.OuterGap = 4
	wmCfg, err := wmConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, uint32(0x8ec07c), wmCfg.FocusedBorder)
	assert.Equal(t, uint32(0x3c3836), wmCfg.NormalBorder)
	assert.Equal(t, uint16(1), wmCfg.BorderWidth)

	var names []string
	for range cfg.Layout.Layouts {
		names = append(names, wmCfg.Layouts.Current().Name())
		wmCfg.Layouts.Next()
	}
	assert.Equal(t, cfg.Layout.Layouts, names)

	rs := wmCfg.Layouts.Current().Arrange(xp.Rectangle{Width: 1000, Height: 800}, 1)
	assert.Equal(t, []xp.Rectangle{{X: 4, Y: 19, Width: 992, Height: 777}}, rs,
		"the bar is reserved before the gaps are applied")

	cfg.Appearance.NormalBorder = "grey"
	_, err = wmConfig(cfg)
	assert.Error(t, err)
}
