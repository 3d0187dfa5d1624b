package keys_test

import (
	"testing"

	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lockwm/lockwm/internal/keys"
	"github.com/lockwm/lockwm/internal/wm"
	"github.com/lockwm/lockwm/internal/wm/wmtest"
)

type fixture struct {
	d     *keys.Dispatcher
	ds    *keys.State
	s     *wm.State
	x     *wmtest.Conn
	grab  *mockGrabber
	calls *calls
}

// newFixture binds A-j to focus-down and A-g to toggle in Normal, only A-g
// in Locked, and A-q plus A-Escape (back to Normal) in the fallback table.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{x: wmtest.NewConn(), grab: &mockGrabber{}, calls: &calls{}}
	f.d = keys.NewDispatcher(chord(t, "A-g"), f.grab, zerolog.Nop())

	normal, err := keys.BuildTable(us, map[string]keys.Action{
		"A-j": f.calls.action("focus-down"),
		"A-g": f.d.ToggleAction(),
	})
	require.NoError(t, err)
	locked, err := keys.BuildTable(us, map[string]keys.Action{
		"A-g": f.d.ToggleAction(),
	})
	require.NoError(t, err)
	fallback, err := keys.BuildTable(us, map[string]keys.Action{
		"A-q":      f.calls.action("kill"),
		"A-Escape": f.d.EnterMode(keys.Normal),
	})
	require.NoError(t, err)

	f.ds = keys.NewState(map[keys.Mode]*keys.BindingTable{
		keys.Normal: normal,
		keys.Locked: locked,
	}, fallback)
	f.s = wm.New(wm.Config{}, f.x, zerolog.Nop()).State
	f.s.AddExtension(f.ds)
	t.Cleanup(func() { f.grab.AssertExpectations(t) })
	return f
}

func (f *fixture) expectGrab(t *testing.T, descs ...string) {
	t.Helper()
	cs := make([]keys.Chord, len(descs))
	for i, d := range descs {
		cs[i] = chord(t, d)
	}
	f.grab.On("GrabKeys", cs).Return(nil).Once()
}

func (f *fixture) dispatch(t *testing.T, desc string) bool {
	t.Helper()
	consumed, err := f.d.HandleEvent(press(t, desc), f.s, f.x)
	require.NoError(t, err)
	return consumed
}

func TestDispatcher_LockScenario(t *testing.T) {
	f := newFixture(t)

	f.expectGrab(t, "A-g", "A-j")
	require.NoError(t, f.d.Startup(f.s, f.x))

	assert.True(t, f.dispatch(t, "A-j"))
	assert.Equal(t, []string{"focus-down"}, f.calls.names)

	f.expectGrab(t, "A-g")
	assert.True(t, f.dispatch(t, "A-g"))
	assert.Equal(t, keys.Locked, f.ds.Mode())

	assert.False(t, f.dispatch(t, "A-j"), "normal bindings pass through while locked")
	assert.False(t, f.dispatch(t, "A-q"), "fallback bindings pass through while locked")
	assert.Equal(t, []string{"focus-down"}, f.calls.names)

	f.expectGrab(t, "A-g", "A-j")
	assert.True(t, f.dispatch(t, "A-g"))
	assert.Equal(t, keys.Normal, f.ds.Mode())

	assert.True(t, f.dispatch(t, "A-j"))
	assert.Equal(t, []string{"focus-down", "focus-down"}, f.calls.names)
}

func TestDispatcher_UnlockInEveryMode(t *testing.T) {
	for _, m := range keys.Modes {
		t.Run(m.String(), func(t *testing.T) {
			f := newFixture(t)
			f.ds.SetMode(m)

			want := keys.Locked
			if m == keys.Locked {
				want = keys.Normal
				f.expectGrab(t, "A-g", "A-j")
			} else {
				f.expectGrab(t, "A-g")
			}
			assert.True(t, f.dispatch(t, "A-g"))
			assert.Equal(t, want, f.ds.Mode())
		})
	}
}

func TestDispatcher_FallbackModes(t *testing.T) {
	f := newFixture(t)
	f.ds.SetMode(keys.Resize)

	assert.True(t, f.dispatch(t, "A-q"))
	assert.False(t, f.dispatch(t, "A-j"))
	assert.Equal(t, []string{"kill"}, f.calls.names)

	f.expectGrab(t, "A-g", "A-j")
	assert.True(t, f.dispatch(t, "A-Escape"))
	assert.Equal(t, keys.Normal, f.ds.Mode())
}

func TestDispatcher_GrabAfterEnterModeMatchesTable(t *testing.T) {
	f := newFixture(t)
	a := f.d.EnterMode(keys.Move)

	f.expectGrab(t, "A-Escape", "A-q", "A-g")
	require.NoError(t, a.Run(f.s, f.x))
	require.NoError(t, a.Run(f.s, f.x), "re-entering the current mode does not re-grab")
}

func TestDispatcher_PassThrough(t *testing.T) {
	f := newFixture(t)

	for _, ev := range []xgb.Event{
		xp.KeyReleaseEvent{Detail: chord(t, "A-g").Code, State: xp.ModMask1},
		xp.MapRequestEvent{Window: 4},
		xp.ButtonPressEvent{Detail: 1},
	} {
		consumed, err := f.d.HandleEvent(ev, f.s, f.x)
		require.NoError(t, err)
		assert.False(t, consumed)
	}
	assert.False(t, f.dispatch(t, "S-Up"), "unbound keys are not consumed")
	assert.Equal(t, keys.Normal, f.ds.Mode())
}

func TestDispatcher_Errors(t *testing.T) {
	f := newFixture(t)
	failing := keys.Func("spawn", func(*wm.State, wm.Conn) error { return assert.AnError })
	tbl, err := keys.BuildTable(us, map[string]keys.Action{"A-h": failing, "A-Return": keys.Exit()})
	require.NoError(t, err)
	f.s.AddExtension(keys.NewState(map[keys.Mode]*keys.BindingTable{keys.Normal: tbl}, nil))

	consumed, err := f.d.HandleEvent(press(t, "A-h"), f.s, f.x)
	assert.True(t, consumed)
	var aerr *keys.ActionError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "spawn", aerr.Action)
	assert.Equal(t, chord(t, "A-h"), aerr.Chord)
	assert.ErrorIs(t, err, assert.AnError)

	_, err = f.d.HandleEvent(press(t, "A-Return"), f.s, f.x)
	assert.ErrorIs(t, err, wm.ErrExit)

	f.grab.On("GrabKeys", mock.Anything).Return(assert.AnError).Once()
	_, err = f.d.HandleEvent(press(t, "A-g"), f.s, f.x)
	assert.ErrorIs(t, err, assert.AnError, "grab failures are reported")

	empty := wm.New(wm.Config{}, f.x, zerolog.Nop()).State
	_, err = f.d.HandleEvent(press(t, "A-j"), empty, f.x)
	assert.ErrorIs(t, err, wm.ErrNoExtension)
	assert.ErrorIs(t, f.d.Startup(empty, f.x), wm.ErrNoExtension)
}
