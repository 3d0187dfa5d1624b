package keys

import (
	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"

	"github.com/lockwm/lockwm/internal/wm"
)

// Dispatcher is the window manager hook that runs key bindings. Its State is
// looked up in the window manager's extension storage on every call.
type Dispatcher struct {
	unlock  Chord
	grabber *Grabber
	log     zerolog.Logger
}

func NewDispatcher(unlock Chord, kg KeyGrabber, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		unlock:  unlock,
		grabber: NewGrabber(unlock, kg),
		log:     log.With().Str("component", "keys").Logger(),
	}
}

func (d *Dispatcher) Unlock() Chord {
	return d.unlock
}

// Startup grabs the chords of the initial mode.
func (d *Dispatcher) Startup(s *wm.State, _ wm.Conn) error {
	ds, err := wm.Extension[*State](s)
	if err != nil {
		return err
	}
	d.log.Info().Stringer("mode", ds.Mode()).Msg("grabbing keys")
	return d.grabber.Bind(ds)
}

// HandleEvent runs the binding for a key press. The unlock chord is checked
// first and toggles the lock in every mode. Key presses with no binding in
// the active table, and all other events, are not consumed.
func (d *Dispatcher) HandleEvent(ev xgb.Event, s *wm.State, x wm.Conn) (bool, error) {
	e, ok := ev.(xp.KeyPressEvent)
	if !ok {
		return false, nil
	}
	c := ChordOf(e)
	if c == d.unlock {
		return true, d.Toggle(s, x)
	}

	ds, err := wm.Extension[*State](s)
	if err != nil {
		return false, err
	}
	a, ok := ds.Lookup(c)
	if !ok {
		d.log.Trace().Stringer("chord", c).Msg("unbound key")
		return false, nil
	}
	d.log.Debug().Stringer("chord", c).Stringer("action", a).Msg("running action")
	if err := a.Run(s, x); err != nil {
		return true, &ActionError{Action: a.String(), Chord: c, Err: err}
	}
	return true, nil
}

// Toggle switches between Normal and Locked and re-grabs the keys.
func (d *Dispatcher) Toggle(s *wm.State, _ wm.Conn) error {
	ds, err := wm.Extension[*State](s)
	if err != nil {
		return err
	}
	m := ds.ToggleLocked()
	d.log.Info().Stringer("mode", m).Msg("mode changed")
	return d.grabber.Bind(ds)
}

// ToggleAction is Toggle as a bindable action.
func (d *Dispatcher) ToggleAction() Action {
	return Func("toggle-lock", d.Toggle)
}

// EnterMode returns an action that switches to m and re-grabs the keys if
// the mode changed.
func (d *Dispatcher) EnterMode(m Mode) Action {
	return Func("mode "+m.String(), func(s *wm.State, _ wm.Conn) error {
		ds, err := wm.Extension[*State](s)
		if err != nil {
			return err
		}
		if !ds.SetMode(m) {
			return nil
		}
		d.log.Info().Stringer("mode", m).Msg("mode changed")
		return d.grabber.Bind(ds)
	})
}
