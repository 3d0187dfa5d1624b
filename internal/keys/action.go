package keys

import (
	"fmt"
	"os/exec"

	"github.com/lockwm/lockwm/internal/wm"
)

// Action is the behavior bound to a chord.
type Action interface {
	Run(s *wm.State, x wm.Conn) error
	String() string
}

// ActionError wraps the failure of an action run for a key press.
type ActionError struct {
	Action string
	Chord  Chord
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %s (%v): %v", e.Action, e.Chord, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

type action struct {
	name string
	run  func(s *wm.State, x wm.Conn) error
}

func (a *action) Run(s *wm.State, x wm.Conn) error { return a.run(s, x) }
func (a *action) String() string                   { return a.name }

// Func wraps f as a named action.
func Func(name string, f func(s *wm.State, x wm.Conn) error) Action {
	return &action{name: name, run: f}
}

// Spawn starts argv without waiting for it to finish. Only a failure to start
// is reported.
func Spawn(argv ...string) Action {
	return Func(fmt.Sprintf("spawn %q", argv), func(*wm.State, wm.Conn) error {
		if len(argv) == 0 {
			return fmt.Errorf("spawn: empty command")
		}
		c := exec.Command(argv[0], argv[1:]...)
		if err := c.Start(); err != nil {
			return fmt.Errorf("could not start command %q: %w", argv, err)
		}
		// Ignore any error from the program itself.
		go c.Wait()
		return nil
	})
}

// Modify applies f to the window manager state and refreshes the screen.
func Modify(name string, f func(s *wm.State)) Action {
	return Func(name, func(s *wm.State, x wm.Conn) error {
		f(s)
		s.Refresh(x)
		return nil
	})
}

// SendLayoutMessage delivers m to the current layout, refreshing the screen
// if the layout changed.
func SendLayoutMessage(name string, m wm.Message) Action {
	return Func(name, func(s *wm.State, x wm.Conn) error {
		if s.Layouts.Send(m) {
			s.Refresh(x)
		}
		return nil
	})
}

// KillFocused asks the focused client to close.
func KillFocused() Action {
	return Func("kill", func(s *wm.State, x wm.Conn) error {
		if c := s.Clients.Focused(); c != nil {
			x.Close(c.Window())
		}
		return nil
	})
}

// Exit stops the window manager.
func Exit() Action {
	return Func("exit", func(*wm.State, wm.Conn) error {
		return wm.ErrExit
	})
}

// NoOp is a placeholder for a binding whose behavior is not written yet. It
// keeps the chord grabbed so the key press does not leak to the focused
// client.
func NoOp(name string) Action {
	if name != "" {
		name = " " + name
	}
	return Func("noop"+name, func(*wm.State, wm.Conn) error {
		return nil
	})
}
