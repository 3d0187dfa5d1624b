package wm

import (
	"errors"
	"fmt"
	"reflect"

	xp "github.com/BurntSushi/xgb/xproto"
)

var ErrNoExtension = errors.New("wm: no such extension")

// State is the window manager state handed to hooks and actions.
type State struct {
	Clients *ClientSet
	Layouts *LayoutStack

	BorderWidth   uint16
	FocusedBorder uint32
	NormalBorder  uint32

	extensions map[reflect.Type]any
}

func newState(cfg *Config) *State {
	layouts := cfg.Layouts
	if layouts == nil {
		layouts = NewLayoutStack()
	}
	return &State{
		Clients:       NewClientSet(),
		Layouts:       layouts,
		BorderWidth:   cfg.BorderWidth,
		FocusedBorder: cfg.FocusedBorder,
		NormalBorder:  cfg.NormalBorder,
		extensions:    map[reflect.Type]any{},
	}
}

// AddExtension stores v, keyed by its dynamic type. A later value of the same
// type replaces it.
func (s *State) AddExtension(v any) {
	if s.extensions == nil {
		s.extensions = map[reflect.Type]any{}
	}
	s.extensions[reflect.TypeOf(v)] = v
}

// Extension returns the extension of type T stored in s.
func Extension[T any](s *State) (T, error) {
	v, ok := s.extensions[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrNoExtension, reflect.TypeFor[T]())
	}
	return v.(T), nil
}

// Refresh lays the clients out with the current layout and updates borders,
// stacking and input focus to match the state.
func (s *State) Refresh(x Conn) {
	cs := s.Clients.clients()
	rects := s.Layouts.Current().Arrange(x.ScreenRect(), len(cs))
	focused := s.Clients.Focused()
	for i, c := range cs {
		r := inset(rects[i], s.BorderWidth)
		if !c.placed || c.rect != r {
			c.rect, c.placed = r, true
			x.Configure(c.xWin, r, s.BorderWidth)
		}
		color := s.NormalBorder
		if c == focused {
			color = s.FocusedBorder
		}
		x.SetBorderColor(c.xWin, color)
	}
	if focused == nil {
		x.Focus(xp.WindowNone)
		return
	}
	x.Raise(focused.xWin)
	x.Focus(focused.xWin)
}

// inset converts an outer rectangle into the geometry X expects for a window
// with the given border width, which X draws outside of width and height.
func inset(r xp.Rectangle, border uint16) xp.Rectangle {
	if 2*border >= r.Width || 2*border >= r.Height {
		return r
	}
	r.Width -= 2 * border
	r.Height -= 2 * border
	return r
}
