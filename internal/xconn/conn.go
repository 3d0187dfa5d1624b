// Package xconn talks to the X server on behalf of the window manager. Conn
// implements wm.Conn for the engine, and keys.Resolver and keys.KeyGrabber for
// the key dispatcher.
package xconn

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/rs/zerolog"

	"github.com/lockwm/lockwm/internal/wm"
)

var ErrAnotherWM = errors.New("could not become the window manager: is another window manager running?")

type checker interface {
	Check() error
}

type Conn struct {
	x    *xgb.Conn
	xu   *xgbutil.XUtil
	root xp.Window
	rect xp.Rectangle
	log  zerolog.Logger

	atomWMDeleteWindow xp.Atom
	atomWMProtocols    xp.Atom
	atomWMTakeFocus    xp.Atom

	// protocols caches WM_PROTOCOLS, read when a client is selected.
	protocols map[xp.Window]protocols
	checkers  []checker

	// eventTime is the timestamp of the latest key or button event. It is
	// written by the event reader and read by the event loop.
	eventTime atomic.Uint32
}

var _ wm.Conn = (*Conn)(nil)

// Dial connects to display ("" means $DISPLAY) without taking over as the
// window manager. The check command uses it to resolve keys.
func Dial(display string, log zerolog.Logger) (*Conn, error) {
	x, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect to X: %w", err)
	}
	c, err := setup(x, log)
	if err != nil {
		x.Close()
		return nil, err
	}
	return c, nil
}

// DialWM is Dial followed by selecting SubstructureRedirect on the root
// window. It fails with ErrAnotherWM when some other client holds it.
func DialWM(display string, log zerolog.Logger) (*Conn, error) {
	c, err := Dial(display, log)
	if err != nil {
		return nil, err
	}
	if err := c.becomeTheWM(); err != nil {
		c.x.Close()
		return nil, err
	}
	return c, nil
}

func setup(x *xgb.Conn, log zerolog.Logger) (*Conn, error) {
	if err := xinerama.Init(x); err != nil {
		return nil, fmt.Errorf("xinerama: %w", err)
	}
	xSetup := xp.Setup(x)
	if len(xSetup.Roots) != 1 {
		return nil, fmt.Errorf("X setup has unsupported number of roots: %d", len(xSetup.Roots))
	}
	xScreen := &xSetup.Roots[0]

	xu, err := xgbutil.NewConnXgb(x)
	if err != nil {
		return nil, fmt.Errorf("xgbutil: %w", err)
	}
	keybind.Initialize(xu)

	c := &Conn{
		x:         x,
		xu:        xu,
		root:      xScreen.Root,
		log:       log.With().Str("component", "xconn").Logger(),
		protocols: map[xp.Window]protocols{},
	}
	for _, a := range []struct {
		atom *xp.Atom
		name string
	}{
		{&c.atomWMDeleteWindow, "WM_DELETE_WINDOW"},
		{&c.atomWMProtocols, "WM_PROTOCOLS"},
		{&c.atomWMTakeFocus, "WM_TAKE_FOCUS"},
	} {
		if *a.atom, err = c.internAtom(a.name); err != nil {
			return nil, err
		}
	}

	c.rect = xp.Rectangle{Width: xScreen.WidthInPixels, Height: xScreen.HeightInPixels}
	xine, err := xinerama.QueryScreens(x).Reply()
	if err != nil {
		return nil, fmt.Errorf("query screens: %w", err)
	}
	if len(xine.ScreenInfo) > 0 {
		si := xine.ScreenInfo[0]
		c.rect = xp.Rectangle{X: si.XOrg, Y: si.YOrg, Width: si.Width, Height: si.Height}
	}
	c.log.Debug().
		Int16("x", c.rect.X).Int16("y", c.rect.Y).
		Uint16("width", c.rect.Width).Uint16("height", c.rect.Height).
		Msg("screen")
	return c, nil
}

func (c *Conn) becomeTheWM() error {
	if err := xp.ChangeWindowAttributesChecked(c.x, c.root, xp.CwEventMask, []uint32{
		xp.EventMaskSubstructureRedirect,
	}).Check(); err != nil {
		if _, ok := err.(xp.AccessError); ok {
			return ErrAnotherWM
		}
		return err
	}
	return nil
}

func (c *Conn) internAtom(name string) (xp.Atom, error) {
	r, err := xp.InternAtom(c.x, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	return r.Atom, nil
}

func (c *Conn) check(ck checker) {
	c.checkers = append(c.checkers, ck)
}

// Flush checks every request queued since the last Flush.
func (c *Conn) Flush() error {
	var errs []error
	for i, ck := range c.checkers {
		if err := ck.Check(); err != nil {
			errs = append(errs, err)
		}
		c.checkers[i] = nil
	}
	c.checkers = c.checkers[:0]
	return errors.Join(errs...)
}

func (c *Conn) WaitForEvent() (xgb.Event, error) {
	e, err := c.x.WaitForEvent()
	switch {
	case e == nil && err == nil:
		return nil, wm.ErrConnClosed
	case err != nil:
		return nil, err
	}
	switch e := e.(type) {
	case xp.KeyPressEvent:
		c.eventTime.Store(uint32(e.Time))
	case xp.ButtonPressEvent:
		c.eventTime.Store(uint32(e.Time))
	}
	return e, nil
}

func (c *Conn) Root() xp.Window          { return c.root }
func (c *Conn) ScreenRect() xp.Rectangle { return c.rect }

// Shutdown closes the connection to the X server.
func (c *Conn) Shutdown() { c.x.Close() }

func (c *Conn) TopLevelWindows() ([]xp.Window, error) {
	tree, err := xp.QueryTree(c.x, c.root).Reply()
	if err != nil {
		return nil, err
	}
	var ws []xp.Window
	for _, w := range tree.Children {
		attrs, err := xp.GetWindowAttributes(c.x, w).Reply()
		if err != nil {
			continue
		}
		if attrs.OverrideRedirect || attrs.MapState == xp.MapStateUnmapped {
			continue
		}
		ws = append(ws, w)
	}
	return ws, nil
}

func (c *Conn) Select(xWin xp.Window) {
	c.protocols[xWin] = c.readProtocols(xWin)
	c.check(xp.ChangeWindowAttributesChecked(c.x, xWin, xp.CwEventMask,
		[]uint32{xp.EventMaskEnterWindow | xp.EventMaskStructureNotify},
	))
}

func (c *Conn) readProtocols(xWin xp.Window) protocols {
	prop, err := xp.GetProperty(c.x, false, xWin, c.atomWMProtocols,
		xp.GetPropertyTypeAny, 0, 64).Reply()
	if err != nil {
		c.log.Warn().Err(err).Uint32("window", uint32(xWin)).Msg("read WM_PROTOCOLS")
		return protocols{}
	}
	return protocols{
		deleteWindow: hasAtom(prop.Value, c.atomWMDeleteWindow),
		takeFocus:    hasAtom(prop.Value, c.atomWMTakeFocus),
	}
}

func (c *Conn) Map(xWin xp.Window) {
	c.check(xp.MapWindowChecked(c.x, xWin))
}

func (c *Conn) Raise(xWin xp.Window) {
	c.check(xp.ConfigureWindowChecked(c.x, xWin, xp.ConfigWindowStackMode,
		[]uint32{xp.StackModeAbove}))
}

func (c *Conn) Configure(xWin xp.Window, r xp.Rectangle, border uint16) {
	c.check(xp.ConfigureWindowChecked(c.x, xWin,
		xp.ConfigWindowX|
			xp.ConfigWindowY|
			xp.ConfigWindowWidth|
			xp.ConfigWindowHeight|
			xp.ConfigWindowBorderWidth,
		[]uint32{
			uint32(uint16(r.X)),
			uint32(uint16(r.Y)),
			uint32(r.Width),
			uint32(r.Height),
			uint32(border),
		}))
}

func (c *Conn) SetBorderColor(xWin xp.Window, color uint32) {
	c.check(xp.ChangeWindowAttributesChecked(c.x, xWin, xp.CwBorderPixel, []uint32{color}))
}

func (c *Conn) Focus(xWin xp.Window) {
	if xWin == xp.WindowNone {
		c.check(xp.SetInputFocusChecked(c.x, xp.InputFocusPointerRoot,
			xp.Window(xp.InputFocusPointerRoot), xp.Timestamp(c.eventTime.Load())))
		return
	}
	if c.protocols[xWin].takeFocus {
		c.sendClientMessage(xWin, c.atomWMTakeFocus)
	}
	c.check(xp.SetInputFocusChecked(c.x, xp.InputFocusParent, xWin, xp.Timestamp(c.eventTime.Load())))
}

func (c *Conn) Close(xWin xp.Window) {
	if c.protocols[xWin].deleteWindow {
		c.sendClientMessage(xWin, c.atomWMDeleteWindow)
		return
	}
	c.check(xp.KillClientChecked(c.x, uint32(xWin)))
}

func (c *Conn) sendClientMessage(xWin xp.Window, atom xp.Atom) {
	c.check(xp.SendEventChecked(c.x, false, xWin, xp.EventMaskNoEvent,
		string(xp.ClientMessageEvent{
			Format: 32,
			Window: xWin,
			Type:   c.atomWMProtocols,
			Data: xp.ClientMessageDataUnionData32New([]uint32{
				uint32(atom),
				c.eventTime.Load(),
				0,
				0,
				0,
			}),
		}.Bytes()),
	))
}

func (c *Conn) SendConfigureNotify(xWin xp.Window, r xp.Rectangle, border uint16) {
	cne := xp.ConfigureNotifyEvent{
		Event:       xWin,
		Window:      xWin,
		X:           r.X,
		Y:           r.Y,
		Width:       r.Width,
		Height:      r.Height,
		BorderWidth: border,
	}
	c.check(xp.SendEventChecked(c.x, false, xWin,
		xp.EventMaskStructureNotify, string(cne.Bytes())))
}

func (c *Conn) ForwardConfigureRequest(e xp.ConfigureRequestEvent) {
	mask, values := configureValues(e)
	c.check(xp.ConfigureWindowChecked(c.x, e.Window, mask, values))
}
