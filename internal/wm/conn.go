package wm

import (
	"errors"

	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"
)

var ErrConnClosed = errors.New("wm: X connection closed")

// Conn is the X server as seen by the window manager, its hooks and its
// actions.
//
// Requests that change server state are queued and checked in a batch by
// Flush, which the event loop calls once per iteration.
type Conn interface {
	// WaitForEvent blocks until the next event or error. It returns
	// ErrConnClosed once the connection is gone.
	WaitForEvent() (xgb.Event, error)

	Root() xp.Window
	ScreenRect() xp.Rectangle

	// TopLevelWindows lists mapped, non override-redirect children of the
	// root window, for adopting windows that existed before startup.
	TopLevelWindows() ([]xp.Window, error)

	// Select asks for the structure and crossing events of a client.
	Select(xWin xp.Window)
	Map(xWin xp.Window)
	Raise(xWin xp.Window)
	Configure(xWin xp.Window, r xp.Rectangle, border uint16)
	SetBorderColor(xWin xp.Window, color uint32)
	// Focus gives xWin the input focus; xp.WindowNone focuses the root.
	Focus(xWin xp.Window)
	// Close asks xWin to close via WM_DELETE_WINDOW, or kills its client
	// when it does not take part in that protocol.
	Close(xWin xp.Window)

	SendConfigureNotify(xWin xp.Window, r xp.Rectangle, border uint16)
	ForwardConfigureRequest(e xp.ConfigureRequestEvent)

	Flush() error
}
