// Package wmtest provides an in-memory wm.Conn for tests.
package wmtest

import (
	"sync"

	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/lockwm/lockwm/internal/wm"
)

// Conn records requests instead of talking to an X server. Events queued
// with Push are returned by WaitForEvent in order; once they run out and
// Hangup has been called, WaitForEvent reports wm.ErrConnClosed.
type Conn struct {
	Screen   xp.Rectangle
	Existing []xp.Window

	mu      sync.Mutex
	events  chan xgb.Event
	Mapped  []xp.Window
	Closed  []xp.Window
	Raised  []xp.Window
	Focused xp.Window
	Rects   map[xp.Window]xp.Rectangle
	Borders map[xp.Window]uint32
	Flushes int
}

func NewConn() *Conn {
	return &Conn{
		Screen:  xp.Rectangle{Width: 1000, Height: 800},
		events:  make(chan xgb.Event, 64),
		Rects:   map[xp.Window]xp.Rectangle{},
		Borders: map[xp.Window]uint32{},
	}
}

var _ wm.Conn = (*Conn)(nil)

func (c *Conn) Push(evs ...xgb.Event) {
	for _, e := range evs {
		c.events <- e
	}
}

// Hangup makes WaitForEvent report wm.ErrConnClosed after the queued events.
func (c *Conn) Hangup() {
	close(c.events)
}

func (c *Conn) WaitForEvent() (xgb.Event, error) {
	e, ok := <-c.events
	if !ok {
		return nil, wm.ErrConnClosed
	}
	return e, nil
}

func (c *Conn) Root() xp.Window          { return 1 }
func (c *Conn) ScreenRect() xp.Rectangle { return c.Screen }

func (c *Conn) TopLevelWindows() ([]xp.Window, error) {
	return c.Existing, nil
}

func (c *Conn) Select(xp.Window) {}

func (c *Conn) Map(w xp.Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Mapped = append(c.Mapped, w)
}

func (c *Conn) Raise(w xp.Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Raised = append(c.Raised, w)
}

func (c *Conn) Configure(w xp.Window, r xp.Rectangle, _ uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Rects[w] = r
}

func (c *Conn) SetBorderColor(w xp.Window, color uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Borders[w] = color
}

func (c *Conn) Focus(w xp.Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Focused = w
}

func (c *Conn) Close(w xp.Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Closed = append(c.Closed, w)
}

func (c *Conn) SendConfigureNotify(xp.Window, xp.Rectangle, uint16) {}

func (c *Conn) ForwardConfigureRequest(xp.ConfigureRequestEvent) {}

func (c *Conn) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Flushes++
	return nil
}

// FocusedWindow returns the window last given the input focus.
func (c *Conn) FocusedWindow() xp.Window {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Focused
}
