package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

type traversal int

const (
	next traversal = iota
	prev
)

// Client is a managed top-level X window.
type Client struct {
	link [2]*Client
	xWin xp.Window

	// rect is the last geometry sent to the X server. placed is false until
	// the first configure, so that the first Refresh always reaches X.
	rect   xp.Rectangle
	placed bool
}

// Window returns the client's X window.
func (c *Client) Window() xp.Window {
	return c.xWin
}

// ClientSet is the ordered ring of managed clients and the focus within it.
// The ring order is the layout order: the first client is the first main
// client.
type ClientSet struct {
	dummy   Client // The anchor of a doubly-linked list of clients.
	focused *Client
	n       int
}

func NewClientSet() *ClientSet {
	cs := &ClientSet{}
	cs.dummy.link[next] = &cs.dummy
	cs.dummy.link[prev] = &cs.dummy
	return cs
}

func (cs *ClientSet) Len() int {
	return cs.n
}

// Focused returns the focused client, or nil if there are no clients.
func (cs *ClientSet) Focused() *Client {
	return cs.focused
}

func (cs *ClientSet) Find(xWin xp.Window) *Client {
	for c := cs.dummy.link[next]; c != &cs.dummy; c = c.link[next] {
		if c.xWin == xWin {
			return c
		}
	}
	return nil
}

// Insert adds xWin after the focused client and focuses it. Inserting an
// already managed window only focuses it.
func (cs *ClientSet) Insert(xWin xp.Window) *Client {
	if c := cs.Find(xWin); c != nil {
		cs.focused = c
		return c
	}
	previous := cs.dummy.link[prev]
	if cs.focused != nil {
		previous = cs.focused
	}
	c := &Client{xWin: xWin}
	c.link[next] = previous.link[next]
	c.link[prev] = previous
	c.link[next].link[prev] = c
	c.link[prev].link[next] = c
	cs.focused = c
	cs.n++
	return c
}

// Remove drops xWin from the ring. If it was focused, focus moves to the
// following client, or the preceding one when it was last.
func (cs *ClientSet) Remove(xWin xp.Window) bool {
	c := cs.Find(xWin)
	if c == nil {
		return false
	}
	if cs.focused == c {
		cs.focused = nil
		if c.link[next] != &cs.dummy {
			cs.focused = c.link[next]
		} else if c.link[prev] != &cs.dummy {
			cs.focused = c.link[prev]
		}
	}
	c.link[next].link[prev] = c.link[prev]
	c.link[prev].link[next] = c.link[next]
	*c = Client{}
	cs.n--
	return true
}

func (cs *ClientSet) FocusWindow(xWin xp.Window) bool {
	c := cs.Find(xWin)
	if c == nil {
		return false
	}
	cs.focused = c
	return true
}

func (cs *ClientSet) FocusDown() { cs.traverse(next) }
func (cs *ClientSet) FocusUp()   { cs.traverse(prev) }
func (cs *ClientSet) SwapDown()  { cs.nudge(next) }
func (cs *ClientSet) SwapUp()    { cs.nudge(prev) }

func (cs *ClientSet) traverse(t traversal) {
	if cs.focused == nil {
		return
	}
	c := cs.focused.link[t]
	if c == &cs.dummy {
		c = c.link[t]
	}
	cs.focused = c
}

// nudge moves the focused client one step along the ring, wrapping around
// the anchor.
func (cs *ClientSet) nudge(t traversal) {
	c := cs.focused
	if c == nil || cs.n < 2 {
		return
	}
	cn, cp := c.link[next], c.link[prev]
	cn.link[prev] = cp
	cp.link[next] = cn
	if t == next {
		c.link[next] = cn.link[next]
		c.link[prev] = cn
	} else {
		c.link[next] = cp
		c.link[prev] = cp.link[prev]
	}
	c.link[next].link[prev] = c
	c.link[prev].link[next] = c
}

// Windows returns the managed windows in ring order.
func (cs *ClientSet) Windows() []xp.Window {
	ws := make([]xp.Window, 0, cs.n)
	for c := cs.dummy.link[next]; c != &cs.dummy; c = c.link[next] {
		ws = append(ws, c.xWin)
	}
	return ws
}

func (cs *ClientSet) clients() []*Client {
	s := make([]*Client, 0, cs.n)
	for c := cs.dummy.link[next]; c != &cs.dummy; c = c.link[next] {
		s = append(s, c)
	}
	return s
}
