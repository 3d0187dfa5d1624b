package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

type orientation int

const (
	horizontal orientation = iota
	vertical
)

// Message is a request sent to the current layout, such as IncMain.
type Message interface {
	layoutMessage()
}

// IncMain changes the number of clients in the main area by its value.
type IncMain int

// ExpandMain grows the main area by one ratio step.
type ExpandMain struct{}

// ShrinkMain shrinks the main area by one ratio step.
type ShrinkMain struct{}

func (IncMain) layoutMessage()    {}
func (ExpandMain) layoutMessage() {}
func (ShrinkMain) layoutMessage() {}

// Layout positions n clients within r. Arrange returns exactly n rectangles,
// in client ring order.
type Layout interface {
	Name() string
	Arrange(r xp.Rectangle, n int) []xp.Rectangle
	// Handle applies m and reports whether the layout changed.
	Handle(m Message) bool
}

// split divides r into n equal parts along o. Rounding is spread across the
// parts, the same way a frame divides itself among its children.
func split(r xp.Rectangle, n int, o orientation) []xp.Rectangle {
	rs := make([]xp.Rectangle, n)
	for i := range rs {
		c := r
		switch o {
		case horizontal:
			i0 := (i + 0) * int(r.Width) / n
			i1 := (i + 1) * int(r.Width) / n
			c.X += int16(i0)
			c.Width = uint16(i1 - i0)
		case vertical:
			i0 := (i + 0) * int(r.Height) / n
			i1 := (i + 1) * int(r.Height) / n
			c.Y += int16(i0)
			c.Height = uint16(i1 - i0)
		}
		rs[i] = c
	}
	return rs
}

type mainPosition int

const (
	mainLeft mainPosition = iota
	mainRight
	mainTop
)

// MainAndStack puts up to MaxMain clients in a main area and stacks the rest
// beside it.
type MainAndStack struct {
	name     string
	position mainPosition
	MaxMain  int
	Ratio    float64
	Step     float64
}

// Side puts the main area on the left.
func Side(maxMain int, ratio, step float64) *MainAndStack {
	return &MainAndStack{name: "side", position: mainLeft, MaxMain: maxMain, Ratio: ratio, Step: step}
}

// SideMirrored puts the main area on the right.
func SideMirrored(maxMain int, ratio, step float64) *MainAndStack {
	return &MainAndStack{name: "side-mirrored", position: mainRight, MaxMain: maxMain, Ratio: ratio, Step: step}
}

// Bottom puts the main area on top and the stack along the bottom.
func Bottom(maxMain int, ratio, step float64) *MainAndStack {
	return &MainAndStack{name: "bottom", position: mainTop, MaxMain: maxMain, Ratio: ratio, Step: step}
}

func (l *MainAndStack) Name() string { return l.name }

func (l *MainAndStack) Arrange(r xp.Rectangle, n int) []xp.Rectangle {
	if n == 0 {
		return nil
	}
	nMain := min(l.MaxMain, n)
	if nMain == 0 || nMain == n {
		o := vertical
		if l.position == mainTop {
			o = horizontal
		}
		return split(r, n, o)
	}

	mainR, stackR := r, r
	switch l.position {
	case mainLeft, mainRight:
		w := uint16(float64(r.Width) * l.Ratio)
		mainR.Width, stackR.Width = w, r.Width-w
		if l.position == mainLeft {
			stackR.X += int16(w)
		} else {
			mainR.X += int16(stackR.Width)
		}
		return append(split(mainR, nMain, vertical), split(stackR, n-nMain, vertical)...)
	default:
		h := uint16(float64(r.Height) * l.Ratio)
		mainR.Height, stackR.Height = h, r.Height-h
		stackR.Y += int16(h)
		return append(split(mainR, nMain, horizontal), split(stackR, n-nMain, horizontal)...)
	}
}

func (l *MainAndStack) Handle(m Message) bool {
	switch m := m.(type) {
	case IncMain:
		n := max(0, l.MaxMain+int(m))
		if n == l.MaxMain {
			return false
		}
		l.MaxMain = n
	case ExpandMain:
		return l.setRatio(l.Ratio + l.Step)
	case ShrinkMain:
		return l.setRatio(l.Ratio - l.Step)
	default:
		return false
	}
	return true
}

func (l *MainAndStack) setRatio(ratio float64) bool {
	ratio = min(max(ratio, l.Step), 1-l.Step)
	if ratio == l.Ratio {
		return false
	}
	l.Ratio = ratio
	return true
}

// Monocle gives every client the whole area. Only the focused client, which
// Refresh raises, is visible.
type Monocle struct{}

func (Monocle) Name() string { return "monocle" }

func (Monocle) Arrange(r xp.Rectangle, n int) []xp.Rectangle {
	rs := make([]xp.Rectangle, n)
	for i := range rs {
		rs[i] = r
	}
	return rs
}

func (Monocle) Handle(Message) bool { return false }

// Gaps wraps a layout with an outer gap around the screen and an inner gap
// around each client.
type Gaps struct {
	Layout
	Outer uint16
	Inner uint16
}

func (g *Gaps) Arrange(r xp.Rectangle, n int) []xp.Rectangle {
	rs := g.Layout.Arrange(shrink(r, g.Outer), n)
	for i := range rs {
		rs[i] = shrink(rs[i], g.Inner)
	}
	return rs
}

// ReserveTop wraps a layout, keeping the top Px pixels free for a bar.
type ReserveTop struct {
	Layout
	Px uint16
}

func (t *ReserveTop) Arrange(r xp.Rectangle, n int) []xp.Rectangle {
	px := min(t.Px, r.Height)
	r.Y += int16(px)
	r.Height -= px
	return t.Layout.Arrange(r, n)
}

func shrink(r xp.Rectangle, px uint16) xp.Rectangle {
	if px == 0 || 2*px >= r.Width || 2*px >= r.Height {
		return r
	}
	r.X += int16(px)
	r.Y += int16(px)
	r.Width -= 2 * px
	r.Height -= 2 * px
	return r
}

// LayoutStack is the cycle of layouts available on the screen.
type LayoutStack struct {
	layouts []Layout
	current int
}

// NewLayoutStack returns a stack whose current layout is the first one. It
// falls back to Monocle when given no layouts.
func NewLayoutStack(layouts ...Layout) *LayoutStack {
	if len(layouts) == 0 {
		layouts = []Layout{Monocle{}}
	}
	return &LayoutStack{layouts: layouts}
}

func (s *LayoutStack) Current() Layout {
	return s.layouts[s.current]
}

func (s *LayoutStack) Next() {
	s.current = (s.current + 1) % len(s.layouts)
}

func (s *LayoutStack) Previous() {
	s.current = (s.current + len(s.layouts) - 1) % len(s.layouts)
}

// Send delivers m to the current layout.
func (s *LayoutStack) Send(m Message) bool {
	return s.Current().Handle(m)
}

// Map wraps every layout with f, for example to add Gaps.
func (s *LayoutStack) Map(f func(Layout) Layout) *LayoutStack {
	for i, l := range s.layouts {
		s.layouts[i] = f(l)
	}
	return s
}
