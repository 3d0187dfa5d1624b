package keys

import (
	"fmt"
	"strings"
)

type Mode int

const (
	Normal Mode = iota
	Locked
	Resize
	Move
	Focus
)

// Modes lists every mode, in declaration order.
var Modes = []Mode{Normal, Locked, Resize, Move, Focus}

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Locked:
		return "locked"
	case Resize:
		return "resize"
	case Move:
		return "move"
	case Focus:
		return "focus"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}
