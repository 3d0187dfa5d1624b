package xconn

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

type protocols struct {
	deleteWindow bool
	takeFocus    bool
}

func u32(b []byte) uint32 {
	return uint32(b[0])<<0 | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// hasAtom reports whether the 32-bit property value v lists atom.
func hasAtom(v []byte, atom xp.Atom) bool {
	for ; len(v) >= 4; v = v[4:] {
		if xp.Atom(u32(v)) == atom {
			return true
		}
	}
	return false
}

// configureValues copies the fields a client asked for, in the order
// ConfigureWindow expects them.
func configureValues(e xp.ConfigureRequestEvent) (mask uint16, values []uint32) {
	for _, f := range []struct {
		bit   uint16
		value uint32
	}{
		{xp.ConfigWindowX, uint32(uint16(e.X))},
		{xp.ConfigWindowY, uint32(uint16(e.Y))},
		{xp.ConfigWindowWidth, uint32(e.Width)},
		{xp.ConfigWindowHeight, uint32(e.Height)},
		{xp.ConfigWindowBorderWidth, uint32(e.BorderWidth)},
		{xp.ConfigWindowSibling, uint32(e.Sibling)},
		{xp.ConfigWindowStackMode, uint32(e.StackMode)},
	} {
		if e.ValueMask&f.bit != 0 {
			mask |= f.bit
			values = append(values, f.value)
		}
	}
	return mask, values
}
