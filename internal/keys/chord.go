// Package keys implements lockwm's mode-aware keybinding dispatcher: per-mode
// binding tables, the shared dispatcher state, the key grabber and the event
// hook that ties them together.
//
// A binding is written as a descriptor such as "A-S-j": zero or more
// modifier prefixes followed by an X keysym name. The prefixes are
//
//	A  Alt (Mod1)
//	C  Control
//	S  Shift
//	M  Super (Mod4)
//
// Descriptors are resolved against the live keyboard mapping at startup. The
// unlock chord is reserved: it toggles between Normal and Locked in every
// mode, before any table is consulted, so a locked keyboard can always be
// unlocked.
package keys

import (
	"fmt"
	"strings"

	xp "github.com/BurntSushi/xgb/xproto"
)

// Chord is a physical key together with the modifiers held down.
type Chord struct {
	Code xp.Keycode
	Mask uint16
}

func (c Chord) String() string {
	return fmt.Sprintf("%s%d", FormatDescriptor(c.Mask, ""), c.Code)
}

// modMask is the set of modifiers that distinguish bindings. Lock and Mod2
// (Caps Lock and Num Lock) are ignored, as are pointer buttons.
const modMask = xp.ModMaskShift | xp.ModMaskControl | xp.ModMask1 |
	xp.ModMask3 | xp.ModMask4 | xp.ModMask5

// ChordOf returns the chord pressed in e.
func ChordOf(e xp.KeyPressEvent) Chord {
	return Chord{Code: e.Detail, Mask: e.State & modMask}
}

var prefixes = []struct {
	prefix string
	mask   uint16
}{
	{"A", xp.ModMask1},
	{"C", xp.ModMaskControl},
	{"S", xp.ModMaskShift},
	{"M", xp.ModMask4},
}

// ParseDescriptor splits a descriptor such as "A-S-Return" into its modifier
// mask and keysym name.
func ParseDescriptor(desc string) (mask uint16, sym string, err error) {
	parts := strings.Split(desc, "-")
	sym = parts[len(parts)-1]
	if sym == "" {
		// "A--" binds the minus key.
		if len(parts) >= 2 && parts[len(parts)-2] == "" {
			parts = parts[:len(parts)-1]
			sym = "minus"
		} else {
			return 0, "", fmt.Errorf("descriptor %q: missing key", desc)
		}
	}
	for _, p := range parts[:len(parts)-1] {
		found := false
		for _, q := range prefixes {
			if p == q.prefix {
				mask |= q.mask
				found = true
				break
			}
		}
		if !found {
			return 0, "", fmt.Errorf("descriptor %q: unknown modifier %q", desc, p)
		}
	}
	return mask, sym, nil
}

// FormatDescriptor is the inverse of ParseDescriptor. Modifiers are written
// in the canonical A, C, S, M order.
func FormatDescriptor(mask uint16, sym string) string {
	var b strings.Builder
	for _, q := range prefixes {
		if mask&q.mask != 0 {
			b.WriteString(q.prefix)
			b.WriteByte('-')
		}
	}
	b.WriteString(sym)
	return b.String()
}
