package xconn

import (
	"errors"
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/lockwm/lockwm/internal/keys"
)

var (
	_ keys.Resolver   = (*Conn)(nil)
	_ keys.KeyGrabber = (*Conn)(nil)
)

var ErrNoKeycode = errors.New("no keycode produces this keysym")

// Resolve maps a descriptor onto the current keyboard layout. A keysym that
// several keys produce resolves to the first of them.
func (c *Conn) Resolve(desc string) (keys.Chord, error) {
	mask, sym, err := keys.ParseDescriptor(desc)
	if err != nil {
		return keys.Chord{}, err
	}
	codes := keybind.StrToKeycodes(c.xu, sym)
	if len(codes) == 0 {
		return keys.Chord{}, fmt.Errorf("%w: %s", ErrNoKeycode, sym)
	}
	return keys.Chord{Code: codes[0], Mask: mask}, nil
}

// Describe is the inverse of Resolve, for listing bound keys.
func (c *Conn) Describe(ch keys.Chord) string {
	sym := keybind.LookupString(c.xu, 0, ch.Code)
	if sym == "" {
		return ch.String()
	}
	return keys.FormatDescriptor(ch.Mask, sym)
}

// GrabKeys replaces every key grab on the root window with cs. keybind grabs
// each chord under the Caps Lock and Num Lock combinations too.
func (c *Conn) GrabKeys(cs []keys.Chord) error {
	if err := xp.UngrabKeyChecked(c.x, xp.GrabAny, c.root, xp.ModMaskAny).Check(); err != nil {
		return fmt.Errorf("ungrab: %w", err)
	}
	var errs []error
	for _, ch := range cs {
		if err := keybind.GrabChecked(c.xu, c.root, ch.Mask, ch.Code); err != nil {
			errs = append(errs, fmt.Errorf("%v: %w", ch, err))
		}
	}
	return errors.Join(errs...)
}
