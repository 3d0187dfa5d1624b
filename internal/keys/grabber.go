package keys

import (
	"fmt"
	"slices"
)

// KeyGrabber replaces the set of chords captured at the root window.
type KeyGrabber interface {
	GrabKeys(chords []Chord) error
}

// Grabber keeps the captured chords in step with the active mode.
type Grabber struct {
	unlock Chord
	keys   KeyGrabber
}

func NewGrabber(unlock Chord, kg KeyGrabber) *Grabber {
	return &Grabber{unlock: unlock, keys: kg}
}

// Chords returns the unlock chord plus every chord of the active table.
func (g *Grabber) Chords(s *State) []Chord {
	cs := s.Active().Chords()
	if !slices.Contains(cs, g.unlock) {
		cs = sortChords(append(cs, g.unlock))
	}
	return cs
}

// Bind grabs exactly the chords for the current mode. s is not locked while
// the grab request is made.
func (g *Grabber) Bind(s *State) error {
	if err := g.keys.GrabKeys(g.Chords(s)); err != nil {
		return fmt.Errorf("grab keys: %w", err)
	}
	return nil
}
