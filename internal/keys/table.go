package keys

import (
	"fmt"
	"maps"
	"slices"
)

// Resolver turns a descriptor into a chord using the live keyboard layout.
type Resolver interface {
	Resolve(desc string) (Chord, error)
}

// ResolutionError reports a descriptor that the keyboard layout cannot
// produce.
type ResolutionError struct {
	Descriptor string
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve key %q: %v", e.Descriptor, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// BindingTable maps chords to actions. It is not modified after BuildTable
// returns, so it may be read without locking.
type BindingTable struct {
	bindings map[Chord]Action
}

// BuildTable resolves every descriptor in raw. It fails on the first
// descriptor that does not resolve, and when two descriptors resolve to the
// same chord.
func BuildTable(r Resolver, raw map[string]Action) (*BindingTable, error) {
	t := &BindingTable{bindings: make(map[Chord]Action, len(raw))}
	seen := make(map[Chord]string, len(raw))
	for _, desc := range slices.Sorted(maps.Keys(raw)) {
		c, err := r.Resolve(desc)
		if err != nil {
			return nil, &ResolutionError{Descriptor: desc, Err: err}
		}
		if other, ok := seen[c]; ok {
			return nil, fmt.Errorf("keys %q and %q are the same chord %v", other, desc, c)
		}
		seen[c] = desc
		t.bindings[c] = raw[desc]
	}
	return t, nil
}

func (t *BindingTable) Lookup(c Chord) (Action, bool) {
	a, ok := t.bindings[c]
	return a, ok
}

func (t *BindingTable) Len() int {
	return len(t.bindings)
}

// Chords returns the bound chords, sorted by keycode then mask.
func (t *BindingTable) Chords() []Chord {
	return sortChords(slices.Collect(maps.Keys(t.bindings)))
}

func sortChords(cs []Chord) []Chord {
	slices.SortFunc(cs, func(a, b Chord) int {
		if a.Code != b.Code {
			return int(a.Code) - int(b.Code)
		}
		return int(a.Mask) - int(b.Mask)
	})
	return cs
}
