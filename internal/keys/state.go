package keys

import (
	"errors"
	"sync"
)

// ErrPoisoned is the panic value once a critical section on State has
// panicked; its fields can no longer be trusted.
var ErrPoisoned = errors.New("keys: dispatcher state poisoned")

// State is the dispatcher state shared by the event hook and the mode
// actions. It lives in the window manager's extension storage.
type State struct {
	mu       sync.Mutex
	poisoned bool

	tables   map[Mode]*BindingTable
	fallback *BindingTable
	current  Mode
}

// NewState starts in Normal. Modes missing from tables use fallback.
func NewState(tables map[Mode]*BindingTable, fallback *BindingTable) *State {
	if fallback == nil {
		fallback = &BindingTable{}
	}
	return &State{tables: tables, fallback: fallback, current: Normal}
}

// with runs f holding the lock. f must not call out of this package.
func (s *State) with(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.poisoned {
		panic(ErrPoisoned)
	}
	done := false
	defer func() {
		if !done {
			s.poisoned = true
		}
	}()
	f()
	done = true
}

func (s *State) Mode() (m Mode) {
	s.with(func() { m = s.current })
	return m
}

func (s *State) active() *BindingTable {
	if t, ok := s.tables[s.current]; ok && t != nil {
		return t
	}
	return s.fallback
}

// Active returns the table for the current mode, or the fallback table.
func (s *State) Active() (t *BindingTable) {
	s.with(func() { t = s.active() })
	return t
}

// Lookup finds c in the active table.
func (s *State) Lookup(c Chord) (a Action, ok bool) {
	t := s.Active()
	return t.Lookup(c)
}

// ToggleLocked switches Locked to Normal and any other mode to Locked, and
// returns the new mode.
func (s *State) ToggleLocked() (m Mode) {
	s.with(func() {
		if s.current == Locked {
			s.current = Normal
		} else {
			s.current = Locked
		}
		m = s.current
	})
	return m
}

// SetMode switches to m and reports whether the mode changed.
func (s *State) SetMode(m Mode) (changed bool) {
	s.with(func() {
		changed = s.current != m
		s.current = m
	})
	return changed
}
