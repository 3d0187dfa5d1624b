package wm

import (
	"github.com/BurntSushi/xgb"
)

// StartupHook runs once, after existing windows have been adopted and before
// the first event is read.
type StartupHook interface {
	Startup(s *State, x Conn) error
}

// EventHook sees every event before the window manager does. Returning
// consumed stops later hooks and the built-in handling for that event.
type EventHook interface {
	HandleEvent(ev xgb.Event, s *State, x Conn) (consumed bool, err error)
}

type startupHooks []StartupHook

func (hs startupHooks) Startup(s *State, x Conn) error {
	for _, h := range hs {
		if err := h.Startup(s, x); err != nil {
			return err
		}
	}
	return nil
}

type eventHooks []EventHook

func (hs eventHooks) HandleEvent(ev xgb.Event, s *State, x Conn) (bool, error) {
	for _, h := range hs {
		if consumed, err := h.HandleEvent(ev, s, x); consumed || err != nil {
			return consumed, err
		}
	}
	return false, nil
}

// ComposeOrSetStartupHook sets h as the startup hook, or runs it after the
// existing one.
func (c *Config) ComposeOrSetStartupHook(h StartupHook) {
	switch existing := c.StartupHook.(type) {
	case nil:
		c.StartupHook = h
	case startupHooks:
		c.StartupHook = append(existing, h)
	default:
		c.StartupHook = startupHooks{existing, h}
	}
}

// ComposeOrSetEventHook sets h as the event hook, or chains it after the
// existing one.
func (c *Config) ComposeOrSetEventHook(h EventHook) {
	switch existing := c.EventHook.(type) {
	case nil:
		c.EventHook = h
	case eventHooks:
		c.EventHook = append(existing, h)
	default:
		c.EventHook = eventHooks{existing, h}
	}
}
