package wm

import (
	"context"
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/rs/zerolog"
)

// ErrExit is returned by an action to stop the window manager. Run treats it
// as a clean shutdown, including when it arrives wrapped.
var ErrExit = errors.New("wm: exit requested")

type Config struct {
	Layouts *LayoutStack

	BorderWidth   uint16
	FocusedBorder uint32
	NormalBorder  uint32

	FocusFollowsMouse bool

	StartupHook StartupHook
	EventHook   EventHook
}

type WindowManager struct {
	State *State

	cfg  Config
	conn Conn
	log  zerolog.Logger
}

func New(cfg Config, conn Conn, log zerolog.Logger) *WindowManager {
	return &WindowManager{
		State: newState(&cfg),
		cfg:   cfg,
		conn:  conn,
		log:   log,
	}
}

type xEventOrError struct {
	event xgb.Event
	err   error
}

// Run adopts existing windows, runs the startup hook and processes X events
// until ctx is done, the connection closes or an action returns ErrExit.
func (m *WindowManager) Run(ctx context.Context) error {
	ws, err := m.conn.TopLevelWindows()
	if err != nil {
		return fmt.Errorf("query existing windows: %w", err)
	}
	for _, w := range ws {
		m.manage(w, false)
	}
	if h := m.cfg.StartupHook; h != nil {
		if err := h.Startup(m.State, m.conn); err != nil {
			return fmt.Errorf("startup hook: %w", err)
		}
	}
	m.State.Refresh(m.conn)

	eeChan := make(chan xEventOrError)
	go func() {
		for {
			e, err := m.conn.WaitForEvent()
			select {
			case eeChan <- xEventOrError{e, err}:
			case <-ctx.Done():
				return
			}
			if errors.Is(err, ErrConnClosed) {
				return
			}
		}
	}()

	for {
		if err := m.conn.Flush(); err != nil {
			m.log.Error().Err(err).Msg("X request failed")
		}

		select {
		case <-ctx.Done():
			return nil
		case ee := <-eeChan:
			if errors.Is(ee.err, ErrConnClosed) {
				return ee.err
			}
			if ee.err != nil {
				m.log.Warn().Err(ee.err).Msg("X error")
				continue
			}
			if err := m.handle(ee.event); err != nil {
				if errors.Is(err, ErrExit) {
					m.log.Info().Msg("exiting")
					m.conn.Flush()
					return nil
				}
				m.log.Error().Err(err).Msg("event hook failed")
			}
		}
	}
}

func (m *WindowManager) handle(ev xgb.Event) error {
	if h := m.cfg.EventHook; h != nil {
		consumed, err := h.HandleEvent(ev, m.State, m.conn)
		if err != nil || consumed {
			return err
		}
	}
	switch e := ev.(type) {
	case xp.ConfigureRequestEvent:
		m.handleConfigureRequest(e)
	case xp.DestroyNotifyEvent:
		m.unmanage(e.Window)
	case xp.EnterNotifyEvent:
		m.handleEnterNotify(e)
	case xp.MapRequestEvent:
		m.manage(e.Window, true)
	case xp.UnmapNotifyEvent:
		m.unmanage(e.Window)
	case xp.KeyPressEvent, xp.KeyReleaseEvent:
		// No-op. Keys are handled by event hooks.
	case xp.MappingNotifyEvent:
		m.log.Debug().Msg("keyboard mapping changed")
	default:
		m.log.Trace().Str("event", ev.String()).Msg("unhandled event")
	}
	return nil
}

func (m *WindowManager) handleConfigureRequest(e xp.ConfigureRequestEvent) {
	if c := m.State.Clients.Find(e.Window); c != nil && c.placed {
		m.conn.SendConfigureNotify(c.xWin, c.rect, m.State.BorderWidth)
		return
	}
	m.conn.ForwardConfigureRequest(e)
}

func (m *WindowManager) handleEnterNotify(e xp.EnterNotifyEvent) {
	if !m.cfg.FocusFollowsMouse {
		return
	}
	if f := m.State.Clients.Focused(); f != nil && f.xWin == e.Event {
		return
	}
	if m.State.Clients.FocusWindow(e.Event) {
		m.State.Refresh(m.conn)
	}
}

func (m *WindowManager) manage(xWin xp.Window, mapRequest bool) {
	if m.State.Clients.Find(xWin) == nil {
		m.conn.Select(xWin)
		m.State.Clients.Insert(xWin)
		m.log.Debug().Uint32("window", uint32(xWin)).Msg("managing window")
	}
	if mapRequest {
		m.conn.Map(xWin)
	}
	m.State.Refresh(m.conn)
}

func (m *WindowManager) unmanage(xWin xp.Window) {
	if !m.State.Clients.Remove(xWin) {
		return
	}
	m.log.Debug().Uint32("window", uint32(xWin)).Msg("unmanaging window")
	m.State.Refresh(m.conn)
}
