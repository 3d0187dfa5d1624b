package keys

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lockwm/lockwm/internal/wm"
)

// ParseAction builds the action named by spec, such as "focus-down",
// "inc-main -1", "mode resize" or "spawn alacritty -e htop".
func ParseAction(spec string, d *Dispatcher) (Action, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty action")
	}
	name, args := fields[0], fields[1:]
	noArgs := func(a Action) (Action, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("action %q takes no arguments", name)
		}
		return a, nil
	}

	switch name {
	case "focus-down":
		return noArgs(Modify(name, func(s *wm.State) { s.Clients.FocusDown() }))
	case "focus-up":
		return noArgs(Modify(name, func(s *wm.State) { s.Clients.FocusUp() }))
	case "swap-down":
		return noArgs(Modify(name, func(s *wm.State) { s.Clients.SwapDown() }))
	case "swap-up":
		return noArgs(Modify(name, func(s *wm.State) { s.Clients.SwapUp() }))
	case "next-layout":
		return noArgs(Modify(name, func(s *wm.State) { s.Layouts.Next() }))
	case "prev-layout":
		return noArgs(Modify(name, func(s *wm.State) { s.Layouts.Previous() }))
	case "expand-main":
		return noArgs(SendLayoutMessage(name, wm.ExpandMain{}))
	case "shrink-main":
		return noArgs(SendLayoutMessage(name, wm.ShrinkMain{}))
	case "inc-main":
		if len(args) != 1 {
			return nil, fmt.Errorf("action %q takes one argument", name)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("action %q: %w", name, err)
		}
		return SendLayoutMessage(spec, wm.IncMain(n)), nil
	case "kill":
		return noArgs(KillFocused())
	case "exit":
		return noArgs(Exit())
	case "toggle-lock":
		return noArgs(d.ToggleAction())
	case "mode":
		if len(args) != 1 {
			return nil, fmt.Errorf("action %q takes one argument", name)
		}
		m, err := ParseMode(args[0])
		if err != nil {
			return nil, err
		}
		return d.EnterMode(m), nil
	case "spawn":
		if len(args) == 0 {
			return nil, fmt.Errorf("action %q needs a command", name)
		}
		return Spawn(args...), nil
	case "noop":
		return NoOp(strings.Join(args, " ")), nil
	}
	return nil, fmt.Errorf("unknown action %q", name)
}
