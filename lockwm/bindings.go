package main

import (
	"fmt"
	"io"

	"github.com/lockwm/lockwm/internal/config"
	"github.com/lockwm/lockwm/internal/keys"
	"github.com/lockwm/lockwm/internal/wm"
)

// tables are the resolved binding tables, before they are handed to a
// keys.State.
type tables struct {
	byMode   map[keys.Mode]*keys.BindingTable
	fallback *keys.BindingTable
}

func (t *tables) state() *keys.State {
	return keys.NewState(t.byMode, t.fallback)
}

// buildTables resolves the configured bindings. Normal gets the fallback
// bindings overlaid by its own, Locked gets only its own, and the other modes
// get a table of their own only when some bindings are configured for them.
func buildTables(cfg config.BindingsConfig, r keys.Resolver, d *keys.Dispatcher) (*tables, error) {
	fallback, err := parseBindings(cfg.Fallback, d)
	if err != nil {
		return nil, fmt.Errorf("fallback bindings: %w", err)
	}
	t := &tables{byMode: map[keys.Mode]*keys.BindingTable{}}
	if t.fallback, err = keys.BuildTable(r, fallback); err != nil {
		return nil, fmt.Errorf("fallback bindings: %w", err)
	}

	configured := map[keys.Mode][]config.Binding{
		keys.Normal: cfg.Normal,
		keys.Locked: cfg.Locked,
		keys.Resize: cfg.Resize,
		keys.Move:   cfg.Move,
		keys.Focus:  cfg.Focus,
	}
	for _, m := range keys.Modes {
		raw, err := parseBindings(configured[m], d)
		if err != nil {
			return nil, fmt.Errorf("%v bindings: %w", m, err)
		}
		switch m {
		case keys.Normal:
			for desc, a := range fallback {
				if _, ok := raw[desc]; !ok {
					raw[desc] = a
				}
			}
		case keys.Locked:
		default:
			if len(raw) == 0 {
				continue
			}
		}
		if t.byMode[m], err = keys.BuildTable(r, raw); err != nil {
			return nil, fmt.Errorf("%v bindings: %w", m, err)
		}
	}
	return t, nil
}

// parseBindings keys the actions by canonical descriptor, so that "S-A-j"
// in one list overrides "A-S-j" in another.
func parseBindings(bs []config.Binding, d *keys.Dispatcher) (map[string]keys.Action, error) {
	raw := make(map[string]keys.Action, len(bs))
	for _, b := range bs {
		mask, sym, err := keys.ParseDescriptor(b.Key)
		if err != nil {
			return nil, err
		}
		desc := keys.FormatDescriptor(mask, sym)
		if _, ok := raw[desc]; ok {
			return nil, fmt.Errorf("key %q is bound twice", b.Key)
		}
		a, err := keys.ParseAction(b.Action, d)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", b.Key, err)
		}
		raw[desc] = a
	}
	return raw, nil
}

func resolveUnlock(desc string, r keys.Resolver) (keys.Chord, error) {
	c, err := r.Resolve(desc)
	if err != nil {
		return keys.Chord{}, fmt.Errorf("unlock key: %w", &keys.ResolutionError{Descriptor: desc, Err: err})
	}
	return c, nil
}

type describer interface {
	Describe(c keys.Chord) string
}

// printTables writes every table, one binding per line, in chord order.
func printTables(w io.Writer, unlock keys.Chord, t *tables, dd describer) {
	fmt.Fprintf(w, "unlock\t%s\n", dd.Describe(unlock))
	section := func(name string, tbl *keys.BindingTable) {
		fmt.Fprintf(w, "\n[%s]\n", name)
		for _, c := range tbl.Chords() {
			a, _ := tbl.Lookup(c)
			fmt.Fprintf(w, "%s\t%v\n", dd.Describe(c), a)
		}
	}
	for _, m := range keys.Modes {
		if tbl, ok := t.byMode[m]; ok {
			section(m.String(), tbl)
		}
	}
	section("fallback", t.fallback)
}

func wmConfig(cfg *config.Config) (wm.Config, error) {
	focused, err := config.ParseColor(cfg.Appearance.FocusedBorder)
	if err != nil {
		return wm.Config{}, err
	}
	normal, err := config.ParseColor(cfg.Appearance.NormalBorder)
	if err != nil {
		return wm.Config{}, err
	}
	return wm.Config{
		Layouts:           layouts(cfg),
		BorderWidth:       uint16(cfg.Appearance.BorderWidth),
		FocusedBorder:     focused,
		NormalBorder:      normal,
		FocusFollowsMouse: cfg.Keys.FocusFollowsMouse,
	}, nil
}

func layouts(cfg *config.Config) *wm.LayoutStack {
	l, a := cfg.Layout, cfg.Appearance
	var ls []wm.Layout
	for _, name := range l.Layouts {
		switch name {
		case "side":
			ls = append(ls, wm.Side(l.MaxMain, l.Ratio, l.RatioStep))
		case "side-mirrored":
			ls = append(ls, wm.SideMirrored(l.MaxMain, l.Ratio, l.RatioStep))
		case "bottom":
			ls = append(ls, wm.Bottom(l.MaxMain, l.Ratio, l.RatioStep))
		case "monocle":
			ls = append(ls, wm.Monocle{})
		}
	}
	return wm.NewLayoutStack(ls...).Map(func(inner wm.Layout) wm.Layout {
		return &wm.ReserveTop{
			Layout: &wm.Gaps{Layout: inner, Outer: uint16(a.OuterGap), Inner: uint16(a.InnerGap)},
			Px:     uint16(a.BarHeight),
		}
	})
}
