package config

import (
	"fmt"
	"strconv"
	"strings"
)

var layoutNames = map[string]bool{
	"side": true, "side-mirrored": true, "bottom": true, "monocle": true,
}

func validate(cfg *Config) error {
	var errs []string

	switch strings.ToLower(cfg.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level must be one of: trace, debug, info, warn, error (got: %s)", cfg.Logging.Level))
	}
	switch cfg.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("logging.format must be console or json (got: %s)", cfg.Logging.Format))
	}

	a := cfg.Appearance
	for name, v := range map[string]int{
		"appearance.border_width": a.BorderWidth,
		"appearance.outer_gap":    a.OuterGap,
		"appearance.inner_gap":    a.InnerGap,
		"appearance.bar_height":   a.BarHeight,
	} {
		if v < 0 || v > 0xffff {
			errs = append(errs, fmt.Sprintf("%s must be between 0 and 65535 (got: %d)", name, v))
		}
	}
	for name, v := range map[string]string{
		"appearance.focused_border": a.FocusedBorder,
		"appearance.normal_border":  a.NormalBorder,
	} {
		if _, err := ParseColor(v); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", name, err))
		}
	}

	l := cfg.Layout
	if len(l.Layouts) == 0 {
		errs = append(errs, "layout.layouts cannot be empty")
	}
	for _, name := range l.Layouts {
		if !layoutNames[name] {
			errs = append(errs, fmt.Sprintf("layout.layouts: unknown layout %q", name))
		}
	}
	if l.MaxMain < 0 {
		errs = append(errs, "layout.max_main must be non-negative")
	}
	if l.RatioStep <= 0 || l.RatioStep >= 0.5 {
		errs = append(errs, "layout.ratio_step must be between 0 and 0.5")
	}
	if l.Ratio <= 0 || l.Ratio >= 1 {
		errs = append(errs, "layout.ratio must be between 0 and 1")
	}

	if cfg.Keys.Unlock == "" {
		errs = append(errs, "keys.unlock cannot be empty")
	}
	for table, bs := range cfg.Bindings.Tables() {
		for i, b := range bs {
			if b.Key == "" || b.Action == "" {
				errs = append(errs, fmt.Sprintf("bindings.%s[%d] needs both key and action", table, i))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ParseColor turns "#rrggbb" into the 0xrrggbb pixel value X expects on a
// TrueColor visual.
func ParseColor(s string) (uint32, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return 0, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q is not #rrggbb", s)
	}
	return uint32(v), nil
}

// Tables returns the configured binding lists keyed by mode name. Empty lists
// are left out.
func (b BindingsConfig) Tables() map[string][]Binding {
	m := map[string][]Binding{}
	for name, bs := range map[string][]Binding{
		"fallback": b.Fallback,
		"normal":   b.Normal,
		"locked":   b.Locked,
		"resize":   b.Resize,
		"move":     b.Move,
		"focus":    b.Focus,
	} {
		if len(bs) > 0 {
			m[name] = bs
		}
	}
	return m
}
