package config

import "github.com/spf13/viper"

// Gruvbox.
const (
	aqua = "#8ec07c"
	bg1  = "#3c3836"
)

const (
	defaultBarHeight = 15
	defaultMaxMain   = 1
	defaultRatio     = 0.6
	defaultRatioStep = 0.1
)

func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Appearance: AppearanceConfig{
			BorderWidth:   1,
			FocusedBorder: aqua,
			NormalBorder:  bg1,
			BarHeight:     defaultBarHeight,
		},
		Layout: LayoutConfig{
			Layouts:   []string{"side", "side-mirrored", "bottom", "monocle"},
			MaxMain:   defaultMaxMain,
			Ratio:     defaultRatio,
			RatioStep: defaultRatioStep,
		},
		Keys: KeysConfig{
			Unlock: "A-g",
		},
		Bindings: BindingsConfig{
			Fallback: []Binding{
				{"A-j", "focus-down"},
				{"A-k", "focus-up"},
				{"A-S-j", "swap-down"},
				{"A-S-k", "swap-up"},
				{"A-q", "kill"},
				{"A-bracketright", "next-layout"},
				{"A-bracketleft", "prev-layout"},
				{"A-S-Up", "inc-main 1"},
				{"A-S-Down", "inc-main -1"},
				{"A-S-Right", "expand-main"},
				{"A-S-Left", "shrink-main"},
				{"A-semicolon", "spawn dmenu_run"},
				{"A-Return", "spawn alacritty"},
				{"A-Escape", "exit"},
			},
			Normal: []Binding{
				{"A-g", "toggle-lock"},
				{"A-h", "noop left-desktop"},
				{"A-Return", "spawn alacritty"},
				{"A-Escape", "exit"},
			},
			Locked: []Binding{
				{"A-g", "toggle-lock"},
			},
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("display", d.Display)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("appearance.border_width", d.Appearance.BorderWidth)
	v.SetDefault("appearance.focused_border", d.Appearance.FocusedBorder)
	v.SetDefault("appearance.normal_border", d.Appearance.NormalBorder)
	v.SetDefault("appearance.outer_gap", d.Appearance.OuterGap)
	v.SetDefault("appearance.inner_gap", d.Appearance.InnerGap)
	v.SetDefault("appearance.bar_height", d.Appearance.BarHeight)

	v.SetDefault("layout.layouts", d.Layout.Layouts)
	v.SetDefault("layout.max_main", d.Layout.MaxMain)
	v.SetDefault("layout.ratio", d.Layout.Ratio)
	v.SetDefault("layout.ratio_step", d.Layout.RatioStep)

	v.SetDefault("keys.unlock", d.Keys.Unlock)
	v.SetDefault("keys.focus_follows_mouse", d.Keys.FocusFollowsMouse)

	v.SetDefault("bindings.fallback", d.Bindings.Fallback)
	v.SetDefault("bindings.normal", d.Bindings.Normal)
	v.SetDefault("bindings.locked", d.Bindings.Locked)
	v.SetDefault("bindings.resize", d.Bindings.Resize)
	v.SetDefault("bindings.move", d.Bindings.Move)
	v.SetDefault("bindings.focus", d.Bindings.Focus)
}
