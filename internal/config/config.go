// Package config loads lockwm's settings: compiled defaults, overlaid by an
// optional TOML file and LOCKWM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Display    string           `mapstructure:"display"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Appearance AppearanceConfig `mapstructure:"appearance"`
	Layout     LayoutConfig     `mapstructure:"layout"`
	Keys       KeysConfig       `mapstructure:"keys"`
	Bindings   BindingsConfig   `mapstructure:"bindings"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AppearanceConfig colors are "#rrggbb" strings; see ParseColor.
type AppearanceConfig struct {
	BorderWidth   int    `mapstructure:"border_width"`
	FocusedBorder string `mapstructure:"focused_border"`
	NormalBorder  string `mapstructure:"normal_border"`
	OuterGap      int    `mapstructure:"outer_gap"`
	InnerGap      int    `mapstructure:"inner_gap"`
	BarHeight     int    `mapstructure:"bar_height"`
}

type LayoutConfig struct {
	// Layouts are cycled in this order by next-layout.
	Layouts   []string `mapstructure:"layouts"`
	MaxMain   int      `mapstructure:"max_main"`
	Ratio     float64  `mapstructure:"ratio"`
	RatioStep float64  `mapstructure:"ratio_step"`
}

type KeysConfig struct {
	// Unlock is the reserved chord that toggles Locked in every mode.
	Unlock            string `mapstructure:"unlock"`
	FocusFollowsMouse bool   `mapstructure:"focus_follows_mouse"`
}

// Binding maps a key descriptor such as "A-S-j" to an action spec such as
// "swap-down".
type Binding struct {
	Key    string `mapstructure:"key"`
	Action string `mapstructure:"action"`
}

// BindingsConfig holds one list per table. Setting a list in the config file
// replaces its defaults rather than extending them.
type BindingsConfig struct {
	Fallback []Binding `mapstructure:"fallback"`
	Normal   []Binding `mapstructure:"normal"`
	Locked   []Binding `mapstructure:"locked"`
	Resize   []Binding `mapstructure:"resize"`
	Move     []Binding `mapstructure:"move"`
	Focus    []Binding `mapstructure:"focus"`
}

// Loader wraps the viper instance so the CLI can bind its flags before Load.
type Loader struct {
	viper *viper.Viper
}

func NewLoader() (*Loader, error) {
	v := viper.New()
	v.SetEnvPrefix("LOCKWM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shorter names for the settings people change from the session script.
	envs := map[string]string{
		"logging.level":  "LOCKWM_LOG_LEVEL",
		"logging.format": "LOCKWM_LOG_FORMAT",
	}
	for key, env := range envs {
		long := "LOCKWM_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, long, env); err != nil {
			return nil, fmt.Errorf("bind environment variable %s: %w", env, err)
		}
	}

	setDefaults(v)
	return &Loader{viper: v}, nil
}

func (l *Loader) Viper() *viper.Viper { return l.viper }

// Load reads file, or config.toml from the config directory when file is
// empty. Only an explicitly named file has to exist.
func (l *Loader) Load(file string) (*Config, error) {
	v := l.viper
	if file != "" {
		v.SetConfigFile(file)
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locate config directory: %w", err)
		}
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// File is the config file that was read, or "" when only defaults apply.
func (l *Loader) File() string { return l.viper.ConfigFileUsed() }
