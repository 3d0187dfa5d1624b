package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lockwm/lockwm/internal/config"
	"github.com/lockwm/lockwm/internal/keys"
	"github.com/lockwm/lockwm/internal/logging"
	"github.com/lockwm/lockwm/internal/wm"
	"github.com/lockwm/lockwm/internal/xconn"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	loader *config.Loader
	file   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "lockwm",
		Short:        "A tiling X11 window manager with a lockable keyboard",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, log)
		},
	}

	loader, err := config.NewLoader()
	if err != nil {
		// Only fails on malformed environment bindings, which are constant.
		panic(err)
	}
	opts.loader = loader

	flags := root.PersistentFlags()
	flags.StringVar(&opts.file, "config", "", "config file (default $XDG_CONFIG_HOME/lockwm/config.toml)")
	flags.String("display", "", "X display to manage (default $DISPLAY)")
	flags.String("log-level", "", "trace, debug, info, warn or error")
	v := loader.Viper()
	for key, flag := range map[string]string{
		"display":       "display",
		"logging.level": "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(newCheckCmd(opts))
	return root
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Resolve the key bindings against the keyboard layout and print them",
		Long: "Check loads the configuration, resolves every binding table against the " +
			"keyboard layout of the X display, and prints the tables. It does not " +
			"take over as the window manager.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			x, err := xconn.Dial(cfg.Display, log)
			if err != nil {
				return err
			}
			defer x.Shutdown()

			unlock, err := resolveUnlock(cfg.Keys.Unlock, x)
			if err != nil {
				return err
			}
			t, err := buildTables(cfg.Bindings, x, keys.NewDispatcher(unlock, x, log))
			if err != nil {
				return err
			}
			printTables(cmd.OutOrStdout(), unlock, t, x)
			return nil
		},
	}
}

func (o *options) load() (*config.Config, zerolog.Logger, error) {
	cfg, err := o.loader.Load(o.file)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logCfg := logging.DefaultConfig()
	logCfg.Format = cfg.Logging.Format
	if logCfg.Level, err = logging.ParseLevel(cfg.Logging.Level); err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logging.New(logCfg)
	if f := o.loader.File(); f != "" {
		log.Debug().Str("file", f).Msg("loaded config")
	}
	return cfg, log, nil
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	x, err := xconn.DialWM(cfg.Display, log)
	if err != nil {
		return err
	}
	defer x.Shutdown()

	unlock, err := resolveUnlock(cfg.Keys.Unlock, x)
	if err != nil {
		return err
	}
	d := keys.NewDispatcher(unlock, x, log)
	t, err := buildTables(cfg.Bindings, x, d)
	if err != nil {
		return err
	}

	wmCfg, err := wmConfig(cfg)
	if err != nil {
		return err
	}
	wmCfg.ComposeOrSetStartupHook(d)
	wmCfg.ComposeOrSetEventHook(d)

	m := wm.New(wmCfg, x, log)
	m.State.AddExtension(t.state())

	log.Info().Str("unlock", x.Describe(unlock)).Msg("starting")
	if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("window manager: %w", err)
	}
	log.Info().Msg("exiting")
	return nil
}
