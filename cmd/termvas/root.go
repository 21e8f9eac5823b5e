package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/termvas/canvas"
	"github.com/lixenwraith/termvas/config"
	"github.com/lixenwraith/termvas/logging"
	"github.com/lixenwraith/termvas/pointer"
	"github.com/lixenwraith/termvas/terminal"
)

var version = "dev"

// flagKeys maps command-line flags to config keys
var flagKeys = map[string]string{
	"backend":       "backend",
	"overlay":       "overlay.enabled",
	"overlay-glyph": "overlay.glyph",
	"overlay-fg":    "overlay.fg",
	"overlay-bg":    "overlay.bg",
	"interval":      "render.interval",
	"log-file":      "logging.file",
	"log-level":     "logging.level",
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "termvas",
		Short: "Terminal canvas self-test",
		Long: `termvas draws a small self-test scene with the termvas canvas: two vertical
words, a colored line, a changing digit and the live pointer coordinates.
Move the mouse to drag the overlay cell; press q or Ctrl-C to quit.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), cfg, func(ctx context.Context, s *session) error {
				sc := newScene(s.reader)
				if err := sc.setup(s.canvas); err != nil {
					return err
				}
				return loop(ctx, s.canvas, sc, s.reader.Quit(), cfg.Render.Interval, s.logger)
			})
		},
	}

	d := config.Default()
	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/termvas/config.toml)")
	flags.String("backend", d.Backend, "terminal backend: stdio or tty")
	flags.Bool("overlay", d.Overlay.Enabled, "draw the pointer overlay")
	flags.String("overlay-glyph", d.Overlay.Glyph, "overlay character")
	flags.String("overlay-fg", d.Overlay.Fg, "overlay foreground color")
	flags.String("overlay-bg", d.Overlay.Bg, "overlay background color")
	flags.Duration("interval", d.Render.Interval, "render interval")
	flags.String("log-file", d.Logging.File, "debug log file (empty disables logging)")
	flags.String("log-level", d.Logging.Level, "log level: debug, info, warn, error")

	cmd.AddCommand(newBenchCmd())
	return cmd
}

// loadConfig merges defaults, config file, environment and the flags of cmd
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	v, err := config.NewViper(file)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	return config.Load(v)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func openBackend(name string) (terminal.Backend, error) {
	switch name {
	case config.BackendTTY:
		return terminal.NewTTYBackend()
	default:
		return terminal.NewStdioBackend(), nil
	}
}

// session is the terminal state shared by commands while they own the screen
type session struct {
	canvas *canvas.Canvas
	reader *pointer.Reader
	logger *slog.Logger
}

// withSession owns the terminal for the duration of fn
// ctx passed to fn is cancelled on a termination signal
func withSession(parent context.Context, cfg *config.Config, fn func(context.Context, *session) error) (err error) {
	logger, closer, err := logging.New(logging.Options{
		File:       cfg.Logging.File,
		Level:      cfg.Logging.Level,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	backend, err := openBackend(cfg.Backend)
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	defer backend.Fini()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	presentation := terminal.NewPresentation(backend)
	presentation.OnSignal = func(sig os.Signal) {
		logger.Info("signal received", "signal", sig.String())
		cancel()
	}

	reader := pointer.NewReader(backend, logger)
	cv, err := newCanvas(backend, cfg, reader, presentation, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cv.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := reader.Start(); err != nil {
		return err
	}
	defer reader.Stop()

	width, height := cv.Size()
	logger.Info("session started", "width", width, "height", height, "backend", cfg.Backend)

	return fn(ctx, &session{canvas: cv, reader: reader, logger: logger})
}

func newCanvas(b terminal.Backend, cfg *config.Config, src pointer.Source, p canvas.Presenter, logger *slog.Logger) (*canvas.Canvas, error) {
	opts := []canvas.Option{
		canvas.WithLogger(logger),
		canvas.WithPresentation(p),
	}
	if cfg.Overlay.Enabled {
		glyph, fg, bg, err := cfg.OverlayStyle()
		if err != nil {
			return nil, err
		}
		opts = append(opts, canvas.WithOverlay(src), canvas.WithOverlayStyle(glyph, fg, bg))
	}
	return canvas.New(b, opts...)
}
