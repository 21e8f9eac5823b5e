// Package config loads termvas settings from defaults, a TOML file, TERMVAS_* environment
// variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/termvas/terminal"
)

// EnvPrefix prefixes environment overrides: TERMVAS_OVERLAY_FG sets overlay.fg
const EnvPrefix = "TERMVAS"

// Backend names
const (
	BackendStdio = "stdio"
	BackendTTY   = "tty"
)

// Config is the complete settings tree
type Config struct {
	Backend string        `mapstructure:"backend"`
	Overlay OverlayConfig `mapstructure:"overlay"`
	Render  RenderConfig  `mapstructure:"render"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OverlayConfig styles the pointer overlay cell
type OverlayConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Glyph   string `mapstructure:"glyph"` // Exactly one single-width rune
	Fg      string `mapstructure:"fg"`    // Color name, see terminal.ParseColor
	Bg      string `mapstructure:"bg"`
}

// RenderConfig controls the render loop
type RenderConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// LoggingConfig controls the debug log
// An empty File disables logging
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Backend: BackendStdio,
		Overlay: OverlayConfig{
			Enabled: true,
			Glyph:   " ",
			Fg:      "white",
			Bg:      "white",
		},
		Render: RenderConfig{
			Interval: 32 * time.Millisecond,
		},
		Logging: LoggingConfig{
			File:       "",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with v
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("backend", d.Backend)

	v.SetDefault("overlay.enabled", d.Overlay.Enabled)
	v.SetDefault("overlay.glyph", d.Overlay.Glyph)
	v.SetDefault("overlay.fg", d.Overlay.Fg)
	v.SetDefault("overlay.bg", d.Overlay.Bg)

	v.SetDefault("render.interval", d.Render.Interval)

	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
}

// Load decodes and validates the settings held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errs
	}
	return &cfg, nil
}

// NewViper returns a viper instance holding defaults, environment overrides and the
// config file: file when set, else config.toml in Dir if it exists
func NewViper(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Dir returns the directory searched for config.toml
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "termvas")
	}
	return filepath.Join(home, ".config", "termvas")
}

// OverlayStyle returns the parsed overlay glyph and colors
// Only meaningful on a validated config
func (c *Config) OverlayStyle() (rune, terminal.Color, terminal.Color, error) {
	glyph := []rune(c.Overlay.Glyph)
	if len(glyph) != 1 {
		return 0, 0, 0, fmt.Errorf("overlay glyph %q: want one rune", c.Overlay.Glyph)
	}
	fg, err := terminal.ParseColor(c.Overlay.Fg)
	if err != nil {
		return 0, 0, 0, err
	}
	bg, err := terminal.ParseColor(c.Overlay.Bg)
	if err != nil {
		return 0, 0, 0, err
	}
	return glyph[0], fg, bg, nil
}
