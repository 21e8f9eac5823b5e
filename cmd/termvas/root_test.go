package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/termvas/config"
)

func TestRootRejectsInvalidConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--backend", "carrier-pigeon", "--overlay-fg", "plaid"})
	err := cmd.Execute()

	var errs config.ValidationErrors
	if !errors.As(err, &errs) || len(errs) != 2 {
		t.Errorf("Expected 2 validation errors, got %v", err)
	}
}

func TestRootRejectsMissingConfigFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")})
	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[render]\ninterval = \"40ms\"\n[overlay]\nfg = \"red\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	if err := cmd.PersistentFlags().Parse([]string{"--interval", "20ms"}); err != nil {
		t.Fatal(err)
	}

	v, err := config.NewViper(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bindFlags(v, cmd.PersistentFlags()); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Render.Interval != 20*time.Millisecond {
		t.Errorf("Expected flag interval 20ms, got %v", cfg.Render.Interval)
	}
	if cfg.Overlay.Fg != "red" {
		t.Errorf("Expected file value for unset flag, got %q", cfg.Overlay.Fg)
	}
}
