package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termvas/logging"
	"github.com/lixenwraith/termvas/terminal"
)

// minInterval keeps the render loop from spinning
const minInterval = time.Millisecond

// ValidationError is one invalid setting
type ValidationError struct {
	Field   string // Config key, e.g. "overlay.fg"
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid setting found
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidBackends returns the accepted backend names
func ValidBackends() []string {
	return []string{BackendStdio, BackendTTY}
}

// Validate returns every invalid setting in c
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	if !slices.Contains(ValidBackends(), c.Backend) {
		errs = append(errs, ValidationError{
			Field:   "backend",
			Value:   c.Backend,
			Message: fmt.Sprintf("must be one of %v", ValidBackends()),
		})
	}

	errs = append(errs, c.validateOverlay()...)

	if c.Render.Interval < minInterval {
		errs = append(errs, ValidationError{
			Field:   "render.interval",
			Value:   c.Render.Interval,
			Message: fmt.Sprintf("must be at least %v", minInterval),
		})
	}

	errs = append(errs, c.validateLogging()...)
	return errs
}

func (c *Config) validateOverlay() ValidationErrors {
	var errs ValidationErrors

	glyph := []rune(c.Overlay.Glyph)
	if len(glyph) != 1 || runewidth.RuneWidth(glyph[0]) != 1 {
		errs = append(errs, ValidationError{
			Field:   "overlay.glyph",
			Value:   c.Overlay.Glyph,
			Message: "must be a single printable single-width character",
		})
	}

	for _, f := range []struct {
		field string
		value string
	}{
		{"overlay.fg", c.Overlay.Fg},
		{"overlay.bg", c.Overlay.Bg},
	} {
		if _, err := terminal.ParseColor(f.value); err != nil {
			errs = append(errs, ValidationError{
				Field:   f.field,
				Value:   f.value,
				Message: "unknown color",
			})
		}
	}
	return errs
}

func (c *Config) validateLogging() ValidationErrors {
	var errs ValidationErrors

	if !slices.Contains(logging.ValidLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of %v", logging.ValidLevels()),
		})
	}
	if c.Logging.MaxSizeMB < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative (0 disables rotation)",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}
	return errs
}
