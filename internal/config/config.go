// Package config handles configuration loading and validation for tasks.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Confirm modes for the shell's remove prompt.
const (
	ConfirmAuto   = "auto"   // prompt on a terminal, line input otherwise
	ConfirmPrompt = "prompt" // interactive huh prompt
	ConfirmLine   = "line"   // y/N read from the shell input
	ConfirmYes    = "yes"    // never ask
)

var (
	themes       = []string{"classic", "neon", "mono"}
	confirmModes = []string{ConfirmAuto, ConfirmPrompt, ConfirmLine, ConfirmYes}
)

// Config holds the application configuration.
type Config struct {
	Theme string      `yaml:"theme"`
	Log   LogConfig   `yaml:"log"`
	TUI   TUIConfig   `yaml:"tui"`
	Shell ShellConfig `yaml:"shell"`
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty disables logging
}

// TUIConfig tunes the full-screen interface.
type TUIConfig struct {
	AltScreen *bool `yaml:"alt_screen"` // nil means true
	CharLimit int   `yaml:"char_limit"`
}

// ShellConfig tunes the line-oriented shell.
type ShellConfig struct {
	Confirm string `yaml:"confirm"`
}

// UseAltScreen reports whether the TUI takes over the whole terminal.
func (t TUIConfig) UseAltScreen() bool {
	return t.AltScreen == nil || *t.AltScreen
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: "classic",
		Log: LogConfig{
			Level: "info",
		},
		TUI: TUIConfig{
			CharLimit: 200,
		},
		Shell: ShellConfig{
			Confirm: ConfirmAuto,
		},
	}
}

// Load reads configuration from configPath, falling back to defaults
// when the file does not exist. The result is not validated: callers
// apply their overrides first and then call Validate.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.TUI.CharLimit == 0 {
		c.TUI.CharLimit = defaults.TUI.CharLimit
	}
	if c.Shell.Confirm == "" {
		c.Shell.Confirm = defaults.Shell.Confirm
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(themes, c.Theme) {
		errs = append(errs, fmt.Errorf("theme %q: must be one of %v", c.Theme, themes))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level %q: %w", c.Log.Level, err))
	}
	if c.TUI.CharLimit < 0 {
		errs = append(errs, fmt.Errorf("tui.char_limit %d: must not be negative", c.TUI.CharLimit))
	}
	if !slices.Contains(confirmModes, c.Shell.Confirm) {
		errs = append(errs, fmt.Errorf("shell.confirm %q: must be one of %v", c.Shell.Confirm, confirmModes))
	}
	return errors.Join(errs...)
}
