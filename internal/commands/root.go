// Package commands wires the tasks command line.
package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/tasks/internal/config"
	"github.com/idilsaglam/tasks/internal/logging"
	"github.com/idilsaglam/tasks/internal/ui"
)

// NewApp builds the root command. The TUI runs when no subcommand is given.
func NewApp(version string) *cli.Command {
	var logCloser func()
	flags := &Flags{}

	app := &cli.Command{
		Name:      "tasks",
		Usage:     "Keep a to-do list for the length of a session",
		UsageText: "tasks [global options] [command]",
		Description: `tasks keeps an in-memory to-do list: add, toggle, edit and remove
tasks. Titles must be unique when a task is added and every removal is
confirmed. Nothing is saved; quitting discards the list.

Run 'tasks' to open the full-screen list.
Run 'tasks shell' for a line-oriented session.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKS_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logging is off when empty)",
				Sources:     cli.EnvVars("TASKS_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKS_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "shell theme (classic, neon, mono)",
				Sources:     cli.EnvVars("TASKS_THEME"),
				Destination: &flags.Theme,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := loadConfig(flags)
			if err != nil {
				return ctx, err
			}
			flags.Config = cfg

			logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			ui.SetTheme(cfg.Theme)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := NewTuiCmd(flags)
	app = tuiCmd.Register(app)
	app = NewShellCmd(flags).Register(app)

	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'tasks --help' for usage", c.Args().First())
		}
		return tuiCmd.run(ctx, c)
	}

	return app
}

// loadConfig reads the config file, lets flags override it and validates
// the result, so a flag can correct a bad value in the file.
func loadConfig(flags *Flags) (*config.Config, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFile != "" {
		cfg.Log.File = flags.LogFile
	}
	if flags.Theme != "" {
		cfg.Theme = flags.Theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
