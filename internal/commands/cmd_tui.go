package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/tasks/internal/logging"
	"github.com/idilsaglam/tasks/internal/tui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the full-screen task list (default)",
		UsageText: "tasks tui",
		Description: `Keys:
  a        add a task
  e        edit the selected task (enter saves, esc cancels)
  space    toggle done
  d        remove the selected task (asks first)
  q        quit`,
		Action: cmd.run,
	})

	return app
}

func (cmd *TuiCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	return tui.Run(ctx, tui.Options{
		AltScreen: cfg.TUI.UseAltScreen(),
		CharLimit: cfg.TUI.CharLimit,
		Logger:    logging.Component("tui"),
	})
}
