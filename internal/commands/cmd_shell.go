package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/idilsaglam/tasks/internal/config"
	"github.com/idilsaglam/tasks/internal/logging"
	"github.com/idilsaglam/tasks/internal/policy"
	"github.com/idilsaglam/tasks/internal/screen"
	"github.com/idilsaglam/tasks/internal/shell"
	"github.com/idilsaglam/tasks/internal/ui"
)

type ShellCmd struct {
	flags *Flags

	// flags
	confirm string
}

// NewShellCmd creates a new shell command
func NewShellCmd(flags *Flags) *ShellCmd {
	return &ShellCmd{flags: flags}
}

// Register adds the shell command to the application
func (cmd *ShellCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "shell",
		Usage:     "Run a line-oriented task session",
		UsageText: "tasks shell [--confirm auto|prompt|line|yes]",
		Description: `Reads commands from stdin until EOF or 'quit'. All commands share
one task list, which is discarded when the session ends.

Examples:
  tasks shell
  printf 'add Buy milk\nls\n' | tasks shell`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "confirm",
				Usage:       "how removals are confirmed (auto, prompt, line, yes)",
				Destination: &cmd.confirm,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShellCmd) run(ctx context.Context, c *cli.Command) error {
	mode := cmd.flags.Config.Shell.Confirm
	if cmd.confirm != "" {
		mode = cmd.confirm
	}

	in := bufio.NewScanner(os.Stdin)
	p := ui.NewPrinter()

	confirmer, err := newConfirmer(mode, in, p.Out, term.IsTerminal(int(os.Stdin.Fd())))
	if err != nil {
		return err
	}

	logger := logging.Component("shell")
	ctl := screen.New(
		screen.WithNotifier(shell.NoticePrinter(p)),
		screen.WithConfirmer(confirmer),
		screen.WithLogger(logger),
	)

	if err := shell.New(ctl, in, p, logger).Run(ctx); err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	log.Debug().Int("tasks", ctl.Snapshot().Count).Msg("shell closed, tasks discarded")
	return nil
}

func newConfirmer(mode string, in *bufio.Scanner, out io.Writer, tty bool) (policy.Confirmer, error) {
	switch mode {
	case config.ConfirmAuto:
		if tty {
			return shell.PromptConfirmer{}, nil
		}
		return shell.NewLineConfirmer(in, out), nil
	case config.ConfirmPrompt:
		return shell.PromptConfirmer{}, nil
	case config.ConfirmLine:
		return shell.NewLineConfirmer(in, out), nil
	case config.ConfirmYes:
		return policy.AlwaysConfirm, nil
	}
	return nil, fmt.Errorf("unknown confirm mode %q", mode)
}
