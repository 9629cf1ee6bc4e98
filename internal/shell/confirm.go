package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/idilsaglam/tasks/internal/policy"
	"github.com/idilsaglam/tasks/internal/ui"
)

// LineConfirmer reads a y/N answer from the shell's own input.
type LineConfirmer struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewLineConfirmer(in *bufio.Scanner, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: in, out: out}
}

// Confirm treats anything but y/yes as No. EOF is No as well.
func (c *LineConfirmer) Confirm(_ context.Context, p policy.Prompt) (bool, error) {
	fmt.Fprintf(c.out, "%s: %s [y/N] ", p.Title, p.Message)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		return false, c.in.Err()
	}
	switch strings.ToLower(strings.TrimSpace(c.in.Text())) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// PromptConfirmer asks with an interactive huh form. Needs a terminal.
type PromptConfirmer struct{}

func (PromptConfirmer) Confirm(ctx context.Context, p policy.Prompt) (bool, error) {
	var yes bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(p.Title).
				Description(p.Message).
				Affirmative(policy.ChoiceYes.String()).
				Negative(policy.ChoiceNo.String()).
				Value(&yes),
		),
	).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return yes, nil
}

// NoticePrinter shows notices as failure lines.
func NoticePrinter(p *ui.Printer) policy.Notifier {
	return policy.NotifierFunc(func(n policy.Notice) {
		p.Fail(n.Title + ": " + n.Message)
	})
}
