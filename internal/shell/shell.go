// Package shell runs a line-oriented task session on a reader/writer pair.
// All commands of one session share a single in-memory task list.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/screen"
	"github.com/idilsaglam/tasks/internal/tasks"
	"github.com/idilsaglam/tasks/internal/ui"
)

// Session reads commands line by line and applies them to a controller.
type Session struct {
	ctl    *screen.Controller
	in     *bufio.Scanner
	p      *ui.Printer
	log    zerolog.Logger
	prompt string
}

// New creates a Session. in should be the same scanner handed to a
// LineConfirmer so confirmations are read in order with commands.
func New(ctl *screen.Controller, in *bufio.Scanner, p *ui.Printer, log zerolog.Logger) *Session {
	return &Session{ctl: ctl, in: in, p: p, log: log, prompt: "> "}
}

// Run reads commands until EOF, `quit` or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.p.Out, s.p.C(ui.Current().Accent, s.prompt))
		if !s.in.Scan() {
			fmt.Fprintln(s.p.Out)
			return s.in.Err()
		}
		line := s.in.Text()
		cmd, _ := cut(line)
		if cmd == "" {
			continue
		}
		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		code := s.Exec(ctx, line)
		s.log.Debug().Str("cmd", cmd).Int("code", code).Msg("command done")
	}
}

// Exec dispatches one command line and returns an exit code
// (0 ok, 1 error, 2 usage). Titles are taken verbatim from the line,
// minus the surrounding whitespace.
func (s *Session) Exec(ctx context.Context, line string) int {
	cmd, rest := cut(line)

	switch cmd {
	case "help", "-h", "--help":
		s.PrintHelp()
		return 0

	case "ls":
		if rest != "" && rest != "-g" && rest != "--group" {
			s.p.Fail("usage: ls [-g]")
			return 2
		}
		return s.doList(rest != "")

	case "add":
		if rest == "" {
			s.p.Fail("usage: add <title...>")
			return 2
		}
		return s.doAdd(rest)

	case "done":
		idx, extra := cut(rest)
		if idx == "" || extra != "" {
			s.p.Fail("usage: done <index>")
			return 2
		}
		t, code := s.lookup("done", idx)
		if code != 0 {
			return code
		}
		s.ctl.ToggleTaskDone(t.ID)
		s.p.OK("toggled")
		return 0

	case "edit":
		idx, title := cut(rest)
		if title == "" {
			s.p.Fail("usage: edit <index> <title...>")
			return 2
		}
		t, code := s.lookup("edit", idx)
		if code != 0 {
			return code
		}
		s.ctl.EditTask(t.ID, title)
		s.p.OK("edited")
		return 0

	case "rm":
		idx, extra := cut(rest)
		if idx == "" || extra != "" {
			s.p.Fail("usage: rm <index>")
			return 2
		}
		t, code := s.lookup("rm", idx)
		if code != 0 {
			return code
		}
		return s.doRemove(ctx, t)

	case "export":
		if err := Export(s.p.Out, s.ctl.Snapshot().Tasks); err != nil {
			s.p.Fail("export: " + err.Error())
			return 1
		}
		return 0
	}

	s.p.Fail("unknown command: " + cmd)
	s.PrintHelp()
	return 2
}

// cut splits off the first word of line. rest keeps its inner spacing.
func cut(line string) (word, rest string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}

func (s *Session) PrintHelp() {
	fmt.Fprint(s.p.Out, `Commands:
  add <title...>          Add a new task (title can be multiple words)
  ls [-g]                 List tasks, optionally grouped by pending/done
  done <index>            Toggle done for task at 1-based index
  edit <index> <title...> Rename task at 1-based index
  rm <index>              Remove task at 1-based index (asks first)
  export                  Print tasks as JSON
  quit                    Leave the session (tasks are not kept)
`)
}

func (s *Session) doAdd(title string) int {
	out := s.ctl.AddTask(title)
	switch {
	case out.OK():
		s.p.OK("added")
		return 0
	case out.Reason == tasks.ReasonDuplicateTitle:
		// the notifier already told the user
		return 1
	default:
		s.p.Fail("add: " + out.Err().Error())
		return 2
	}
}

func (s *Session) doRemove(ctx context.Context, t model.Task) int {
	removed, err := s.ctl.RemoveTask(ctx, t.ID)
	if err != nil {
		s.p.Fail("rm: " + err.Error())
		return 1
	}
	if removed {
		s.p.OK("removed")
	} else {
		s.p.Hint("kept " + strconv.Quote(t.Title))
	}
	return 0
}

func (s *Session) lookup(cmd, arg string) (model.Task, int) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		s.p.Fail(cmd + ": not a number: " + arg)
		return model.Task{}, 2
	}
	list := s.ctl.Snapshot().Tasks
	if n < 1 || n > len(list) {
		s.p.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(list), n))
		s.p.Hint("Hint: run `ls` to see valid indexes")
		return model.Task{}, 2
	}
	return list[n-1], 0
}
