package shell

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/tasks"
	"github.com/idilsaglam/tasks/internal/ui"
)

const maxTitleWidth = 80

func (s *Session) doList(group bool) int {
	snap := s.ctl.Snapshot()
	th := ui.Current()

	d, p := tasks.Stats(snap.Tasks)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		s.p.C(th.Title, "Tasks"),
		s.p.C(th.Success, th.SymOK), d,
		s.p.C(th.Pending, th.SymPending), p,
		s.p.C(th.Accent, "Total"), snap.Count,
	)

	lines := []string{header, s.p.C(th.Muted, ui.ProgressBar(d, d+p, 28)), ""}
	if group {
		lines = append(lines, s.groupLines(snap.Tasks)...)
	} else {
		lines = append(lines, s.flatLines(snap.Tasks, 0)...)
	}
	lines = append(lines, "", s.p.C(th.Muted, "Tip: add with `add Buy milk`"))
	ui.Panel(s.p.Out, lines)
	return 0
}

// flatLines renders one line per task. offset shifts the printed indexes
// so grouped output still shows the index accepted by done/edit/rm.
func (s *Session) flatLines(list []model.Task, offset int) []string {
	th := ui.Current()
	if len(list) == 0 {
		return []string{s.p.C(th.Muted, "no tasks")}
	}
	out := make([]string, 0, len(list))
	for i, t := range list {
		box, color := th.BoxUnchecked, th.Muted
		if t.Done {
			box, color = th.BoxChecked, th.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			s.p.C(th.Muted, fmt.Sprintf("%2d.", i+1+offset)),
			s.p.C(color, box),
			ansi.Truncate(t.Title, maxTitleWidth, "...")))
	}
	return out
}

func (s *Session) groupLines(list []model.Task) []string {
	th := ui.Current()
	var lines []string
	for _, section := range []struct {
		name string
		done bool
	}{{"Pending", false}, {"Done", true}} {
		lines = append(lines, s.p.C(th.Accent, section.name))
		n := 0
		for i, t := range list {
			if t.Done != section.done {
				continue
			}
			lines = append(lines, s.flatLines([]model.Task{t}, i)...)
			n++
		}
		if n == 0 {
			lines = append(lines, s.p.C(th.Muted, "(none)"))
		}
		lines = append(lines, "")
	}
	return lines[:len(lines)-1]
}
