// Package tui is the full-screen task list.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/policy"
	"github.com/idilsaglam/tasks/internal/screen"
	"github.com/idilsaglam/tasks/internal/tasks"
	"github.com/idilsaglam/tasks/internal/ui"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeConfirm
	modeNotice
)

// Options tune the TUI.
type Options struct {
	AltScreen bool
	CharLimit int
	Logger    zerolog.Logger
}

// listItem adapts a Task to bubbles/list.Item
type listItem struct {
	task model.Task
}

func (i listItem) FilterValue() string { return i.task.Title }

// itemDelegate renders one task per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	box := mutedStyle.Render(boxUnchecked)
	text := it.task.Title
	if it.task.Done {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render(">") + " "
	}
	fmt.Fprint(w, prefix+box+" "+text)
}

// Model is the bubbletea model. It owns the screen controller; the list
// is rebuilt from the controller's snapshots.
type Model struct {
	ctl   *screen.Controller
	list  list.Model
	input textinput.Model
	keys  keyMap
	log   zerolog.Logger

	mode     mode
	edit     policy.EditSession
	pending  policy.Pending
	choice   policy.Choice
	notice   policy.Notice
	inputErr string

	width, height int
}

// New creates the model and its controller. ctlOpts are passed to
// screen.New; the model registers itself as the controller's notifier.
func New(opts Options, ctlOpts ...screen.Option) *Model {
	m := &Model{
		keys:   defaultKeys(),
		log:    opts.Logger,
		width:  80,
		height: 24,
	}
	m.ctl = screen.New(append(ctlOpts, screen.WithNotifier(m), screen.WithLogger(opts.Logger))...)

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("task", "tasks")
	// d removes; keep it out of the list's paging keys
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown", "f")
	l.AdditionalShortHelpKeys = m.keys.listHelp
	l.AdditionalFullHelpKeys = m.keys.listHelp
	m.list = l

	m.input = textinput.New()
	m.input.Prompt = "> "
	m.input.CharLimit = opts.CharLimit

	m.ctl.Subscribe(m.sync)
	m.sync(m.ctl.Snapshot())
	m.resize()
	return m
}

// Controller returns the controller backing the model.
func (m *Model) Controller() *screen.Controller { return m.ctl }

// Notify shows a blocking notice until the next key press.
func (m *Model) Notify(n policy.Notice) {
	m.notice = n
	m.mode = modeNotice
}

// sync rebuilds the list items and header from a snapshot.
func (m *Model) sync(s screen.Snapshot) {
	items := make([]list.Item, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		items = append(items, listItem{task: t})
	}
	m.list.SetItems(items)
	// SetItems leaves the cursor where it was, past the end after the
	// bottom row is removed
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	m.list.Title = header(s)
}

func header(s screen.Snapshot) string {
	d, p := tasks.Stats(s.Tasks)
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s",
		titleStyle.Render("Tasks"),
		successStyle.Render("✔"), d,
		pendingStyle.Render("•"), p,
		accentStyle.Render("Total"), s.Count,
		mutedStyle.Render(ui.ProgressBar(d, s.Count, 10)),
	)
}

func (m *Model) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.task, ok
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	switch m.mode {
	case modeAdd:
		return m.updateAdd(msg)
	case modeEdit:
		return m.updateEdit(msg)
	case modeConfirm:
		return m.updateConfirm(msg)
	case modeNotice:
		if _, ok := msg.(tea.KeyMsg); ok {
			// back to the add input with the rejected title still in it
			m.setMode(modeAdd)
		}
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if t, ok := m.selected(); ok {
				m.ctl.ToggleTaskDone(t.ID)
			}
			return m, nil
		case key.Matches(msg, m.keys.Remove):
			if t, ok := m.selected(); ok {
				if p, ok := m.ctl.RequestRemove(t.ID); ok {
					m.pending = p
					m.choice = policy.ChoiceNo
					m.setMode(modeConfirm)
				}
			}
			return m, nil
		case key.Matches(msg, m.keys.Add):
			m.input.SetValue("")
			m.input.Placeholder = "New task title..."
			m.setMode(modeAdd)
			return m, m.input.Focus()
		case key.Matches(msg, m.keys.Edit):
			if t, ok := m.selected(); ok {
				m.edit.Start(t)
				m.input.SetValue(t.Title)
				m.input.CursorEnd()
				m.input.Placeholder = "Edit task title..."
				m.setMode(modeEdit)
				return m, m.input.Focus()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Submit):
			title := strings.TrimSpace(m.input.Value())
			if title == "" {
				m.inputErr = "Title cannot be empty"
				return m, nil
			}
			out := m.ctl.AddTask(title)
			if !out.OK() {
				// Notify already switched to the notice
				return m, nil
			}
			m.list.Select(len(m.list.Items()) - 1)
			m.closeInput()
			return m, nil
		case key.Matches(k, m.keys.Cancel):
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.inputErr = ""
	return m, cmd
}

func (m *Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Submit):
			if strings.TrimSpace(m.edit.Draft()) == "" {
				m.inputErr = "Title cannot be empty"
				return m, nil
			}
			if id, title, ok := m.edit.Submit(); ok {
				m.ctl.EditTask(id, strings.TrimSpace(title))
			}
			m.closeInput()
			return m, nil
		case key.Matches(k, m.keys.Cancel):
			m.edit.Cancel()
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.edit.SetDraft(m.input.Value())
	m.inputErr = ""
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, m.keys.Yes):
		m.resolve(policy.ChoiceYes)
	case key.Matches(k, m.keys.No):
		m.resolve(policy.ChoiceNo)
	case key.Matches(k, m.keys.Submit):
		m.resolve(m.choice)
	case key.Matches(k, m.keys.Switch):
		if m.choice == policy.ChoiceNo {
			m.choice = policy.ChoiceYes
		} else {
			m.choice = policy.ChoiceNo
		}
	}
	return m, nil
}

func (m *Model) resolve(c policy.Choice) {
	m.ctl.ResolveRemove(m.pending, c)
	m.pending = policy.Pending{}
	m.setMode(modeBrowse)
}

func (m *Model) closeInput() {
	m.input.SetValue("")
	m.input.Blur()
	m.inputErr = ""
	m.setMode(modeBrowse)
}

func (m *Model) setMode(md mode) {
	m.mode = md
	m.resize()
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode == modeAdd || m.mode == modeEdit {
		h -= 4
	}
	m.list.SetSize(max(m.width-4, 10), max(h, 3))
}

func (m *Model) View() string {
	switch m.mode {
	case modeConfirm:
		return m.modal(m.confirmView())
	case modeNotice:
		return m.modal(m.noticeView())
	}

	content := m.list.View()
	if m.mode == modeAdd || m.mode == modeEdit {
		title := "Add new task"
		if m.mode == modeEdit {
			title = "Edit task"
		}
		if m.inputErr != "" {
			title += "  " + errorStyle.Render(m.inputErr)
		}
		bar := frameStyle.Width(max(m.width-6, 10))
		content += "\n" + bar.Render(title+"\n"+m.input.View())
	}
	return frameStyle.Render(content)
}

func (m *Model) confirmView() string {
	p := m.pending.Prompt
	buttons := make([]string, 0, len(p.Choices))
	for _, c := range p.Choices {
		style := buttonStyle
		if c == m.choice {
			style = activeButtonStyle
		}
		buttons = append(buttons, style.Render(c.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(p.Title),
		"",
		p.Message,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...),
		"",
		helpStyle.Render("y yes • n no • ←/→ choose • enter confirm"),
	)
}

func (m *Model) noticeView() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		errorStyle.Render(m.notice.Title),
		"",
		m.notice.Message,
		"",
		helpStyle.Render("press any key"),
	)
}

func (m *Model) modal(body string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(body))
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, opts Options, ctlOpts ...screen.Option) error {
	m := New(opts, ctlOpts...)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	m.log.Info().Int("tasks", m.ctl.Snapshot().Count).Msg("tui closed, tasks discarded")
	return nil
}
