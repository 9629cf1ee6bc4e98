package shell

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/policy"
	"github.com/idilsaglam/tasks/internal/screen"
	"github.com/idilsaglam/tasks/internal/ui"
)

type harness struct {
	sess   *Session
	ctl    *screen.Controller
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newHarness(input string) *harness {
	var out, errOut bytes.Buffer
	p := &ui.Printer{Out: &out, Err: &errOut}
	in := bufio.NewScanner(strings.NewReader(input))
	ctl := screen.New(
		screen.WithIDs(model.NewSequenceAt(1)),
		screen.WithNotifier(NoticePrinter(p)),
		screen.WithConfirmer(NewLineConfirmer(in, &out)),
	)
	return &harness{
		sess:   New(ctl, in, p, zerolog.Nop()),
		ctl:    ctl,
		out:    &out,
		errOut: &errOut,
	}
}

func titles(c *screen.Controller) []string {
	var out []string
	for _, t := range c.Snapshot().Tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestSession_Run_Scenario(t *testing.T) {
	h := newHarness(strings.Join([]string{
		"add Buy milk",
		"add Buy milk",
		"done 1",
		"edit 1 Buy oat milk",
		"rm 1",
		"n",
		"rm 1",
		"y",
		"quit",
		"add never reached",
	}, "\n"))

	require.NoError(t, h.sess.Run(context.Background()))

	assert.Empty(t, h.ctl.Snapshot().Tasks)
	assert.Contains(t, h.errOut.String(), "Task already registered: You cannot register a task with the same name")
	assert.Contains(t, h.out.String(), "Remove item: Are you sure you want to remove this item? [y/N]")
	assert.Contains(t, h.errOut.String(), `kept "Buy oat milk"`)
	assert.Contains(t, h.out.String(), "✔ removed")
}

func TestSession_Run_EOFDeclinesRemove(t *testing.T) {
	h := newHarness("add a\nrm 1")
	require.NoError(t, h.sess.Run(context.Background()))
	assert.Equal(t, []string{"a"}, titles(h.ctl))
}

func TestSession_Exec_Codes(t *testing.T) {
	h := newHarness("")
	ctx := context.Background()

	tests := []struct {
		line string
		want int
	}{
		{"help", 0},
		{"add", 2},
		{"add   ", 2},
		{"add one", 0},
		{"add one", 1},
		{"done", 2},
		{"done x", 2},
		{"done 5", 2},
		{"done 1 2", 2},
		{"done 1", 0},
		{"edit 1", 2},
		{"edit 0 x", 2},
		{"rm 1 2", 2},
		{"ls", 0},
		{"ls -g", 0},
		{"ls --sorted", 2},
		{"export", 0},
		{"frobnicate", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, h.sess.Exec(ctx, tt.line), "%q", tt.line)
	}
	assert.Equal(t, []model.Task{{ID: 1, Title: "one", Done: true}}, h.ctl.Snapshot().Tasks)
}

func TestSession_List(t *testing.T) {
	ui.SetTheme("mono")
	t.Cleanup(func() { ui.SetTheme("classic") })

	h := newHarness("")
	ctx := context.Background()
	h.sess.Exec(ctx, "add first")
	h.sess.Exec(ctx, "add second")
	h.sess.Exec(ctx, "done 2")
	h.out.Reset()

	require.Equal(t, 0, h.sess.Exec(ctx, "ls"))
	got := h.out.String()
	assert.Contains(t, got, "Tasks  ok 1  - 1  Total 2")
	assert.Contains(t, got, " 1. [ ] first")
	assert.Contains(t, got, " 2. [x] second")

	h.out.Reset()
	require.Equal(t, 0, h.sess.Exec(ctx, "ls --group"))
	got = h.out.String()
	pending := strings.Index(got, "Pending")
	done := strings.Index(got, "Done")
	require.True(t, pending >= 0 && done > pending)
	assert.Contains(t, got[pending:done], " 1. [ ] first")
	assert.Contains(t, got[done:], " 2. [x] second")
}

func TestSession_TitlesKeptAsTyped(t *testing.T) {
	h := newHarness(strings.Join([]string{
		"add Buy   milk",
		"  add Buy milk  ",
		"add Buy milk",
		"edit 2   Buy  oat milk",
		"quit",
	}, "\n"))

	require.NoError(t, h.sess.Run(context.Background()))

	assert.Equal(t, []string{"Buy   milk", "Buy  oat milk"}, titles(h.ctl))
	assert.Contains(t, h.errOut.String(), "Task already registered")
}

func TestCut(t *testing.T) {
	tests := []struct {
		line, word, rest string
	}{
		{"", "", ""},
		{"ls", "ls", ""},
		{"  add  Buy   milk ", "add", "Buy   milk"},
		{"edit\t2 x", "edit", "2 x"},
	}
	for _, tt := range tests {
		word, rest := cut(tt.line)
		assert.Equal(t, tt.word, word, "%q", tt.line)
		assert.Equal(t, tt.rest, rest, "%q", tt.line)
	}
}

func TestSession_ListEmpty(t *testing.T) {
	h := newHarness("")
	h.sess.Exec(context.Background(), "ls")
	assert.Contains(t, h.out.String(), "no tasks")
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	list := []model.Task{{ID: 3, Title: "Buy milk", Done: true}}
	require.NoError(t, Export(&buf, list))

	var got []model.Task
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, list, got)
}

func TestLineConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" yes \n", true},
		{"n\n", false},
		{"\n", false},
		{"sure\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		c := NewLineConfirmer(bufio.NewScanner(strings.NewReader(tt.input)), &out)
		got, err := c.Confirm(context.Background(), policy.RemovePrompt)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.True(t, strings.HasPrefix(out.String(), "Remove item: "))
	}
}
