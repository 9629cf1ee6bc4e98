package screen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/policy"
	"github.com/idilsaglam/tasks/internal/tasks"
)

type answers struct {
	replies []bool
	asked   []policy.Prompt
}

func (a *answers) Confirm(_ context.Context, p policy.Prompt) (bool, error) {
	a.asked = append(a.asked, p)
	r := a.replies[0]
	a.replies = a.replies[1:]
	return r, nil
}

func newController(t *testing.T, opts ...Option) (*Controller, *[]policy.Notice, *[]Snapshot) {
	t.Helper()
	var notices []policy.Notice
	var snaps []Snapshot
	base := []Option{
		WithIDs(model.NewSequenceAt(1)),
		WithNotifier(policy.NotifierFunc(func(n policy.Notice) { notices = append(notices, n) })),
	}
	c := New(append(base, opts...)...)
	c.Subscribe(func(s Snapshot) { snaps = append(snaps, s) })
	return c, &notices, &snaps
}

func TestController_Scenario(t *testing.T) {
	confirm := &answers{replies: []bool{false, true}}
	c, notices, snaps := newController(t, WithConfirmer(confirm))
	ctx := context.Background()

	out := c.AddTask("Buy milk")
	require.True(t, out.OK())
	id := out.Task.ID
	assert.Equal(t, []model.Task{{ID: id, Title: "Buy milk"}}, c.Snapshot().Tasks)

	again := c.AddTask("Buy milk")
	assert.Equal(t, tasks.Rejected, again.Kind)
	assert.Equal(t, tasks.ReasonDuplicateTitle, again.Reason)
	assert.Equal(t, 1, c.Snapshot().Count)
	assert.Equal(t, []policy.Notice{policy.DuplicateNotice}, *notices)

	c.ToggleTaskDone(id)
	assert.True(t, c.Snapshot().Tasks[0].Done)

	c.EditTask(id, "Buy oat milk")
	assert.Equal(t, model.Task{ID: id, Title: "Buy oat milk", Done: true}, c.Snapshot().Tasks[0])

	removed, err := c.RemoveTask(ctx, id)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 1, c.Snapshot().Count)

	removed, err = c.RemoveTask(ctx, id)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Zero(t, c.Snapshot().Count)

	assert.Equal(t, []policy.Prompt{policy.RemovePrompt, policy.RemovePrompt}, confirm.asked)
	// add, toggle, edit, remove
	assert.Len(t, *snaps, 4)
	assert.Zero(t, (*snaps)[3].Count)
}

func TestController_UniqueIDs(t *testing.T) {
	c := New()
	a := c.AddTask("a")
	b := c.AddTask("b")
	assert.NotEqual(t, a.Task.ID, b.Task.ID)
}

func TestController_EmptyTitle(t *testing.T) {
	c, notices, snaps := newController(t)

	out := c.AddTask("")
	assert.ErrorIs(t, out.Err(), tasks.ErrEmptyTitle)
	assert.Empty(t, *notices)
	assert.Empty(t, *snaps)
}

func TestController_AbsentIDIsSilent(t *testing.T) {
	c, _, snaps := newController(t, WithConfirmer(&answers{}))
	c.AddTask("one")
	before := c.Snapshot()
	*snaps = nil

	c.ToggleTaskDone(404)
	c.EditTask(404, "x")
	removed, err := c.RemoveTask(context.Background(), 404)

	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, before, c.Snapshot())
	assert.Empty(t, *snaps)
}

func TestController_TwoStepRemove(t *testing.T) {
	c, _, _ := newController(t)
	id := c.AddTask("one").Task.ID

	p, ok := c.RequestRemove(id)
	require.True(t, ok)
	assert.Equal(t, id, p.TaskID)
	assert.Equal(t, policy.RemovePrompt, p.Prompt)

	assert.False(t, c.ResolveRemove(p, policy.ChoiceNo))
	assert.Equal(t, 1, c.Snapshot().Count)

	assert.True(t, c.ResolveRemove(p, policy.ChoiceYes))
	assert.Zero(t, c.Snapshot().Count)

	_, ok = c.RequestRemove(id)
	assert.False(t, ok)
}

func TestController_ConfirmError(t *testing.T) {
	boom := errors.New("tty closed")
	c := New(WithConfirmer(policy.ConfirmerFunc(func(context.Context, policy.Prompt) (bool, error) {
		return false, boom
	})))
	id := c.AddTask("one").Task.ID

	removed, err := c.RemoveTask(context.Background(), id)
	assert.ErrorIs(t, err, boom)
	assert.False(t, removed)
	assert.Equal(t, 1, c.Snapshot().Count)
}

func TestController_Unsubscribe(t *testing.T) {
	c := New()
	calls := 0
	stop := c.Subscribe(func(Snapshot) { calls++ })

	c.AddTask("a")
	stop()
	c.AddTask("b")

	assert.Equal(t, 1, calls)
}

func TestController_SnapshotsAreStable(t *testing.T) {
	c := New()
	c.AddTask("a")
	old := c.Snapshot()

	c.ToggleTaskDone(old.Tasks[0].ID)
	c.AddTask("b")

	assert.False(t, old.Tasks[0].Done)
	assert.Equal(t, 1, old.Count)
}
