package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tasks/internal/model"
)

func TestCheckAdd(t *testing.T) {
	list := []model.Task{{ID: 1, Title: "Buy milk"}}

	n, dup := CheckAdd(list, "Buy milk")
	assert.True(t, dup)
	assert.Equal(t, DuplicateNotice, n)

	n, dup = CheckAdd(list, "Buy bread")
	assert.False(t, dup)
	assert.Zero(t, n)
}

func TestPending_Resolve(t *testing.T) {
	p := Pending{TaskID: 3, Prompt: RemovePrompt}
	assert.False(t, p.Resolve(ChoiceNo))
	assert.True(t, p.Resolve(ChoiceYes))
}

func TestRemovePrompt_Choices(t *testing.T) {
	require.Len(t, RemovePrompt.Choices, 2)
	assert.Equal(t, "No", RemovePrompt.Choices[0].String())
	assert.Equal(t, "Yes", RemovePrompt.Choices[1].String())
}

func TestAlwaysConfirm(t *testing.T) {
	ok, err := AlwaysConfirm.Confirm(context.Background(), RemovePrompt)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEditSession(t *testing.T) {
	task := model.Task{ID: 5, Title: "Buy milk"}

	t.Run("zero value is viewing", func(t *testing.T) {
		var e EditSession
		assert.Equal(t, Viewing, e.State())
		_, _, ok := e.Submit()
		assert.False(t, ok)
	})

	t.Run("cancel restores title", func(t *testing.T) {
		var e EditSession
		e.Start(task)
		assert.True(t, e.Active())
		assert.Equal(t, "Buy milk", e.Draft())

		e.SetDraft("Buy oat milk")
		assert.Equal(t, "Buy milk", e.Cancel())
		assert.Equal(t, Viewing, e.State())
		assert.Empty(t, e.Draft())
	})

	t.Run("submit returns draft", func(t *testing.T) {
		var e EditSession
		e.Start(task)
		e.SetDraft("Buy oat milk")

		id, title, ok := e.Submit()
		assert.True(t, ok)
		assert.Equal(t, int64(5), id)
		assert.Equal(t, "Buy oat milk", title)
		assert.False(t, e.Active())
	})

	t.Run("draft ignored while viewing", func(t *testing.T) {
		var e EditSession
		e.SetDraft("ignored")
		assert.Empty(t, e.Draft())
	})
}
