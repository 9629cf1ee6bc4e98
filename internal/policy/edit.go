package policy

import "github.com/idilsaglam/tasks/internal/model"

// EditState is the state of a single task's inline edit.
type EditState int

const (
	Viewing EditState = iota
	Editing
)

// EditSession tracks the draft title of the task being edited.
// The zero value is Viewing.
type EditSession struct {
	state    EditState
	id       int64
	original string
	draft    string
}

// Start switches to Editing with the task's current title as draft.
func (e *EditSession) Start(t model.Task) {
	e.state = Editing
	e.id = t.ID
	e.original = t.Title
	e.draft = t.Title
}

// SetDraft replaces the draft text. Ignored while Viewing.
func (e *EditSession) SetDraft(s string) {
	if e.state == Editing {
		e.draft = s
	}
}

// Cancel drops the draft and returns the title to show.
func (e *EditSession) Cancel() string {
	title := e.original
	*e = EditSession{}
	return title
}

// Submit leaves Editing and returns the id and new title to apply.
// ok is false when no edit was in progress.
func (e *EditSession) Submit() (id int64, title string, ok bool) {
	if e.state != Editing {
		return 0, "", false
	}
	id, title = e.id, e.draft
	*e = EditSession{}
	return id, title, true
}

func (e *EditSession) State() EditState { return e.state }
func (e *EditSession) Active() bool     { return e.state == Editing }
func (e *EditSession) TaskID() int64    { return e.id }
func (e *EditSession) Draft() string    { return e.draft }
