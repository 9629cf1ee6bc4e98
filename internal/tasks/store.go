// Package tasks holds the state transitions of a task list.
//
// Every function takes the current collection and returns the next one.
// Inputs are never modified, so a collection handed to a renderer stays
// valid after later operations.
package tasks

import (
	"errors"
	"slices"

	"github.com/idilsaglam/tasks/internal/model"
)

var (
	// ErrDuplicateTitle is reported when a task with the same title exists.
	ErrDuplicateTitle = errors.New("task with the same title already registered")
	// ErrEmptyTitle is reported when adding a task without a title.
	ErrEmptyTitle = errors.New("task title is empty")
)

// OutcomeKind tells whether Add created a task.
type OutcomeKind int

const (
	Created OutcomeKind = iota
	Rejected
)

// Reason explains a rejected add.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonDuplicateTitle
	ReasonEmptyTitle
)

// Outcome is the result of Add.
type Outcome struct {
	Kind   OutcomeKind
	Task   model.Task // set when Kind == Created
	Reason Reason     // set when Kind == Rejected
}

// OK reports whether the add went through.
func (o Outcome) OK() bool { return o.Kind == Created }

// Err returns the sentinel matching a rejection, or nil.
func (o Outcome) Err() error {
	if o.Kind != Rejected {
		return nil
	}
	switch o.Reason {
	case ReasonDuplicateTitle:
		return ErrDuplicateTitle
	case ReasonEmptyTitle:
		return ErrEmptyTitle
	}
	return nil
}

// Add appends a new pending task with the given id and title.
// Titles are compared exactly; a duplicate leaves the list unchanged.
func Add(list []model.Task, id int64, title string) ([]model.Task, Outcome) {
	if title == "" {
		return list, Outcome{Kind: Rejected, Reason: ReasonEmptyTitle}
	}
	if HasTitle(list, title) {
		return list, Outcome{Kind: Rejected, Reason: ReasonDuplicateTitle}
	}
	t := model.Task{ID: id, Title: title}
	out := make([]model.Task, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, t)
	return out, Outcome{Kind: Created, Task: t}
}

// ToggleDone flips Done on the task with the given id.
func ToggleDone(list []model.Task, id int64) []model.Task {
	return replace(list, id, func(t model.Task) model.Task {
		t.Done = !t.Done
		return t
	})
}

// Edit sets a new title on the task with the given id.
// Other titles are not checked for duplicates.
func Edit(list []model.Task, id int64, title string) []model.Task {
	return replace(list, id, func(t model.Task) model.Task {
		t.Title = title
		return t
	})
}

// Remove drops the task with the given id, keeping the order of the rest.
func Remove(list []model.Task, id int64) []model.Task {
	i := indexOf(list, id)
	if i < 0 {
		return list
	}
	out := make([]model.Task, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// HasTitle reports whether a task titled exactly title exists.
func HasTitle(list []model.Task, title string) bool {
	return slices.ContainsFunc(list, func(t model.Task) bool { return t.Title == title })
}

// Find returns the task with the given id.
func Find(list []model.Task, id int64) (model.Task, bool) {
	i := indexOf(list, id)
	if i < 0 {
		return model.Task{}, false
	}
	return list[i], true
}

// Stats counts done and pending tasks.
func Stats(list []model.Task) (done, pending int) {
	for _, t := range list {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

func indexOf(list []model.Task, id int64) int {
	return slices.IndexFunc(list, func(t model.Task) bool { return t.ID == id })
}

func replace(list []model.Task, id int64, fn func(model.Task) model.Task) []model.Task {
	i := indexOf(list, id)
	if i < 0 {
		return list
	}
	out := slices.Clone(list)
	out[i] = fn(out[i])
	return out
}
