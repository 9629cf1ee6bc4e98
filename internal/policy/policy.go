// Package policy holds the two product rules layered over the task store:
// titles must be distinct when a task is created, and removal always asks.
package policy

import (
	"context"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/tasks"
)

// Notice is a blocking, non-destructive message shown to the user.
type Notice struct {
	Title   string
	Message string
}

// DuplicateNotice is shown instead of adding a task whose title exists.
var DuplicateNotice = Notice{
	Title:   "Task already registered",
	Message: "You cannot register a task with the same name",
}

// Choice is an answer to a Prompt.
type Choice int

const (
	ChoiceNo Choice = iota
	ChoiceYes
)

func (c Choice) String() string {
	if c == ChoiceYes {
		return "Yes"
	}
	return "No"
}

// Prompt is a two-choice question.
type Prompt struct {
	Title   string
	Message string
	Choices []Choice
}

// RemovePrompt is asked before every removal.
var RemovePrompt = Prompt{
	Title:   "Remove item",
	Message: "Are you sure you want to remove this item?",
	Choices: []Choice{ChoiceNo, ChoiceYes},
}

// Notifier shows a notice. Used by front ends that block on the user.
type Notifier interface {
	Notify(n Notice)
}

// Confirmer asks a prompt and waits for the answer.
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) (bool, error)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// ConfirmerFunc adapts a plain function to Confirmer.
type ConfirmerFunc func(ctx context.Context, p Prompt) (bool, error)

func (f ConfirmerFunc) Confirm(ctx context.Context, p Prompt) (bool, error) { return f(ctx, p) }

// AlwaysConfirm answers Yes without asking.
var AlwaysConfirm Confirmer = ConfirmerFunc(func(context.Context, Prompt) (bool, error) { return true, nil })

// CheckAdd returns DuplicateNotice and true when title is already taken.
func CheckAdd(list []model.Task, title string) (Notice, bool) {
	if tasks.HasTitle(list, title) {
		return DuplicateNotice, true
	}
	return Notice{}, false
}

// Pending is an open remove confirmation for one task.
type Pending struct {
	TaskID int64
	Prompt Prompt
}

// Resolve reports whether the removal should proceed.
func (p Pending) Resolve(c Choice) bool {
	return c == ChoiceYes
}
