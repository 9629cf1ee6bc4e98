// Package screen owns the task collection of one running screen and routes
// user actions through the add and remove policies into the task store.
package screen

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/policy"
	"github.com/idilsaglam/tasks/internal/tasks"
)

// Snapshot is what renderers receive after every change.
type Snapshot struct {
	Tasks []model.Task
	Count int
}

// Controller holds the current collection. It is not safe for concurrent
// use; every front end drives it from a single event loop.
type Controller struct {
	list      []model.Task
	ids       model.IDSource
	notifier  policy.Notifier
	confirmer policy.Confirmer
	log       zerolog.Logger

	subs   map[int]func(Snapshot)
	nextID int
}

// Option configures a Controller.
type Option func(*Controller)

// WithIDs sets the id source. Defaults to a clock-seeded sequence.
func WithIDs(ids model.IDSource) Option {
	return func(c *Controller) { c.ids = ids }
}

// WithNotifier sets who is told about a rejected add.
func WithNotifier(n policy.Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithConfirmer sets who is asked before RemoveTask.
func WithConfirmer(cf policy.Confirmer) Option {
	return func(c *Controller) { c.confirmer = cf }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New creates a Controller with an empty collection.
func New(opts ...Option) *Controller {
	c := &Controller{
		ids:  model.NewSequence(),
		log:  zerolog.Nop(),
		subs: map[int]func(Snapshot){},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current collection.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{Tasks: c.list, Count: len(c.list)}
}

// Subscribe registers fn to receive a Snapshot after every change.
// The returned func removes the subscription.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

// AddTask adds a task unless one with the same title already exists, in
// which case the notifier is shown the duplicate notice.
func (c *Controller) AddTask(title string) tasks.Outcome {
	if n, dup := policy.CheckAdd(c.list, title); dup {
		c.log.Info().Str("title", title).Msg("duplicate task rejected")
		if c.notifier != nil {
			c.notifier.Notify(n)
		}
		return tasks.Outcome{Kind: tasks.Rejected, Reason: tasks.ReasonDuplicateTitle}
	}

	next, out := tasks.Add(c.list, c.ids.NextID(), title)
	if !out.OK() {
		c.log.Info().Str("title", title).Err(out.Err()).Msg("task rejected")
		return out
	}
	c.log.Debug().Int64("id", out.Task.ID).Str("title", title).Msg("task added")
	c.set(next)
	return out
}

// ToggleTaskDone flips the done flag of a task.
func (c *Controller) ToggleTaskDone(id int64) {
	c.log.Debug().Int64("id", id).Msg("toggle task")
	c.set(tasks.ToggleDone(c.list, id))
}

// EditTask sets a new title on a task.
func (c *Controller) EditTask(id int64, title string) {
	c.log.Debug().Int64("id", id).Str("title", title).Msg("edit task")
	c.set(tasks.Edit(c.list, id, title))
}

// RemoveTask asks the confirmer and removes the task on Yes.
// Without a confirmer the removal goes through.
func (c *Controller) RemoveTask(ctx context.Context, id int64) (bool, error) {
	p, ok := c.RequestRemove(id)
	if !ok {
		return false, nil
	}

	choice := policy.ChoiceYes
	if c.confirmer != nil {
		yes, err := c.confirmer.Confirm(ctx, p.Prompt)
		if err != nil {
			return false, fmt.Errorf("confirm remove: %w", err)
		}
		if !yes {
			choice = policy.ChoiceNo
		}
	}

	return c.ResolveRemove(p, choice), nil
}

// RequestRemove opens a remove confirmation for id. It reports false when
// no such task exists, in which case there is nothing to ask.
func (c *Controller) RequestRemove(id int64) (policy.Pending, bool) {
	if _, found := tasks.Find(c.list, id); !found {
		return policy.Pending{}, false
	}
	return policy.Pending{TaskID: id, Prompt: policy.RemovePrompt}, true
}

// ResolveRemove applies the user's answer to an open confirmation.
func (c *Controller) ResolveRemove(p policy.Pending, choice policy.Choice) bool {
	if !p.Resolve(choice) {
		c.log.Info().Int64("id", p.TaskID).Msg("remove declined")
		return false
	}
	c.log.Debug().Int64("id", p.TaskID).Msg("task removed")
	c.set(tasks.Remove(c.list, p.TaskID))
	return true
}

func (c *Controller) set(next []model.Task) {
	if slices.Equal(c.list, next) {
		return
	}
	c.list = next
	snap := c.Snapshot()
	for _, fn := range c.subs {
		fn(snap)
	}
}
