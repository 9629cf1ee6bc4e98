package model

import "time"

// Task is the domain model for a to-do entry.
// ID never changes once assigned; Title and Done are replaced, never
// mutated in place.
type Task struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// IDSource hands out task ids.
type IDSource interface {
	NextID() int64
}

// Sequence is a clock-seeded monotonic id source. Ids look like
// millisecond timestamps but two calls in the same tick never collide.
type Sequence struct {
	last int64
	now  func() time.Time
}

// NewSequence returns a Sequence reading the wall clock.
func NewSequence() *Sequence {
	return &Sequence{now: time.Now}
}

// NewSequenceAt returns a Sequence whose first id is start.
// Handy in tests where the exact values matter.
func NewSequenceAt(start int64) *Sequence {
	return &Sequence{last: start - 1, now: func() time.Time { return time.Time{} }}
}

func (s *Sequence) NextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
