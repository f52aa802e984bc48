package arena

import (
	"github.com/wippyai/hooks-runtime/errors"
)

// Arena is the ordered hook record storage for one component instance.
// Records are appended on first render and addressed by position on every
// render after that; they are never removed individually.
//
// An Arena is not safe for concurrent use. The owning instance serializes
// access: at most one render session is open at a time, and Begin rejects
// reentrancy as a second line of defense.
type Arena struct {
	records []Record
	open    bool
}

// New creates an empty arena.
func New() *Arena {
	return &Arena{
		records: make([]Record, 0, 8),
	}
}

// Cursor walks the arena's records in call order during one render session.
type Cursor struct {
	arena *Arena
	pos   int
}

// Begin opens a render session and returns a cursor positioned at slot 0.
// It fails if a session is already open on this arena.
func (a *Arena) Begin() (*Cursor, error) {
	if a.open {
		return nil, errors.ReentrantRender("render session already open on this arena")
	}
	a.open = true
	return &Cursor{arena: a}, nil
}

// Next services one hook call: within bounds it returns the existing record,
// past the end it appends a fresh one from alloc. The record's variant must
// match kind; a mismatch means the component changed its hook call order
// since the previous render.
func (c *Cursor) Next(kind Kind, alloc func() Record) (Record, error) {
	a := c.arena
	if c.pos < len(a.records) {
		rec := a.records[c.pos]
		if rec.Kind() != kind {
			return nil, errors.OrderMismatch(c.pos, rec.Kind().String(), kind.String())
		}
		c.pos++
		return rec, nil
	}

	rec := alloc()
	a.records = append(a.records, rec)
	c.pos++
	return rec, nil
}

// Pos returns the number of hook calls serviced so far in this session.
func (c *Cursor) Pos() int {
	return c.pos
}

// End closes the render session. It fails if the render made fewer hook
// calls than the arena has records; the "more than before" case is handled
// naturally by Next appending.
func (a *Arena) End(c *Cursor) error {
	a.open = false
	if c.pos != len(a.records) {
		return errors.CountMismatch(c.pos, len(a.records))
	}
	return nil
}

// Abort closes the render session without the count check. Used when the
// render itself failed and the cursor position is meaningless. A cursor
// from another arena is ignored.
func (a *Arena) Abort(c *Cursor) {
	if c == nil || c.arena != a {
		return
	}
	a.open = false
}

// Len returns the number of stored records.
func (a *Arena) Len() int {
	return len(a.records)
}

// Records returns the underlying record sequence in declaration order. The
// caller must not reorder it; the flush and destroy walks read it in place.
func (a *Arena) Records() []Record {
	return a.records
}

// Open reports whether a render session is currently open.
func (a *Arena) Open() bool {
	return a.open
}

// Discard drops every record. Called at instance destruction, after
// cleanups have run.
func (a *Arena) Discard() {
	a.records = nil
	a.open = false
}
