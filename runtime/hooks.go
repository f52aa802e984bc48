package runtime

import (
	"github.com/wippyai/hooks-runtime/arena"
	"github.com/wippyai/hooks-runtime/errors"
	"github.com/wippyai/hooks-runtime/scheduler"
)

// Ctx is the render session context passed to a component function. Hook
// calls go through it to reach the instance's record arena; it is valid
// only for the duration of the render that created it.
type Ctx struct {
	inst *Instance
	cur  *arena.Cursor
	done bool
}

// Instance returns the instance being rendered.
func (c *Ctx) Instance() *Instance {
	return c.inst
}

// next services one hook call. Misuse panics with the structured error;
// Instance.Render recovers it at the render boundary and returns it.
func (c *Ctx) next(kind arena.Kind, alloc func() arena.Record) arena.Record {
	if c.done {
		panic(errors.InvalidState(errors.PhaseRender,
			"hook called outside the render session that created its context"))
	}
	rec, err := c.cur.Next(kind, alloc)
	if err != nil {
		panic(err)
	}
	return rec
}

// Setter replaces a state cell's value and schedules a re-render when it
// changed. The zero Setter is not usable; obtain one from UseState.
type Setter[T any] struct {
	inst *Instance
	rec  *arena.StateRecord
}

// Set replaces the cell's value with v. Whole-value replacement: there is
// no merging of struct fields. Safe from any goroutine; a no-op after the
// instance was destroyed.
func (s Setter[T]) Set(v T) {
	if s.inst == nil {
		return
	}
	s.inst.setState(s.rec, func(any) any { return v })
}

// Update replaces the cell's value with fn applied to the current value.
// Successive Updates before the next render chain, each observing the
// previous one's result. fn must be pure: it runs under the instance lock
// and must not call setters or render-side APIs.
func (s Setter[T]) Update(fn func(T) T) {
	if s.inst == nil {
		return
	}
	s.inst.setState(s.rec, func(cur any) any { return fn(cur.(T)) })
}

// UseState declares a state cell at the current hook position. The initial
// value is stored on the slot's first render and never re-evaluated; later
// renders return whatever the cell currently holds.
func UseState[T any](ctx *Ctx, initial T) (T, Setter[T]) {
	return UseStateFunc(ctx, func() T { return initial })
}

// UseStateFunc is the lazy-init form of UseState: init runs only on the
// slot's first render. Use it when computing the initial value is costly.
func UseStateFunc[T any](ctx *Ctx, init func() T) (T, Setter[T]) {
	rec := ctx.next(arena.KindState, func() arena.Record {
		return &arena.StateRecord{Value: init()}
	})
	st := rec.(*arena.StateRecord)

	ctx.inst.mu.Lock()
	v := st.Value.(T)
	ctx.inst.mu.Unlock()

	return v, Setter[T]{inst: ctx.inst, rec: st}
}

// Ref is a mutable box whose identity is stable across renders. Mutating
// Current never triggers a re-render; it is the place to stash handles to
// external resources that must survive renders without being part of the
// rendering contract.
type Ref[T any] struct {
	Current T
}

// UseRef declares a ref cell at the current hook position. The first render
// boxes initial; every later render returns the same pointer.
func UseRef[T any](ctx *Ctx, initial T) *Ref[T] {
	rec := ctx.next(arena.KindRef, func() arena.Record {
		return &arena.RefRecord{Box: &Ref[T]{Current: initial}}
	})
	return rec.(*arena.RefRecord).Box.(*Ref[T])
}

// UseEffect declares a side effect at the current hook position. fn never
// runs during the render; it is queued and flushed after the host applies
// the commit, subject to the dependency decision rule.
//
// deps semantics: nil means no dependency array (run on every render),
// Deps() means the run-once form, Deps(vs...) re-runs only when an element
// changes. The previous cleanup, if any, always runs before fn runs again
// and at Destroy.
func UseEffect(ctx *Ctx, fn scheduler.EffectFunc, deps []any) {
	slot := ctx.cur.Pos()
	rec := ctx.next(arena.KindEffect, func() arena.Record {
		return &arena.EffectRecord{}
	})
	ctx.inst.sched.Enqueue(slot, rec.(*arena.EffectRecord), fn, deps)
}

// Deps captures effect dependencies. It always returns a non-nil slice, so
// Deps() is the empty-array, run-once form; pass a literal nil to UseEffect
// for the no-array, run-every-render form.
func Deps(vs ...any) []any {
	if vs == nil {
		return []any{}
	}
	return vs
}
