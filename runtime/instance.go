package runtime

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	hooks "github.com/wippyai/hooks-runtime"
	"github.com/wippyai/hooks-runtime/arena"
	"github.com/wippyai/hooks-runtime/errors"
	"github.com/wippyai/hooks-runtime/scheduler"
)

// State is an instance's lifecycle state.
type State uint8

const (
	StateIdle State = iota
	StateRendering
	StateEffectsPending
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRendering:
		return "rendering"
	case StateEffectsPending:
		return "effects_pending"
	case StateDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Instance is one mounted occurrence of a component function. It owns the
// hook record arena and effect scheduler for that occurrence and lives from
// Mount to Destroy, across any number of renders.
//
// Render, CommitApplied and Destroy belong to the host's render loop and
// must not be called concurrently with each other for the same instance.
// Setters are safe from any goroutine.
type Instance struct {
	id    hooks.InstanceID
	rt    *Runtime
	fn    ComponentFunc
	arena *arena.Arena
	sched *scheduler.Scheduler

	mu    sync.Mutex
	state State
	dirty bool
}

// ID returns the instance's identity within its runtime.
func (i *Instance) ID() hooks.InstanceID {
	return i.id
}

// State returns the current lifecycle state.
func (i *Instance) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Render opens a render session, runs the component function and validates
// the hook invariants. On success the instance is left in the
// effects-pending state and the component's output is returned; the host
// applies it and then calls CommitApplied.
//
// Hook misuse (order or count mismatch, reentrant render) aborts the
// render: the error is returned, the pre-render records are intact, and the
// instance is back in the idle state. A panic escaping the component
// function itself is returned as a render_panic error.
func (i *Instance) Render() (out any, err error) {
	i.mu.Lock()
	switch i.state {
	case StateDestroyed:
		i.mu.Unlock()
		return nil, errors.Destroyed(errors.PhaseRender, "render after unmount")
	case StateRendering:
		i.mu.Unlock()
		return nil, errors.ReentrantRender("instance is already rendering")
	case StateEffectsPending:
		i.mu.Unlock()
		return nil, errors.InvalidState(errors.PhaseRender, "render before commit of the previous render was applied")
	}

	cur, berr := i.arena.Begin()
	if berr != nil {
		i.mu.Unlock()
		return nil, berr
	}
	i.state = StateRendering
	i.dirty = false
	ctx := &Ctx{inst: i, cur: cur}
	i.mu.Unlock()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ctx.done = true
		i.mu.Lock()
		i.arena.Abort(cur)
		i.sched.Drop()
		if i.state == StateRendering {
			i.state = StateIdle
		}
		i.mu.Unlock()

		out = nil
		switch e := r.(type) {
		case *errors.Error:
			err = e
		case error:
			err = errors.RenderPanic(e)
		default:
			err = errors.RenderPanic(fmt.Errorf("%v", e))
		}
		Logger().Debug("render aborted",
			zap.Uint64("id", uint64(i.id)), zap.Error(err))
	}()

	// The lock is not held while the component runs: hook calls are owned by
	// this goroutine, and setters fired from others take the lock themselves.
	out = i.fn(ctx)
	ctx.done = true

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state == StateDestroyed {
		i.arena.Abort(cur)
		i.sched.Drop()
		return nil, errors.Destroyed(errors.PhaseRender, "instance destroyed during render")
	}
	if cerr := i.arena.End(cur); cerr != nil {
		i.sched.Drop()
		i.state = StateIdle
		return nil, cerr
	}

	i.state = StateEffectsPending
	Logger().Debug("render complete",
		zap.Uint64("id", uint64(i.id)),
		zap.Int("slots", i.arena.Len()),
		zap.Int("pending_effects", i.sched.Pending()))
	return out, nil
}

// CommitApplied tells the instance that the host has applied the render's
// output. Queued effects flush here, in slot order; effect failures go to
// Host.ReportEffectError and never corrupt the record arena. If state
// changed during the render or the flush, a single rerender request is
// fired once the instance is idle again.
func (i *Instance) CommitApplied() error {
	i.mu.Lock()
	switch i.state {
	case StateDestroyed:
		i.mu.Unlock()
		return errors.Destroyed(errors.PhaseFlush, "commit after unmount")
	case StateIdle, StateRendering:
		state := i.state
		i.mu.Unlock()
		return errors.InvalidState(errors.PhaseFlush, "commit applied in state %s", state)
	}
	i.mu.Unlock()

	i.sched.Flush(func(slot int, err error) {
		i.rt.host.ReportEffectError(i.id, slot, err)
	})

	i.mu.Lock()
	if i.state == StateDestroyed {
		i.mu.Unlock()
		return nil
	}
	i.state = StateIdle
	fire := i.dirty
	i.mu.Unlock()

	if fire {
		Logger().Debug("rerender requested after flush", zap.Uint64("id", uint64(i.id)))
		i.rt.host.RequestRerender(i.id)
	}
	return nil
}

// Destroy unmounts the instance from any lifecycle state. Pending effects
// that never flushed are dropped, every live cleanup runs exactly once in
// slot order, and the record arena is discarded. Destroy is idempotent;
// setter calls after it are no-ops.
func (i *Instance) Destroy() {
	i.mu.Lock()
	if i.state == StateDestroyed {
		i.mu.Unlock()
		return
	}
	i.state = StateDestroyed
	records := i.arena.Records()
	i.mu.Unlock()

	i.sched.Drop()
	i.sched.RunCleanups(records, func(slot int, err error) {
		i.rt.host.ReportEffectError(i.id, slot, err)
	})

	i.mu.Lock()
	i.arena.Discard()
	i.mu.Unlock()

	i.rt.remove(i.id)
	Logger().Debug("instance destroyed", zap.Uint64("id", uint64(i.id)))
}

// setState funnels both setter forms. apply sees the value as currently
// stored, so updaters queued in one batch chain instead of observing the
// value from the render that started the batch.
func (i *Instance) setState(rec *arena.StateRecord, apply func(any) any) {
	i.mu.Lock()
	if i.state == StateDestroyed {
		i.mu.Unlock()
		return
	}

	old := rec.Value
	next := apply(old)
	rec.Value = next

	// Bail-out: an identical value never dirties the instance. Permitted
	// optimization; callers cannot rely on the skipped render.
	if identical(old, next) {
		i.mu.Unlock()
		return
	}
	if i.dirty {
		i.mu.Unlock()
		return
	}
	i.dirty = true
	fire := i.state == StateIdle
	i.mu.Unlock()

	if fire {
		i.rt.host.RequestRerender(i.id)
	}
}

// identical is == with a recover guard for uncomparable operands.
func identical(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
