package scheduler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/hooks-runtime/arena"
	"github.com/wippyai/hooks-runtime/errors"
)

// Cleanup undoes whatever its effect callback set up: stopping a timer,
// aborting a request, removing a listener. A nil Cleanup means the effect
// has nothing to undo.
type Cleanup func()

// EffectFunc is one effect callback. It runs after commit, never during the
// synchronous body of a render.
type EffectFunc func() Cleanup

// pending is one enqueued effect execution for the current render.
type pending struct {
	rec  *arena.EffectRecord
	fn   EffectFunc
	deps []any
	slot int
}

// Scheduler owns the pending-effect queue for one component instance.
// It is driven by the instance's render session: Enqueue during the render,
// Flush after commit, RunCleanups or Drop at destroy. Like the arena it is
// single-owner; the instance serializes access.
type Scheduler struct {
	eq      DepsEqual
	pending []pending
	// stopped aborts an in-flight Flush: a callback may destroy the owning
	// instance, and the slots after it must not run.
	stopped bool
}

// New creates a scheduler with the given dependency comparison strategy.
// A nil eq falls back to DefaultDepsEqual.
func New(eq DepsEqual) *Scheduler {
	if eq == nil {
		eq = DefaultDepsEqual
	}
	return &Scheduler{eq: eq}
}

// Enqueue records one effect hook call made during the current render.
// deps follows the hook convention: nil means no dependency array was
// declared, a non-nil empty slice means the run-once form.
func (s *Scheduler) Enqueue(slot int, rec *arena.EffectRecord, fn EffectFunc, deps []any) {
	s.pending = append(s.pending, pending{
		rec:  rec,
		fn:   fn,
		deps: deps,
		slot: slot,
	})
}

// Pending returns the number of enqueued effect executions.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Flush runs the decision rule for every enqueued effect, in slot order,
// and empties the queue. Failed callbacks are reported through report and
// do not stop later slots from flushing; a Drop during the walk does stop
// them. report may be nil.
func (s *Scheduler) Flush(report func(slot int, err error)) {
	queue := s.pending
	s.pending = nil
	s.stopped = false

	for _, p := range queue {
		if s.stopped {
			Logger().Debug("flush stopped", zap.Int("slot", p.slot))
			return
		}
		if s.shouldRun(p) {
			s.run(p, report)
		} else {
			Logger().Debug("effect skipped, deps unchanged", zap.Int("slot", p.slot))
		}
	}
}

func (s *Scheduler) shouldRun(p pending) bool {
	if !p.rec.HasRun {
		return true
	}
	if p.deps == nil {
		return true
	}
	// The previous render's deps shape changing (array added or removed)
	// counts as unequal.
	if !p.rec.DepsKnown || p.rec.LastDeps == nil {
		return true
	}
	return !s.eq(p.rec.LastDeps, p.deps)
}

// run invokes the slot's previous cleanup and then the callback. The deps
// bookkeeping advances whether or not the callback succeeds.
func (s *Scheduler) run(p pending, report func(slot int, err error)) {
	rec := p.rec

	if rec.Cleanup != nil {
		cleanup := rec.Cleanup
		rec.Cleanup = nil
		if err := invoke(cleanup); err != nil {
			reportErr(report, p.slot, err)
		}
	}

	rec.LastDeps = p.deps
	rec.DepsKnown = true
	rec.HasRun = true

	next, err := invokeEffect(p.fn)
	if err != nil {
		reportErr(report, p.slot, err)
		return
	}
	if next == nil {
		return
	}
	if s.stopped {
		// The callback destroyed the instance; the destroy-time cleanup walk
		// has already passed this record, so run the new cleanup now instead
		// of storing it where nothing will ever reach it.
		if cerr := invoke(next); cerr != nil {
			reportErr(report, p.slot, cerr)
		}
		return
	}
	rec.Cleanup = next
}

// Drop discards pending effects without running them and stops any flush
// that is currently walking the queue. Used when the instance is destroyed
// between render and commit, or from inside an effect callback.
func (s *Scheduler) Drop() {
	s.pending = nil
	s.stopped = true
}

// RunCleanups invokes every live cleanup exactly once, in declaration
// order, clearing each as it runs. Records that are not effect slots are
// skipped. Panicking cleanups are reported and do not stop the walk.
func (s *Scheduler) RunCleanups(records []arena.Record, report func(slot int, err error)) {
	for slot, r := range records {
		rec, ok := r.(*arena.EffectRecord)
		if !ok || rec.Cleanup == nil {
			continue
		}
		cleanup := rec.Cleanup
		rec.Cleanup = nil
		if err := invoke(cleanup); err != nil {
			reportErr(report, slot, err)
		}
	}
}

func reportErr(report func(slot int, err error), slot int, cause error) {
	err := errors.EffectCallback(slot, cause)
	Logger().Debug("effect failed", zap.Int("slot", slot), zap.Error(err))
	if report != nil {
		report(slot, err)
	}
}

// invoke runs a cleanup with panic recovery.
func invoke(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(r)
		}
	}()
	fn()
	return nil
}

// invokeEffect runs a callback with panic recovery, capturing its cleanup.
func invokeEffect(fn EffectFunc) (cleanup Cleanup, err error) {
	defer func() {
		if r := recover(); r != nil {
			cleanup = nil
			err = asError(r)
		}
	}()
	return fn(), nil
}

func asError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
