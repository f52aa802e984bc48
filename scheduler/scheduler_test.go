package scheduler

import (
	"testing"

	"github.com/wippyai/hooks-runtime/arena"
	"github.com/wippyai/hooks-runtime/errors"
)

// trace records the order of callback and cleanup invocations.
type trace struct {
	events []string
}

func (tr *trace) effect(name string, withCleanup bool) EffectFunc {
	return func() Cleanup {
		tr.events = append(tr.events, "run:"+name)
		if !withCleanup {
			return nil
		}
		return func() {
			tr.events = append(tr.events, "cleanup:"+name)
		}
	}
}

func (tr *trace) check(t *testing.T, want ...string) {
	t.Helper()
	if len(tr.events) != len(want) {
		t.Fatalf("events = %v, want %v", tr.events, want)
	}
	for i := range want {
		if tr.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", tr.events, want)
		}
	}
}

func TestFlush_FirstRenderAlwaysRuns(t *testing.T) {
	s := New(nil)
	tr := &trace{}
	rec := &arena.EffectRecord{}

	s.Enqueue(0, rec, tr.effect("a", true), []any{1})
	s.Flush(nil)

	tr.check(t, "run:a")
	if !rec.HasRun || !rec.DepsKnown {
		t.Error("first flush should mark the record as run")
	}
	if rec.Cleanup == nil {
		t.Error("cleanup should be stored")
	}
}

func TestFlush_NilDepsRunsEveryTime(t *testing.T) {
	s := New(nil)
	tr := &trace{}
	rec := &arena.EffectRecord{}

	s.Enqueue(0, rec, tr.effect("a", true), nil)
	s.Flush(nil)
	s.Enqueue(0, rec, tr.effect("b", true), nil)
	s.Flush(nil)

	tr.check(t, "run:a", "cleanup:a", "run:b")
}

func TestFlush_EqualDepsSkips(t *testing.T) {
	s := New(nil)
	tr := &trace{}
	rec := &arena.EffectRecord{}

	s.Enqueue(0, rec, tr.effect("a", true), []any{1, "x"})
	s.Flush(nil)
	s.Enqueue(0, rec, tr.effect("b", true), []any{1, "x"})
	s.Flush(nil)

	// Neither the cleanup nor the second callback ran.
	tr.check(t, "run:a")
	if rec.Cleanup == nil {
		t.Error("skip must leave the live cleanup in place")
	}
}

func TestFlush_ChangedDepsCleansUpThenRuns(t *testing.T) {
	s := New(nil)
	tr := &trace{}
	rec := &arena.EffectRecord{}

	s.Enqueue(0, rec, tr.effect("a", true), []any{1})
	s.Flush(nil)
	s.Enqueue(0, rec, tr.effect("b", true), []any{2})
	s.Flush(nil)

	tr.check(t, "run:a", "cleanup:a", "run:b")
}

func TestFlush_EmptyDepsRunsOnce(t *testing.T) {
	s := New(nil)
	tr := &trace{}
	rec := &arena.EffectRecord{}

	for i := 0; i < 5; i++ {
		s.Enqueue(0, rec, tr.effect("a", true), []any{})
		s.Flush(nil)
	}

	tr.check(t, "run:a")
}

func TestFlush_DepsShapeTransition(t *testing.T) {
	s := New(nil)
	tr := &trace{}
	rec := &arena.EffectRecord{}

	// No array declared, then an array: counts as changed.
	s.Enqueue(0, rec, tr.effect("a", true), nil)
	s.Flush(nil)
	s.Enqueue(0, rec, tr.effect("b", true), []any{1})
	s.Flush(nil)

	tr.check(t, "run:a", "cleanup:a", "run:b")
}

func TestFlush_SlotOrder(t *testing.T) {
	s := New(nil)
	tr := &trace{}
	rec0 := &arena.EffectRecord{}
	rec1 := &arena.EffectRecord{}

	s.Enqueue(0, rec0, tr.effect("first", false), nil)
	s.Enqueue(1, rec1, tr.effect("second", false), nil)
	s.Flush(nil)

	tr.check(t, "run:first", "run:second")
}

func TestFlush_CallbackPanicReportedAndDepsAdvance(t *testing.T) {
	s := New(nil)
	rec := &arena.EffectRecord{}

	var reported []int
	report := func(slot int, err error) {
		if !errors.IsEffectCallback(err) {
			t.Errorf("expected effect callback error, got %v", err)
		}
		reported = append(reported, slot)
	}

	boom := func() Cleanup { panic("effect exploded") }
	s.Enqueue(2, rec, boom, []any{1})
	s.Flush(report)

	if len(reported) != 1 || reported[0] != 2 {
		t.Fatalf("expected one report for slot 2, got %v", reported)
	}
	if !rec.HasRun || !rec.DepsKnown {
		t.Error("deps bookkeeping must advance even when the callback fails")
	}

	// Same deps again: the failed attempt counts, no retry storm.
	ran := false
	s.Enqueue(2, rec, func() Cleanup { ran = true; return nil }, []any{1})
	s.Flush(report)
	if ran {
		t.Error("effect should not re-run on unchanged deps after a failure")
	}
}

func TestFlush_FailedSlotDoesNotStopLaterSlots(t *testing.T) {
	s := New(nil)
	tr := &trace{}
	rec0 := &arena.EffectRecord{}
	rec1 := &arena.EffectRecord{}

	s.Enqueue(0, rec0, func() Cleanup { panic("boom") }, nil)
	s.Enqueue(1, rec1, tr.effect("after", false), nil)

	var reports int
	s.Flush(func(int, error) { reports++ })

	tr.check(t, "run:after")
	if reports != 1 {
		t.Fatalf("expected 1 report, got %d", reports)
	}
}

func TestRunCleanups_DeclarationOrderExactlyOnce(t *testing.T) {
	s := New(nil)
	tr := &trace{}

	recs := []arena.Record{
		&arena.EffectRecord{Cleanup: func() { tr.events = append(tr.events, "cleanup:0") }},
		&arena.StateRecord{},
		&arena.EffectRecord{},
		&arena.EffectRecord{Cleanup: func() { tr.events = append(tr.events, "cleanup:3") }},
	}

	s.RunCleanups(recs, nil)
	tr.check(t, "cleanup:0", "cleanup:3")

	// Second walk finds nothing live.
	s.RunCleanups(recs, nil)
	tr.check(t, "cleanup:0", "cleanup:3")
}

func TestRunCleanups_PanicReported(t *testing.T) {
	s := New(nil)
	recs := []arena.Record{
		&arena.EffectRecord{Cleanup: func() { panic("cleanup exploded") }},
		&arena.EffectRecord{Cleanup: func() {}},
	}

	var reported []int
	s.RunCleanups(recs, func(slot int, err error) {
		reported = append(reported, slot)
	})
	if len(reported) != 1 || reported[0] != 0 {
		t.Fatalf("expected report for slot 0, got %v", reported)
	}
}

func TestFlush_DropMidFlushStopsLaterSlots(t *testing.T) {
	s := New(nil)
	tr := &trace{}
	rec0 := &arena.EffectRecord{}
	rec1 := &arena.EffectRecord{}

	// Slot 0 tears the instance down mid-flush: slot 1 must never run, and
	// the cleanup slot 0 returns must still execute rather than being
	// stored on a record nothing will walk again.
	s.Enqueue(0, rec0, func() Cleanup {
		tr.events = append(tr.events, "run:first")
		s.Drop()
		return func() { tr.events = append(tr.events, "cleanup:first") }
	}, nil)
	s.Enqueue(1, rec1, tr.effect("second", true), nil)
	s.Flush(nil)

	tr.check(t, "run:first", "cleanup:first")
	if rec0.Cleanup != nil {
		t.Error("a stopped flush must not store a cleanup it already ran")
	}
	if rec1.HasRun {
		t.Error("slots after the stop must not advance")
	}

	// The stop does not outlive the walk: a later flush runs normally.
	s.Enqueue(1, rec1, tr.effect("third", false), nil)
	s.Flush(nil)
	tr.check(t, "run:first", "cleanup:first", "run:third")
}

func TestDrop(t *testing.T) {
	s := New(nil)
	rec := &arena.EffectRecord{}
	ran := false

	s.Enqueue(0, rec, func() Cleanup { ran = true; return nil }, nil)
	s.Drop()
	s.Flush(nil)

	if ran {
		t.Error("dropped effects must not run")
	}
	if s.Pending() != 0 {
		t.Error("Drop should empty the queue")
	}
}

func TestDefaultDepsEqual(t *testing.T) {
	p1 := &struct{ n int }{1}
	p2 := &struct{ n int }{1}
	slice := []int{1}

	tests := []struct {
		name  string
		prev  []any
		next  []any
		equal bool
	}{
		{"both empty", []any{}, []any{}, true},
		{"equal primitives", []any{1, "a", true}, []any{1, "a", true}, true},
		{"unequal primitive", []any{1}, []any{2}, false},
		{"length mismatch", []any{1}, []any{1, 2}, false},
		{"same pointer", []any{p1}, []any{p1}, true},
		{"different pointers equal contents", []any{p1}, []any{p2}, false},
		{"uncomparable operands", []any{slice}, []any{slice}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultDepsEqual(tt.prev, tt.next); got != tt.equal {
				t.Errorf("DefaultDepsEqual = %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestCustomDepsEqual(t *testing.T) {
	// A strategy that treats everything as equal: the effect never re-runs.
	s := New(func(prev, next []any) bool { return true })
	tr := &trace{}
	rec := &arena.EffectRecord{}

	s.Enqueue(0, rec, tr.effect("a", false), []any{1})
	s.Flush(nil)
	s.Enqueue(0, rec, tr.effect("b", false), []any{2})
	s.Flush(nil)

	tr.check(t, "run:a")
}
