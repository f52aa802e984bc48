package arena

import (
	"testing"

	"github.com/wippyai/hooks-runtime/errors"
)

func newState() Record  { return &StateRecord{} }
func newRef() Record    { return &RefRecord{} }
func newEffect() Record { return &EffectRecord{} }

// render walks one full session with the given kinds, returning the first
// error encountered.
func render(a *Arena, kinds ...Kind) error {
	cur, err := a.Begin()
	if err != nil {
		return err
	}
	for _, k := range kinds {
		var alloc func() Record
		switch k {
		case KindState:
			alloc = newState
		case KindRef:
			alloc = newRef
		case KindEffect:
			alloc = newEffect
		}
		if _, err := cur.Next(k, alloc); err != nil {
			a.Abort(cur)
			return err
		}
	}
	return a.End(cur)
}

func TestArena_FirstRenderAppends(t *testing.T) {
	a := New()
	if err := render(a, KindState, KindRef, KindEffect); err != nil {
		t.Fatalf("first render failed: %v", err)
	}
	if a.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", a.Len())
	}
	recs := a.Records()
	for i, want := range []Kind{KindState, KindRef, KindEffect} {
		if recs[i].Kind() != want {
			t.Errorf("record %d: kind = %s, want %s", i, recs[i].Kind(), want)
		}
	}
}

func TestArena_RecordsStableAcrossRenders(t *testing.T) {
	a := New()
	if err := render(a, KindState, KindEffect); err != nil {
		t.Fatalf("first render failed: %v", err)
	}
	first := a.Records()[0]

	cur, err := a.Begin()
	if err != nil {
		t.Fatalf("second Begin failed: %v", err)
	}
	rec, err := cur.Next(KindState, newState)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if rec != first {
		t.Error("second render should return the same record at slot 0")
	}
	if _, err := cur.Next(KindEffect, newEffect); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if err := a.End(cur); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if a.Len() != 2 {
		t.Fatalf("second render should not grow the arena: len = %d", a.Len())
	}
}

func TestArena_OrderMismatch(t *testing.T) {
	a := New()
	if err := render(a, KindState, KindEffect); err != nil {
		t.Fatalf("first render failed: %v", err)
	}

	err := render(a, KindEffect, KindState)
	if !errors.IsOrderMismatch(err) {
		t.Fatalf("expected order mismatch, got %v", err)
	}
	e := err.(*errors.Error)
	if !e.HasSlot || e.Slot != 0 {
		t.Errorf("mismatch should point at slot 0, got %+v", e)
	}
	if a.Open() {
		t.Error("arena should be closed after aborted render")
	}
}

func TestArena_CountMismatch(t *testing.T) {
	a := New()
	if err := render(a, KindState, KindState); err != nil {
		t.Fatalf("first render failed: %v", err)
	}

	err := render(a, KindState)
	if !errors.IsCountMismatch(err) {
		t.Fatalf("expected count mismatch, got %v", err)
	}
	// Growing is legal: Next appends.
	if err := render(a, KindState, KindState, KindRef); err != nil {
		t.Fatalf("render with more hooks should succeed: %v", err)
	}
	if a.Len() != 3 {
		t.Fatalf("expected 3 records after growth, got %d", a.Len())
	}
}

func TestArena_ReentrantBegin(t *testing.T) {
	a := New()
	cur, err := a.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if _, err := a.Begin(); !errors.IsReentrantRender(err) {
		t.Fatalf("expected reentrant render error, got %v", err)
	}
	a.Abort(cur)
	if _, err := a.Begin(); err != nil {
		t.Fatalf("Begin after Abort should succeed: %v", err)
	}
}

func TestArena_AbortForeignCursorIgnored(t *testing.T) {
	a := New()
	cur, err := a.Begin()
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	other := New()
	other.Abort(cur)
	other.Abort(nil)
	if !a.Open() {
		t.Fatal("aborting a foreign cursor must not close this arena's session")
	}

	a.Abort(cur)
	if a.Open() {
		t.Fatal("Abort with the owning cursor should close the session")
	}
}

func TestArena_Discard(t *testing.T) {
	a := New()
	if err := render(a, KindState, KindEffect); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	a.Discard()
	if a.Len() != 0 {
		t.Fatalf("expected empty arena after Discard, got %d records", a.Len())
	}
	// A discarded arena starts over like a fresh mount would.
	if err := render(a, KindEffect); err != nil {
		t.Fatalf("render after Discard failed: %v", err)
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindState, "state"},
		{KindRef, "ref"},
		{KindEffect, "effect"},
		{Kind(0), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
