// Package arena provides position-addressed hook record storage.
//
// Each component instance owns one Arena: an append-only, ordered sequence
// of hook records keyed by call position, not by name. The N-th hook call of
// a render always lands on the N-th record, which is why a component must
// make the same hook calls in the same order on every render.
//
// # Render Sessions
//
// A render opens a cursor, services each hook call through it, and closes it:
//
//	cur, err := a.Begin()
//	if err != nil { ... } // a render is already open on this arena
//
//	// one call per hook, in component order
//	rec, err := cur.Next(arena.KindState, func() arena.Record {
//	    return &arena.StateRecord{Value: 0}
//	})
//
//	err = a.End(cur) // fails if fewer hooks ran than records exist
//
// Begin enforces the no-reentrancy rule, Next enforces the variant-order
// invariant, and End enforces the count invariant. All three violations are
// programmer errors: the caller aborts the render instead of continuing
// with misaligned slots (use Abort to close the cursor without the count
// check).
//
// # Record Variants
//
// Records are a tagged variant: StateRecord holds a settable value,
// RefRecord holds a stable mutable box, EffectRecord holds the dependency
// and cleanup bookkeeping for one effect slot. The arena stores them; the
// runtime and scheduler packages give them behavior.
package arena
