// Package scheduler decides which effect callbacks run after a commit and
// owns their cleanup lifecycle.
//
// During a render, each effect hook enqueues its callback together with the
// dependency values it captured. Nothing runs yet. Once the host renderer
// signals that the render's output has been applied, Flush walks the queue
// in slot order and applies the decision rule per slot:
//
//   - first flush of the slot: run the callback
//   - no dependency array declared: run every time, cleanup first
//   - dependencies equal to the previous flush: skip entirely
//   - dependencies changed: run the old cleanup, then the callback
//
// A callback may return a Cleanup. The scheduler guarantees at most one
// live cleanup per slot: the previous cleanup always runs before the slot's
// callback runs again, and every live cleanup runs exactly once when the
// instance is destroyed. Destroying the instance from inside a callback
// stops the flush before the next slot; the cleanup returned by the
// destroying callback runs immediately rather than being stored where the
// destroy walk can no longer reach it.
//
// A panicking callback is recovered and reported, and the slot's dependency
// bookkeeping still advances. The attempt counts even when it failed;
// otherwise an effect that always panics would re-run on every render
// forever.
//
// Dependency comparison is a pluggable strategy. DefaultDepsEqual compares
// element-wise with ==, which is value identity for primitives and
// reference identity for pointers, maps, slices-in-interfaces and other
// composites; uncomparable operands count as unequal.
package scheduler
