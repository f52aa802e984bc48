// Package errors provides structured error types for the hooks runtime.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the offending slot position and a cause
// chain, so a hook misuse report points at the exact call position that
// diverged.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRender, errors.KindOrderMismatch).
//		Slot(2).
//		Detail("state hook where previous render had an effect").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OrderMismatch(2, "effect", "state")
//	err := errors.EffectCallback(0, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two errors match under errors.Is when their Phase and Kind agree, so
// callers can match against a kind predicate:
//
//	if errors.IsOrderMismatch(err) { ... }
//
// The misuse kinds (reentrant_render, order_mismatch, count_mismatch) are
// fatal to the render that raised them: the runtime aborts the render rather
// than continue with corrupted slot alignment. The effect_callback kind is
// recoverable at the flush boundary.
package errors
