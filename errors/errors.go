package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRender  Phase = "render"  // render session open through close
	PhaseFlush   Phase = "flush"   // post-commit effect flush
	PhaseUpdate  Phase = "update"  // state setter invocation
	PhaseDestroy Phase = "destroy" // instance teardown
)

// Kind categorizes the error
type Kind string

const (
	KindReentrantRender Kind = "reentrant_render"
	KindOrderMismatch   Kind = "order_mismatch"
	KindCountMismatch   Kind = "count_mismatch"
	KindEffectCallback  Kind = "effect_callback"
	KindDestroyed       Kind = "destroyed"
	KindNotMounted      Kind = "not_mounted"
	KindInvalidState    Kind = "invalid_state"
	KindRenderPanic     Kind = "render_panic"
)

// Error is the structured error type used throughout the runtime
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Slot   int
	// HasSlot distinguishes slot 0 from "no slot involved".
	HasSlot bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.HasSlot {
		fmt.Fprintf(&b, " at slot %d", e.Slot)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Fatal reports whether the error belongs to the programmer-misuse class
// that must abort the render rather than continue with misaligned slots.
func (e *Error) Fatal() bool {
	switch e.Kind {
	case KindReentrantRender, KindOrderMismatch, KindCountMismatch:
		return true
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Slot sets the hook call position the error occurred at
func (b *Builder) Slot(slot int) *Builder {
	b.err.Slot = slot
	b.err.HasSlot = true
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ReentrantRender reports a render opened on an instance that already has an
// open render session.
func ReentrantRender(detail string) *Error {
	return &Error{
		Phase:  PhaseRender,
		Kind:   KindReentrantRender,
		Detail: detail,
	}
}

// OrderMismatch reports a hook call whose variant differs from the record
// stored at the same position by an earlier render.
func OrderMismatch(slot int, want, got string) *Error {
	return &Error{
		Phase:   PhaseRender,
		Kind:    KindOrderMismatch,
		Slot:    slot,
		HasSlot: true,
		Detail:  fmt.Sprintf("previous render stored %s, this render called %s", want, got),
	}
}

// CountMismatch reports a render that called fewer hooks than the previous
// render of the same instance.
func CountMismatch(called, have int) *Error {
	return &Error{
		Phase:  PhaseRender,
		Kind:   KindCountMismatch,
		Detail: fmt.Sprintf("render made %d hook calls, instance has %d records", called, have),
	}
}

// EffectCallback wraps a failure raised by an effect callback or its cleanup
// during flush.
func EffectCallback(slot int, cause error) *Error {
	return &Error{
		Phase:   PhaseFlush,
		Kind:    KindEffectCallback,
		Slot:    slot,
		HasSlot: true,
		Cause:   cause,
	}
}

// Destroyed reports an operation on an unmounted instance.
func Destroyed(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDestroyed,
		Detail: detail,
	}
}

// NotMounted reports a lookup of an instance id the runtime does not know.
func NotMounted(detail string) *Error {
	return &Error{
		Phase:  PhaseRender,
		Kind:   KindNotMounted,
		Detail: detail,
	}
}

// InvalidState reports an operation outside its legal lifecycle state.
func InvalidState(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidState,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// RenderPanic wraps a panic that escaped the component function itself.
func RenderPanic(cause error) *Error {
	return &Error{
		Phase: PhaseRender,
		Kind:  KindRenderPanic,
		Cause: cause,
	}
}

// Wrap creates an error wrapping a cause with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Cause:  cause,
		Detail: detail,
	}
}

// Kind predicates, for callers that only care about the class.

// is matches through wrapping, so hosts that annotate a reported error
// with fmt.Errorf("%w", ...) still hit the predicates.
func is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// IsReentrantRender reports whether err is a reentrant render error.
func IsReentrantRender(err error) bool { return is(err, KindReentrantRender) }

// IsOrderMismatch reports whether err is a hook order mismatch.
func IsOrderMismatch(err error) bool { return is(err, KindOrderMismatch) }

// IsCountMismatch reports whether err is a hook count mismatch.
func IsCountMismatch(err error) bool { return is(err, KindCountMismatch) }

// IsEffectCallback reports whether err is a failed effect callback.
func IsEffectCallback(err error) bool { return is(err, KindEffectCallback) }

// IsDestroyed reports whether err is an operation on an unmounted instance.
func IsDestroyed(err error) bool { return is(err, KindDestroyed) }
