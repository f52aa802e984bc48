// Package runtime provides the high-level API for mounting and rendering
// hook-based components.
//
// # Quick Start
//
//	rt := runtime.New(host)
//
//	inst := rt.Mount(func(ctx *runtime.Ctx) any {
//	    count, setCount := runtime.UseState(ctx, 0)
//	    label := runtime.UseRef(ctx, "counter")
//
//	    runtime.UseEffect(ctx, func() scheduler.Cleanup {
//	        t := time.NewTicker(time.Second)
//	        go func() {
//	            for range t.C {
//	                setCount.Update(func(n int) int { return n + 1 })
//	            }
//	        }()
//	        return func() { t.Stop() }
//	    }, runtime.Deps())
//
//	    return fmt.Sprintf("%s: %d", label.Current, count)
//	})
//
//	out, err := inst.Render()
//	// ... host applies out ...
//	inst.CommitApplied()
//
// # Render Protocol
//
// The host renderer drives each instance through a fixed cycle:
//
//	Render()         runs the component function; hook calls are serviced
//	                 in call order against the instance's record arena
//	CommitApplied()  the output is visible; queued effects flush
//	Destroy()        unmount; every live effect cleanup runs once
//
// Between CommitApplied and the next Render the instance is idle. When a
// state setter changes a value during that window, the instance calls
// Host.RequestRerender exactly once, however many setters fire before the
// host gets around to rendering again.
//
// # Hook Rules
//
// Hooks take an explicit *Ctx instead of reading ambient global state; the
// Ctx is only valid during the render that created it. A component must
// call the same hooks in the same order on every render. Violations are
// detected at the exact call position and abort the render with a
// structured error rather than continuing with misaligned slots.
//
// # Setters and Staleness
//
// Setter.Set replaces the whole value; there is no merge. Setter.Update
// applies a function to the value as currently stored, so chained updates
// in one batch compose:
//
//	setCount.Update(inc)
//	setCount.Update(inc)
//	setCount.Update(inc)
//	// next render observes +3, not +1
//
// A closure that captured the value from an earlier render and calls Set
// with a derived value is the classic stale-value hazard. The runtime does
// not detect it; use Update when the new value depends on the old one.
//
// Setters are safe to call from any goroutine and at any time, including
// after the instance was destroyed, in which case they do nothing.
package runtime
