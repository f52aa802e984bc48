// Package hooks provides a reactive state and effect runtime for component
// functions: plain Go functions that are re-invoked on every render yet keep
// per-call-position state between invocations.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	hooks/               Root package with the host renderer boundary types
//	├── runtime/         Instances, render sessions, and the hook API
//	├── arena/           Position-addressed hook record storage
//	├── scheduler/       Post-commit effect scheduling and dependency comparison
//	└── errors/          Structured error types for hook misuse and effect failures
//
// # Quick Start
//
// Mount a component function and drive it from a host render loop:
//
//	rt := runtime.New(host)
//
//	inst := rt.Mount(func(ctx *runtime.Ctx) any {
//	    count, setCount := runtime.UseState(ctx, 0)
//	    runtime.UseEffect(ctx, func() scheduler.Cleanup {
//	        t := time.AfterFunc(time.Second, func() {
//	            setCount.Update(func(n int) int { return n + 1 })
//	        })
//	        return t.Stop
//	    }, runtime.Deps(count))
//	    return fmt.Sprintf("count: %d", count)
//	})
//
//	out, err := inst.Render()
//	// ... host applies out, then:
//	inst.CommitApplied()
//
// # Host Boundary
//
// The runtime never decides when to render. The host renderer owns the loop
// and sends three signals in: Render (the component function runs and its
// hook calls are serviced), CommitApplied (the output is visible, queued
// effects may flush), and Destroy (the instance is unmounted and every live
// effect cleanup runs). Two signals come back out through the Host
// interface: RequestRerender when a state setter changed a value, and
// ReportEffectError when an effect callback failed during flush.
//
// Everything past that boundary is out of scope here: view diffing, output
// application, and the event loop that schedules renders belong to the host.
package hooks
