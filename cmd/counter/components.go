package main

import (
	"fmt"
	"time"

	"github.com/wippyai/hooks-runtime/runtime"
	"github.com/wippyai/hooks-runtime/scheduler"
)

// counterComponent ticks forever: an empty-deps effect starts the ticker on
// first commit and its cleanup stops it at destroy.
func counterComponent(interval time.Duration) runtime.ComponentFunc {
	return func(ctx *runtime.Ctx) any {
		count, setCount := runtime.UseState(ctx, 0)
		started := runtime.UseRef(ctx, time.Time{})

		runtime.UseEffect(ctx, func() scheduler.Cleanup {
			started.Current = time.Now()
			t := time.NewTicker(interval)
			done := make(chan struct{})
			go func() {
				for {
					select {
					case <-t.C:
						setCount.Update(func(n int) int { return n + 1 })
					case <-done:
						return
					}
				}
			}()
			return func() {
				t.Stop()
				close(done)
			}
		}, runtime.Deps())

		elapsed := "just started"
		if !started.Current.IsZero() {
			elapsed = time.Since(started.Current).Truncate(time.Second).String()
		}
		return fmt.Sprintf("count: %d (running %s)", count, elapsed)
	}
}

// greetingComponent renders a greeting for a host-owned label prop. The
// [label] effect logs each transition, demonstrating cleanup(old) before
// callback(new).
func greetingComponent(label *string, logf func(format string, args ...any)) runtime.ComponentFunc {
	return func(ctx *runtime.Ctx) any {
		renders := runtime.UseRef(ctx, 0)
		renders.Current++

		l := *label
		runtime.UseEffect(ctx, func() scheduler.Cleanup {
			logf("greeting %q mounted", l)
			return func() {
				logf("greeting %q cleaned up", l)
			}
		}, runtime.Deps(l))

		return fmt.Sprintf("hello, %s! (render #%d)", l, renders.Current)
	}
}
