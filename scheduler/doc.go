// Package scheduler implements a single-process, lazily-evaluated task
// graph. Callers register computations whose inputs are either literal
// values or typed references to the eventual result of another task, then
// pull results on demand. A task runs at most once: its result is cached
// on first evaluation and every later request, direct or via a dependent
// task, reuses the cached value. Cycles are detected dynamically during
// resolution.
//
// The scheduler is deliberately synchronous and single-threaded. All
// registration and evaluation runs to completion on the caller's
// goroutine, and a Scheduler is not safe for concurrent use without
// external synchronization.
package scheduler
