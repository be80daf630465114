package ports

import "time"

// Scheduler schedules deferred callbacks. The engine uses it for the
// simulated typing delay so the pause is a timer task, not a blocking
// sleep, and so tests can drive time manually.
type Scheduler interface {
	// AfterFunc runs fn after d on the scheduler's own goroutine and
	// returns a cancel function. Cancel is a no-op once fn has started.
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// SystemScheduler implements Scheduler on the runtime timer.
type SystemScheduler struct{}

// AfterFunc delegates to time.AfterFunc.
func (SystemScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
