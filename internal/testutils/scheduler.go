// Package testutils provides shared helpers for engine tests.
package testutils

import (
	"sync"
	"time"
)

// ManualScheduler implements ports.Scheduler with explicitly driven time.
// Callbacks queue up until Fire is called, letting tests step through the
// typing delay deterministically.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	fn       func()
	canceled bool
}

// AfterFunc queues fn and returns its cancel function.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := &manualTimer{fn: fn}
	s.mu.Lock()
	s.pending = append(s.pending, t)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		t.canceled = true
		s.mu.Unlock()
	}
}

// Fire runs every queued callback that has not been canceled and returns
// how many ran. Callbacks queued during Fire wait for the next call.
func (s *ManualScheduler) Fire() int {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	ran := 0
	for _, t := range batch {
		if t.canceled {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

// Pending reports how many callbacks are queued.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if !t.canceled {
			n++
		}
	}
	return n
}
