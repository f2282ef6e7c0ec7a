package testutil

import (
	"sync"
	"time"
)

// StepClock returns a clock that starts at start and advances by step on
// every call, so measured durations are exact multiples of step.
func StepClock(start time.Time, step time.Duration) func() time.Time {
	var (
		mu  sync.Mutex
		now = start
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := now
		now = now.Add(step)
		return t
	}
}
