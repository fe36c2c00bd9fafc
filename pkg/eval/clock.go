package eval

import "time"

// Clock abstracts the host scheduler WAIT suspends on; its exact timing
// is a host concern, not part of the language's observable behavior.
// Hosts and tests inject a fake implementation to avoid real sleeps.
type Clock interface {
	// AfterFunc schedules fn to run after d elapses and returns a handle
	// whose Stop cancels the pending call, mirroring time.AfterFunc.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is the handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// RealClock schedules via the real wall clock.
type RealClock struct{}

func (RealClock) AfterFunc(d time.Duration, fn func()) Timer {
	return realTimer{time.AfterFunc(d, fn)}
}

type realTimer struct{ t *time.Timer }

func (r realTimer) Stop() bool { return r.t.Stop() }
