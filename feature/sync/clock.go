package sync

import "time"

// Clock abstracts wall time and timer creation so the coordinator's
// debounce, min-interval and cooldown behavior can be tested without real
// delays.
type Clock interface {
	Now() time.Time
	// AfterFunc arms a timer that runs fn after d. Re-arming is done by
	// stopping the old timer and arming a new one.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop cancels the timer; it reports whether the callback was prevented
	// from running.
	Stop() bool
}

// SystemClock returns the real wall-clock implementation.
func SystemClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (t systemTimer) Stop() bool {
	return t.t.Stop()
}
