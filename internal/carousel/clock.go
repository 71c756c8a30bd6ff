package carousel

import "time"

// Timer is a pending callback that can be cancelled
type Timer interface {
	Stop() bool
}

// Clock schedules deferred callbacks
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock schedules on the Go runtime timer
type RealClock struct{}

// AfterFunc implements Clock
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
