package controller

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback, reporting whether it was still pending.
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, fn func()) Timer

func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) Timer {
	return f(d, fn)
}

// RealScheduler schedules on the runtime timer wheel.
func RealScheduler() Scheduler {
	return SchedulerFunc(func(d time.Duration, fn func()) Timer {
		return time.AfterFunc(d, fn)
	})
}
