package renewal

import "time"

// Clock supplies the current instant
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface
type ClockFunc func() time.Time

// Now returns f()
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock returns the wall clock expressed in loc
func SystemClock(loc *time.Location) Clock {
	return ClockFunc(func() time.Time {
		return time.Now().In(loc)
	})
}

// FixedClock always returns t. Used by tests and replay tooling.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time {
		return t
	})
}
