// Package clock supplies the current instant to the save pipeline so
// occupancy and issuance can be pinned in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// System reads the wall clock in UTC.
func System() Clock {
	return Func(func() time.Time { return time.Now().UTC() })
}

// At always reports t.
func At(t time.Time) Clock {
	t = t.UTC()
	return Func(func() time.Time { return t })
}
