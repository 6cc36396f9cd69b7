package scoring

import "time"

// Clock supplies "now" to the time-relative alert rules.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always returns the same instant. Useful for tests.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
