package usecase

import "time"

// Clock is the only source of "now" for the sequencing and intake paths.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time {
	return c.at
}

// FixedClock always reports the same instant.
func FixedClock(t time.Time) Clock {
	return fixedClock{at: t}
}

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return SystemClock{}
	}
	return c
}
