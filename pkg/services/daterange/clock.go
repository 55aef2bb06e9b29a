package daterange

import "time"

// Clock supplies the instant presets are resolved against.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func SystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Used to pin "now" in tests and
// in reports generated for a given day.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
