package domain

import "time"

const CustomLabel = "Custom"

// DateRange is an inclusive calendar window. A zero Start or End means the
// bound is absent; both absent means "all time".
type DateRange struct {
	Start time.Time
	End   time.Time
	Label string
}

func (d DateRange) HasStart() bool { return !d.Start.IsZero() }
func (d DateRange) HasEnd() bool   { return !d.End.IsZero() }

// IsZero reports whether the range places no restriction on dates.
func (d DateRange) IsZero() bool {
	return !d.HasStart() && !d.HasEnd()
}

// IsBounded reports whether both bounds are present and ordered.
func (d DateRange) IsBounded() bool {
	return d.HasStart() && d.HasEnd() && !d.Start.After(d.End)
}

// IsValid reports whether the range can be applied as given. An inverted
// range is invalid; every other shape (including open-ended) is valid.
func (d DateRange) IsValid() bool {
	if d.HasStart() && d.HasEnd() {
		return !d.Start.After(d.End)
	}
	return true
}

func (d DateRange) Equal(other DateRange) bool {
	return d.Start.Equal(other.Start) && d.End.Equal(other.End) && d.Label == other.Label
}
