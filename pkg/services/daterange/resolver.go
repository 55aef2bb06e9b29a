package daterange

import (
	"fmt"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const (
	DateLayout    = "2006-01-02"
	displayLayout = "Jan 2, 2006"
)

// Resolver turns presets and explicit bounds into concrete inclusive windows.
type Resolver struct {
	clock Clock
	loc   *time.Location
}

func NewResolver(clock Clock, loc *time.Location) *Resolver {
	if clock == nil {
		clock = SystemClock()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Resolver{clock: clock, loc: loc}
}

func (r *Resolver) Location() *time.Location { return r.loc }

// Today returns the start of the current day in the resolver's location.
func (r *Resolver) Today() time.Time {
	return StartOfDay(r.clock.Now().In(r.loc))
}

// Resolve evaluates a preset at the current instant. It returns false for an
// unknown preset.
func (r *Resolver) Resolve(p Preset) (domain.DateRange, bool) {
	today := r.Today()
	y, m, d := today.Date()

	var start, end time.Time
	switch p {
	case Today:
		start, end = today, today
	case Yesterday:
		start = today.AddDate(0, 0, -1)
		end = start
	case ThisWeek:
		start, end = weekStart(today), today
	case LastWeek:
		end = weekStart(today).AddDate(0, 0, -1)
		start = end.AddDate(0, 0, -6)
	case ThisMonth:
		start, end = time.Date(y, m, 1, 0, 0, 0, 0, r.loc), today
	case LastMonth:
		start = time.Date(y, m-1, 1, 0, 0, 0, 0, r.loc)
		end = time.Date(y, m, 1, 0, 0, 0, 0, r.loc).AddDate(0, 0, -1)
	case ThisQuarter:
		start, end = quarterStart(y, Quarter(today), r.loc), today
	case LastQuarter:
		q := Quarter(today) - 1
		qy := y
		if q < 0 {
			q, qy = 3, y-1
		}
		start = quarterStart(qy, q, r.loc)
		end = start.AddDate(0, 3, -1)
	case ThisYear, YearToDate:
		start, end = time.Date(y, time.January, 1, 0, 0, 0, 0, r.loc), today
	case LastYear:
		start = time.Date(y-1, time.January, 1, 0, 0, 0, 0, r.loc)
		end = time.Date(y-1, time.December, 31, 0, 0, 0, 0, r.loc)
	case Last7Days:
		start, end = time.Date(y, m, d-6, 0, 0, 0, 0, r.loc), today
	case Last30Days:
		start, end = time.Date(y, m, d-29, 0, 0, 0, 0, r.loc), today
	case Last90Days:
		start, end = time.Date(y, m, d-89, 0, 0, 0, 0, r.loc), today
	default:
		return domain.DateRange{}, false
	}

	return domain.DateRange{
		Start: StartOfDay(start),
		End:   EndOfDay(end),
		Label: p.Label(),
	}, true
}

// Custom builds an explicit window. Missing bounds stay open. An inverted
// window degrades to the unrestricted range and reports false.
func (r *Resolver) Custom(start, end time.Time, label string) (domain.DateRange, bool) {
	if label == "" {
		label = domain.CustomLabel
	}
	dr := domain.DateRange{Label: label}
	if !start.IsZero() {
		dr.Start = StartOfDay(start.In(r.loc))
	}
	if !end.IsZero() {
		dr.End = EndOfDay(end.In(r.loc))
	}
	if !dr.IsValid() {
		return Clear(), false
	}
	return dr, true
}

// ParseCustom parses YYYY-MM-DD bounds; an empty string leaves that bound open.
// Unparseable or inverted bounds degrade to the unrestricted range.
func (r *Resolver) ParseCustom(from, to, label string) (domain.DateRange, error) {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = r.ParseDate(from); err != nil {
			return Clear(), err
		}
	}
	if to != "" {
		if end, err = r.ParseDate(to); err != nil {
			return Clear(), err
		}
	}
	dr, ok := r.Custom(start, end, label)
	if !ok {
		return dr, fmt.Errorf("invalid date range: %s is after %s", from, to)
	}
	return dr, nil
}

func (r *Resolver) ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, r.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return t, nil
}

// Clear returns the unrestricted range.
func Clear() domain.DateRange {
	return domain.DateRange{}
}

// DisplayText renders a range the way the dashboard header shows it.
func DisplayText(dr domain.DateRange) string {
	switch {
	case dr.IsZero():
		return "All Time"
	case dr.Label != "" && dr.Label != domain.CustomLabel:
		return dr.Label
	case dr.HasStart() && dr.HasEnd():
		return fmt.Sprintf("%s - %s", dr.Start.Format(displayLayout), dr.End.Format(displayLayout))
	}
	return "Custom Range"
}

// Days returns the number of calendar days the window spans, counting both ends.
func Days(dr domain.DateRange) int {
	if !dr.IsBounded() {
		return 0
	}
	return DaysBetween(dr.Start, dr.End) + 1
}

// DaysBetween counts calendar days from a to b, ignoring clock time and DST.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Quarter returns the zero-based quarter index of t.
func Quarter(t time.Time) int {
	return (int(t.Month()) - 1) / 3
}

func quarterStart(year, quarter int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(quarter*3+1), 1, 0, 0, 0, 0, loc)
}

// weekStart returns the Monday on or before t.
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
