package domain

import "slices"

// Selection is a set of string values that keeps insertion order for display.
type Selection []string

// NewSelection builds a selection from values, dropping blanks and duplicates.
func NewSelection(values ...string) Selection {
	out := make(Selection, 0, len(values))
	for _, v := range values {
		if v == "" || out.Contains(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (s Selection) Contains(value string) bool {
	return slices.Contains(s, value)
}

// Toggle returns a new selection with value added when absent or removed when present.
func (s Selection) Toggle(value string) Selection {
	out := make(Selection, 0, len(s)+1)
	found := false
	for _, v := range s {
		if v == value {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, value)
	}
	return out
}

// Equal compares selections as sets.
func (s Selection) Equal(other Selection) bool {
	a, b := NewSelection(s...), NewSelection(other...)
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !b.Contains(v) {
			return false
		}
	}
	return true
}

func (s Selection) Clone() Selection {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}
