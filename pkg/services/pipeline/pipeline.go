package pipeline

import (
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/daterange"
)

// Predicate reports whether a record passes one filter criterion.
type Predicate func(domain.Record) bool

// searchFields are matched by the free-text predicate.
var searchFields = []domain.Dimension{
	domain.DimensionCustomer,
	domain.DimensionProduct,
	domain.DimensionSalesRep,
	domain.DimensionCategory,
	domain.DimensionRegion,
}

// Apply returns the records matching every active criterion, in input order.
// The result never aliases records.
func Apply(records []domain.Record, criteria domain.FilterCriteria) []domain.Record {
	predicates := Predicates(criteria)

	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if matchesAll(r, predicates) {
			out = append(out, r)
		}
	}
	return out
}

// Predicates builds the list of active predicates. Criteria that are empty
// contribute nothing.
func Predicates(criteria domain.FilterCriteria) []Predicate {
	var predicates []Predicate
	if p := DateRange(criteria.DateRange); p != nil {
		predicates = append(predicates, p)
	}
	for _, m := range []struct {
		dim domain.Dimension
		sel domain.Selection
	}{
		{domain.DimensionCategory, criteria.Categories},
		{domain.DimensionRegion, criteria.Regions},
		{domain.DimensionSalesRep, criteria.SalesReps},
		{domain.DimensionPaymentMethod, criteria.PaymentMethods},
	} {
		if p := Membership(m.dim, m.sel); p != nil {
			predicates = append(predicates, p)
		}
	}
	if p := Search(criteria.SearchTerm); p != nil {
		predicates = append(predicates, p)
	}
	return predicates
}

// DateRange matches records dated inside the inclusive window. The end bound
// is widened to end-of-day. Empty or inverted windows return nil.
func DateRange(dr domain.DateRange) Predicate {
	if dr.IsZero() || !dr.IsValid() {
		return nil
	}
	start, end := dr.Start, dr.End
	if dr.HasStart() {
		start = daterange.StartOfDay(start)
	}
	if dr.HasEnd() {
		end = daterange.EndOfDay(end)
	}
	return func(r domain.Record) bool {
		if r.Date.IsZero() {
			return false
		}
		if dr.HasStart() && r.Date.Before(start) {
			return false
		}
		if dr.HasEnd() && r.Date.After(end) {
			return false
		}
		return true
	}
}

// Membership matches records whose dimension value is in sel.
func Membership(dim domain.Dimension, sel domain.Selection) Predicate {
	if len(sel) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(sel))
	for _, v := range sel {
		set[v] = struct{}{}
	}
	return func(r domain.Record) bool {
		v := r.Value(dim)
		if v == "" {
			return false
		}
		_, ok := set[v]
		return ok
	}
}

// Search matches records where any search field contains term, ignoring case.
func Search(term string) Predicate {
	if term == "" {
		return nil
	}
	needle := strings.ToLower(term)
	return func(r domain.Record) bool {
		for _, dim := range searchFields {
			v := r.Value(dim)
			if v != "" && strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
		return false
	}
}

// WithoutDate returns criteria with the date axis cleared, keeping every other filter.
func WithoutDate(criteria domain.FilterCriteria) domain.FilterCriteria {
	c := criteria.Clone()
	c.DateRange = domain.DateRange{}
	return c
}

func matchesAll(r domain.Record, predicates []Predicate) bool {
	for _, p := range predicates {
		if !p(r) {
			return false
		}
	}
	return true
}
