package filters

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// Store holds the active filter criteria. Mutations that leave every field
// unchanged are no-ops: they bump no version and report false.
type Store struct {
	current  domain.FilterCriteria
	defaults domain.FilterCriteria

	generation uint64
	versions   map[domain.FilterKey]uint64
}

// NewStore captures defaults as the snapshot ResetFilters returns to.
func NewStore(defaults domain.FilterCriteria) *Store {
	defaults = normalize(defaults)
	return &Store{
		current:  defaults.Clone(),
		defaults: defaults.Clone(),
		versions: make(map[domain.FilterKey]uint64, len(domain.FilterKeys)),
	}
}

// Criteria returns a copy of the active criteria.
func (s *Store) Criteria() domain.FilterCriteria {
	return s.current.Clone()
}

// Version increases by one for every effective mutation.
func (s *Store) Version() uint64 {
	return s.generation
}

// KeyVersion reports how many effective mutations touched key.
func (s *Store) KeyVersion(key domain.FilterKey) uint64 {
	return s.versions[key]
}

// SetFilter assigns a single field. value must be a domain.DateRange for the
// date range, a string for the search term and a domain.Selection or []string
// for set-valued fields.
func (s *Store) SetFilter(key domain.FilterKey, value any) (bool, error) {
	return s.UpdateFilters(map[domain.FilterKey]any{key: value})
}

// UpdateFilters applies a partial update atomically. Every value is validated
// before anything changes.
func (s *Store) UpdateFilters(partial map[domain.FilterKey]any) (bool, error) {
	if len(partial) == 0 {
		return false, nil
	}

	next := s.current.Clone()
	for key, value := range partial {
		if err := assign(&next, key, value); err != nil {
			return false, err
		}
	}
	return s.commit(next), nil
}

// ResetFilters restores the defaults captured at construction.
func (s *Store) ResetFilters() bool {
	return s.commit(s.defaults.Clone())
}

// ToggleFilterValue adds value to a set-valued field if absent, removes it otherwise.
func (s *Store) ToggleFilterValue(key domain.FilterKey, value string) (bool, error) {
	sel, ok := s.current.Selection(key)
	if !ok {
		return false, fmt.Errorf("filter %q does not hold a set of values", key)
	}
	if value == "" {
		return false, nil
	}
	return s.SetFilter(key, sel.Toggle(value))
}

func (s *Store) HasActiveFilters() bool {
	c := s.current
	return c.SearchTerm != "" ||
		!c.DateRange.IsZero() ||
		len(c.Categories) > 0 ||
		len(c.Regions) > 0 ||
		len(c.SalesReps) > 0 ||
		len(c.PaymentMethods) > 0
}

func (s *Store) commit(next domain.FilterCriteria) bool {
	changed := diff(s.current, next)
	if len(changed) == 0 {
		return false
	}
	s.current = next
	s.generation++
	for _, key := range changed {
		s.versions[key]++
	}
	return true
}

func assign(c *domain.FilterCriteria, key domain.FilterKey, value any) error {
	switch key {
	case domain.FilterDateRange:
		dr, ok := value.(domain.DateRange)
		if !ok {
			return fmt.Errorf("filter %q expects a date range, got %T", key, value)
		}
		// An inverted range restricts nothing.
		if !dr.IsValid() {
			dr = domain.DateRange{}
		}
		c.DateRange = dr
		return nil
	case domain.FilterSearchTerm:
		term, ok := value.(string)
		if !ok {
			return fmt.Errorf("filter %q expects a string, got %T", key, value)
		}
		c.SearchTerm = term
		return nil
	}

	var sel domain.Selection
	switch v := value.(type) {
	case domain.Selection:
		sel = domain.NewSelection(v...)
	case []string:
		sel = domain.NewSelection(v...)
	case nil:
		sel = domain.Selection{}
	default:
		return fmt.Errorf("filter %q expects a list of values, got %T", key, value)
	}

	switch key {
	case domain.FilterCategories:
		c.Categories = sel
	case domain.FilterRegions:
		c.Regions = sel
	case domain.FilterSalesReps:
		c.SalesReps = sel
	case domain.FilterPaymentMethods:
		c.PaymentMethods = sel
	default:
		return fmt.Errorf("unknown filter %q", key)
	}
	return nil
}

// diff lists the keys whose values differ between a and b.
func diff(a, b domain.FilterCriteria) []domain.FilterKey {
	var changed []domain.FilterKey
	if !a.DateRange.Equal(b.DateRange) {
		changed = append(changed, domain.FilterDateRange)
	}
	for _, key := range []domain.FilterKey{
		domain.FilterCategories,
		domain.FilterRegions,
		domain.FilterSalesReps,
		domain.FilterPaymentMethods,
	} {
		sa, _ := a.Selection(key)
		sb, _ := b.Selection(key)
		if !sa.Equal(sb) {
			changed = append(changed, key)
		}
	}
	if a.SearchTerm != b.SearchTerm {
		changed = append(changed, domain.FilterSearchTerm)
	}
	return changed
}

func normalize(c domain.FilterCriteria) domain.FilterCriteria {
	c.Categories = domain.NewSelection(c.Categories...)
	c.Regions = domain.NewSelection(c.Regions...)
	c.SalesReps = domain.NewSelection(c.SalesReps...)
	c.PaymentMethods = domain.NewSelection(c.PaymentMethods...)
	if !c.DateRange.IsValid() {
		c.DateRange = domain.DateRange{}
	}
	return c
}
