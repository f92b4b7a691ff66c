package table

import (
	"github.com/elliotchance/orderedmap/v2"
)

// Set is a collection of tables keyed by name that preserves insertion
// order. The quality checker depends on stable iteration order for
// deterministic issue reporting.
type Set struct {
	tables *orderedmap.OrderedMap[string, *Table]
}

// NewSet creates an empty table set.
func NewSet() *Set {
	return &Set{
		tables: orderedmap.NewOrderedMap[string, *Table](),
	}
}

// Put adds or replaces a table under the given key.
func (s *Set) Put(key string, t *Table) {
	s.tables.Set(key, t)
}

// Get returns the table under the given key.
func (s *Set) Get(key string) (*Table, bool) {
	return s.tables.Get(key)
}

// Len returns the number of tables in the set.
func (s *Set) Len() int {
	return s.tables.Len()
}

// Keys returns the table keys in insertion order.
func (s *Set) Keys() []string {
	return s.tables.Keys()
}

// Each calls fn for every table in insertion order.
func (s *Set) Each(fn func(key string, t *Table)) {
	for el := s.tables.Front(); el != nil; el = el.Next() {
		fn(el.Key, el.Value)
	}
}

// TotalRows returns the sum of row counts across all tables.
func (s *Set) TotalRows() int64 {
	var total int64
	s.Each(func(_ string, t *Table) {
		total += int64(t.NumRows())
	})
	return total
}
