// Package registry holds the immutable component store and the read-only
// queries served over it.
package registry

import (
	"fmt"

	"github.com/grokcon/registry-api/internal/errors"
)

// Store is the immutable component table. It is built once by NewStore and
// never written afterwards, so concurrent readers need no locking.
type Store struct {
	order []ComponentRecord
	index map[string]int
}

// NewStore builds a store from records in the given order. Names must be
// non-empty and unique.
func NewStore(records []ComponentRecord) (*Store, error) {
	s := &Store{
		order: make([]ComponentRecord, 0, len(records)),
		index: make(map[string]int, len(records)),
	}

	for i, rec := range records {
		if rec.Name == "" {
			return nil, errors.NewCatalogError(
				errors.ErrCodeCatalogInvalid,
				fmt.Sprintf("component at position %d has no name", i),
				nil,
			).WithContext("index", i)
		}
		if _, exists := s.index[rec.Name]; exists {
			return nil, errors.NewCatalogError(
				errors.ErrCodeCatalogDuplicate,
				"duplicate component name",
				nil,
			).WithComponent(rec.Name).WithContext("index", i)
		}

		s.index[rec.Name] = len(s.order)
		s.order = append(s.order, rec.normalized())
	}

	return s, nil
}

// Get retrieves a component by exact, case-sensitive name.
func (s *Store) Get(name string) (ComponentRecord, bool) {
	i, ok := s.index[name]
	if !ok {
		return ComponentRecord{}, false
	}
	return s.order[i], true
}

// All returns every record in insertion order. The returned slice is a copy;
// the records share their nested slices with the store and must be treated
// as read-only.
func (s *Store) All() []ComponentRecord {
	out := make([]ComponentRecord, len(s.order))
	copy(out, s.order)
	return out
}

// Count returns the number of records.
func (s *Store) Count() int {
	return len(s.order)
}
