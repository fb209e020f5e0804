package scanfallback

import (
	"github.com/Caltech-IPAC/go-tinyhtm/htm/coverage"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/entrystore"
)

// Scanner answers queries by linear scan over a store, with no tree
// file involved. It is the degraded path a Query falls back to when
// Open can't find a tree file next to the records.
type Scanner struct {
	store *entrystore.Store
}

// New wraps store for linear-scan queries. Scanner does not own store;
// the caller is responsible for closing it.
func New(store *entrystore.Store) *Scanner {
	return &Scanner{store: store}
}

// Count returns the number of records matching shape.
func (s *Scanner) Count(shape coverage.Shape) (uint64, error) {
	var total uint64
	err := s.each(func(idx int) (bool, error) {
		v, err := s.store.Vector(idx)
		if err != nil {
			return false, err
		}
		if shape.Contains(v) {
			total++
		}
		return true, nil
	})
	return total, err
}

// Range returns (n, n): a linear scan always knows the exact count, so
// the bounds it reports collapse to a single value.
func (s *Scanner) Range(shape coverage.Shape) (min, max uint64, err error) {
	n, err := s.Count(shape)
	return n, n, err
}

// Enumerate calls cb once for every record matching shape, in store
// order (index 0..Len-1). cb's return value decides whether that
// record is counted in the returned total.
func (s *Scanner) Enumerate(shape coverage.Shape, cb func(idx uint64) bool) (uint64, error) {
	var total uint64
	err := s.each(func(idx int) (bool, error) {
		v, err := s.store.Vector(idx)
		if err != nil {
			return false, err
		}
		if !shape.Contains(v) {
			return true, nil
		}
		if cb(uint64(idx)) {
			total++
		}
		return true, nil
	})
	return total, err
}

// each calls fn for every record index in the store, stopping early on
// error or on fn returning false.
func (s *Scanner) each(fn func(idx int) (bool, error)) error {
	for i := 0; i < s.store.Len(); i++ {
		cont, err := fn(i)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}
