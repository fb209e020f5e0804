package query

import (
	"os"

	"github.com/Caltech-IPAC/go-tinyhtm/errs"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/coverage"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/rangecover"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/entrystore"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/treesearch"
	"github.com/Caltech-IPAC/go-tinyhtm/scanfallback"
)

// Query answers Count/Range/Enumerate against a single shape, backed by
// whichever engine Open selected. Callers never branch on which engine
// is live; Close is always safe to call.
type Query struct {
	shape coverage.Shape
	tree  *treesearch.Tree // nil when degraded to a linear scan
	scan  *scanfallback.Scanner
}

// Open builds a Query over shape and store. When treePath names a file
// that exists, queries descend it via treesearch; otherwise Open
// degrades to scanfallback, scanning store directly. store must already
// be open and outlives the Query; Open never closes it.
func Open(shape coverage.Shape, store *entrystore.Store, treePath string) (*Query, error) {
	if treePath != "" {
		switch _, err := os.Stat(treePath); {
		case err == nil:
			tree, err := treesearch.Open(treePath, store)
			if err != nil {
				return nil, err
			}
			return &Query{shape: shape, tree: tree}, nil
		case !os.IsNotExist(err):
			return nil, errs.Wrap(errs.KindIO, "query: stat tree file", err)
		}
	}
	return &Query{shape: shape, scan: scanfallback.New(store)}, nil
}

// Close releases the tree mapping, if one was opened. It is a no-op
// when the query degraded to a linear scan.
func (q *Query) Close() error {
	if q.tree == nil {
		return nil
	}
	return q.tree.Close()
}

// FromTree reports whether this query is backed by a tree file rather
// than a linear scan.
func (q *Query) FromTree() bool {
	return q.tree != nil
}

// Count returns the number of records matching the query's shape.
func (q *Query) Count() (uint64, error) {
	if q.tree != nil {
		return q.tree.Count(q.shape)
	}
	return q.scan.Count(q.shape)
}

// Range bounds the number of matching records without touching any
// record payload. A linear-scan query always returns an exact (n, n).
func (q *Query) Range() (min, max uint64, err error) {
	if q.tree != nil {
		return q.tree.Range(q.shape)
	}
	return q.scan.Range(q.shape)
}

// Enumerate calls cb once per matching record; cb's return value
// decides whether that record is counted in the returned total.
func (q *Query) Enumerate(cb func(idx uint64) bool) (uint64, error) {
	if q.tree != nil {
		return q.tree.Enumerate(q.shape, cb)
	}
	return q.scan.Enumerate(q.shape, cb)
}

// CoveringRanges returns the RangeList of level-L HTM id ranges whose
// union covers the query's shape. It is independent of both the tree
// and the store: a caller can use it to drive its own scan over a
// catalog that hasn't been built into an EntryStore yet.
func (q *Query) CoveringRanges(level, maxRanges int) (*rangecover.RangeList, error) {
	return rangecover.Cover(q.shape, level, maxRanges)
}
