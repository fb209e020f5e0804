package treesearch

import (
	"github.com/Caltech-IPAC/go-tinyhtm/htm"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/coverage"
)

// insideHandler is invoked once per INSIDE-classified subtree -- the
// region fully contains this node's triangle, so every point under it
// matches transitively without a coordinate re-test.
type insideHandler func(index, count uint64) error

// leafHandler is invoked once per CONTAINS/INTERSECT node that wasn't
// eligible to descend further (the structural leaf case).
type leafHandler func(n onDiskNode) error

// walk classifies node against shape and recurses into its on-disk
// children as needed. It reports whether shape was found to be fully
// contained within node's triangle (code == Contains): when true, the
// caller's sibling loop can stop, since a connected region can't also
// overlap a sibling triangle. base is the parent's absolute record index,
// to which the node's stored (parent-relative) index is added.
func (t *Tree) walk(node htm.Node, level int, pos int64, base uint64, shape coverage.Shape, inside insideHandler, leaf leafHandler) (contains bool, err error) {
	tri, err := triOf(node)
	if err != nil {
		return false, err
	}
	code := shape.Classify(tri)
	if code == coverage.Disjoint {
		return false, nil
	}

	n, err := readNode(t.data, int(pos), level, t.leafthresh)
	if err != nil {
		return false, err
	}
	n.index += base
	if code == coverage.Inside {
		return false, inside(n.index, n.count)
	}
	if !n.internal {
		return code == coverage.Contains, leaf(n)
	}
	for c := 0; c < 4; c++ {
		if n.child[c] < 0 {
			continue
		}
		child := node.Child(c)
		stop, err := t.walk(child, level+1, n.child[c], n.index, shape, inside, leaf)
		if err != nil {
			return false, err
		}
		if stop {
			break
		}
	}
	return code == coverage.Contains, nil
}

// walkRoots runs walk over each non-empty HTM root, stopping early once
// a root is found to fully contain shape.
func (t *Tree) walkRoots(shape coverage.Shape, inside insideHandler, leaf leafHandler) error {
	for r := 0; r < 8; r++ {
		if t.rootPos[r] < 0 {
			continue
		}
		stop, err := t.walk(rootNode(r), 0, t.rootPos[r], 0, shape, inside, leaf)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}
	return nil
}

// Count returns the number of points matching shape, descending into
// the tree and consulting the point store only at partially-covered
// leaves.
func (t *Tree) Count(shape coverage.Shape) (uint64, error) {
	var total uint64
	inside := func(_, count uint64) error {
		total += count
		return nil
	}
	leaf := func(n onDiskNode) error {
		for i := uint64(0); i < n.count; i++ {
			idx := n.index + i
			v, err := t.store.Vector(int(idx))
			if err != nil {
				return err
			}
			if shape.Contains(v) {
				total++
			}
		}
		return nil
	}
	if err := t.walkRoots(shape, inside, leaf); err != nil {
		return 0, err
	}
	return total, nil
}

// Range bounds the number of points matching shape without touching any
// point coordinates: min counts only subtrees fully inside shape, max
// also counts every point in a partially-covered leaf as a possible
// match. min == max only when the tree's structure happens to resolve
// the query exactly.
func (t *Tree) Range(shape coverage.Shape) (min, max uint64, err error) {
	inside := func(_, count uint64) error {
		min += count
		max += count
		return nil
	}
	leaf := func(n onDiskNode) error {
		max += n.count
		return nil
	}
	if err := t.walkRoots(shape, inside, leaf); err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

// Enumerate calls cb once for every point transitively or exactly
// matching shape, in traversal order (root 0..7, then child 0..3 at
// each level). cb's return value decides whether that point is counted
// in the returned total; Enumerate never skips calling cb itself for a
// point inside an INSIDE-classified subtree, even though its coordinate
// is never re-tested there.
func (t *Tree) Enumerate(shape coverage.Shape, cb func(idx uint64) bool) (uint64, error) {
	var total uint64
	inside := func(index, count uint64) error {
		for i := uint64(0); i < count; i++ {
			if cb(index + i) {
				total++
			}
		}
		return nil
	}
	leaf := func(n onDiskNode) error {
		for i := uint64(0); i < n.count; i++ {
			idx := n.index + i
			v, err := t.store.Vector(int(idx))
			if err != nil {
				return err
			}
			if !shape.Contains(v) {
				continue
			}
			if cb(idx) {
				total++
			}
		}
		return nil
	}
	if err := t.walkRoots(shape, inside, leaf); err != nil {
		return 0, err
	}
	return total, nil
}
