package treesearch

import (
	"github.com/Caltech-IPAC/go-tinyhtm/errs"
	"github.com/Caltech-IPAC/go-tinyhtm/htm"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/treebuild"
	"github.com/Caltech-IPAC/go-tinyhtm/internal/varint"
)

// onDiskNode is one node's record as read directly off the mmapped tree
// file: its point count and data-file index, and -- only when internal
// -- the byte offset of each non-empty child (child[c] < 0 if absent).
type onDiskNode struct {
	count, index uint64
	internal     bool
	child        [4]int64
}

// isInternal reports whether the node at level, holding count points,
// was stored with children: TreeGen collapses a subtree into a leaf
// exactly when it never reaches the leaf threshold, or once it hits the
// tree's maximum depth.
func isInternal(level int, count, leafthresh uint64) bool {
	return level < treebuild.MaxDepth && count >= leafthresh
}

// readNode decodes the node record starting at pos. The index it returns
// is the stored value, relative to the parent node's index.
func readNode(data []byte, pos int, level int, leafthresh uint64) (onDiskNode, error) {
	var n onDiskNode
	count, used, err := varint.Decode(data[pos:])
	if err != nil {
		return n, errs.Wrap(errs.KindTree, "treesearch: read node count", err)
	}
	pos += used
	index, used, err := varint.Decode(data[pos:])
	if err != nil {
		return n, errs.Wrap(errs.KindTree, "treesearch: read node index", err)
	}
	pos += used

	n.count, n.index = count, index
	n.internal = isInternal(level, count, leafthresh)
	for c := range n.child {
		n.child[c] = -1
	}
	if !n.internal {
		return n, nil
	}
	for c := 0; c < 4; c++ {
		val, used, err := varint.Decode(data[pos:])
		if err != nil {
			return n, errs.Wrap(errs.KindTree, "treesearch: read child offset", err)
		}
		pos += used
		if val != 0 {
			n.child[c] = int64(pos) + int64(val) - 1
		}
	}
	return n, nil
}

// triOf builds the classifiable triangle for node, the way htm.IdToTri
// does for a standalone id.
func triOf(node htm.Node) (htm.Tri, error) {
	center, ok := node.Center().Normalized()
	if !ok {
		return htm.Tri{}, errs.New(errs.KindDegenerate, "treesearch: degenerate triangle center")
	}
	return htm.Tri{
		Vert:        node.V,
		Edge:        node.E,
		Center:      center,
		BoundRadius: node.BoundingRadius(center),
	}, nil
}
