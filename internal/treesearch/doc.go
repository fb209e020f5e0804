// Package treesearch answers spatial queries against a compressed tree
// file built by treebuild/treecompress, without ever materializing the
// tree in memory: it walks the mmapped byte stream directly, descending
// one child at a time via the same seven-function subdivision ladder HtmId
// uses, and consults a mmapped entrystore.Store only for the point-level
// coordinate tests a partially-covered leaf requires.
//
// A node's on-disk record is count and index (both varint; the index is
// relative to the parent's), followed -- only if the node is internal --
// by 4 child-offset fields in child order 0..3 (a zero byte marks an
// absent child; any other value is 1 plus the child's distance forward
// from the end of that field).
// Whether a node is internal is never stored explicitly: it follows
// deterministically from (level, count, leafthresh), the same predicate
// TreeGen used to decide whether to collapse the subtree while building.
package treesearch
