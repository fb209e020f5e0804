package treebuild

import (
	"encoding/binary"

	"github.com/Caltech-IPAC/go-tinyhtm/errs"
)

// NLOD is the number of levels-of-detail Split-and-Refine lays out at.
const NLOD = 5

// LayoutSize holds the NLOD block sizes in bytes, largest to smallest:
// a large page, a size between small and large pages (for OS readahead),
// a small page, a size between cache line and page (for HW prefetch),
// and a cache line.
var LayoutSize = [NLOD]uint32{2097152, 65536, 4096, 256, 64}

// MaxDepth is the deepest level TreeGen subdivides to; points with the
// same level-MaxDepth HTM id collapse into a single leaf.
const MaxDepth = 20

// NodeID is a node's hierarchical layout key: one block ID per
// level-of-detail, followed by its post-order traversal index (which
// makes the key unique even when several nodes land in the same
// smallest-LOD block). A node N1 sorts before N2 iff N1's block-ID
// string is lexicographically less than N2's.
type NodeID struct {
	Block [NLOD + 1]uint64
}

// Less reports whether id sorts before other.
func (id NodeID) Less(other NodeID) bool {
	for i := range id.Block {
		if id.Block[i] < other.Block[i] {
			return true
		}
		if id.Block[i] > other.Block[i] {
			return false
		}
	}
	return false
}

// Empty reports whether id names an absent child (every block ID zero).
func (id NodeID) Empty() bool {
	for _, b := range id.Block {
		if b != 0 {
			return false
		}
	}
	return true
}

// DiskNode is the fixed-width, ExtSort-ready encoding of one tree node:
// its own NodeID, its point count and data-file index, and the NodeIDs
// of its (up to 4) children. Empty children carry the zero NodeID.
type DiskNode struct {
	ID    NodeID
	Count uint64
	Index uint64
	Child [4]NodeID
}

// DiskNodeSize is the exact byte width of one encoded DiskNode:
// (NLOD+1)*8 for ID, 8 for Count, 8 for Index, 4*(NLOD+1)*8 for children.
const DiskNodeSize = (NLOD+1)*8 + 8 + 8 + 4*(NLOD+1)*8

// Encode serializes n into a DiskNodeSize-byte big-endian record.
func (n DiskNode) Encode() []byte {
	buf := make([]byte, DiskNodeSize)
	off := 0
	off = putNodeID(buf, off, n.ID)
	binary.BigEndian.PutUint64(buf[off:], n.Count)
	off += 8
	binary.BigEndian.PutUint64(buf[off:], n.Index)
	off += 8
	for _, c := range n.Child {
		off = putNodeID(buf, off, c)
	}
	return buf
}

// DecodeDiskNode parses a DiskNodeSize-byte record produced by Encode.
func DecodeDiskNode(buf []byte) (DiskNode, error) {
	if len(buf) != DiskNodeSize {
		return DiskNode{}, errs.New(errs.KindBadLen, "treebuild: malformed disk node record")
	}
	var n DiskNode
	off := 0
	n.ID, off = getNodeID(buf, off)
	n.Count = binary.BigEndian.Uint64(buf[off:])
	off += 8
	n.Index = binary.BigEndian.Uint64(buf[off:])
	off += 8
	for i := range n.Child {
		n.Child[i], off = getNodeID(buf, off)
	}
	return n, nil
}

// Less orders DiskNodes by NodeID, the sort key ExtSort uses to produce
// TreeCompress's required children-before-parent byte order.
func (n DiskNode) Less(other DiskNode) bool { return n.ID.Less(other.ID) }

func putNodeID(buf []byte, off int, id NodeID) int {
	for _, b := range id.Block {
		binary.BigEndian.PutUint64(buf[off:], b)
		off += 8
	}
	return off
}

func getNodeID(buf []byte, off int) (NodeID, int) {
	var id NodeID
	for i := range id.Block {
		id.Block[i] = binary.BigEndian.Uint64(buf[off:])
		off += 8
	}
	return id, off
}

// CompareDiskNodeRecords is an extsort.Comparator over DiskNodeSize-byte
// encoded records, ordering by NodeID.
func CompareDiskNodeRecords(a, b []byte) int {
	na, errA := DecodeDiskNode(a)
	nb, errB := DecodeDiskNode(b)
	if errA != nil || errB != nil {
		panic("treebuild: comparator given malformed record")
	}
	switch {
	case na.ID.Less(nb.ID):
		return -1
	case nb.ID.Less(na.ID):
		return 1
	default:
		return 0
	}
}
