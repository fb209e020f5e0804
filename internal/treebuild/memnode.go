package treebuild

// status tracks how far a memNode has progressed through emit and
// layout. Both stages are idempotent on a node that already reached
// them, since a node can be visited more than once: once when a sibling
// closes it out early (see addNode), and again through its parent's own
// emit/layout recursion.
type status int

const (
	statusInit status = iota
	statusEmitted
	statusLaidOut
)

// memNode is the in-memory representation of one tree node while TreeGen
// is scanning the point file. Every node starts as statusInit. A node
// whose final point count falls under leafthresh has its subtree
// collapsed into a leaf and becomes statusEmitted. layoutNode moves a node
// to statusLaidOut once it has a post-order index and per-level-of-detail
// block sizes; the node is written out as a DiskNode later, when
// assignBlock has given it a block ID at every level of detail.
type memNode struct {
	htmID  int64
	index  uint64
	count  uint64
	status status

	id         NodeID
	blockSize  [NLOD]uint32
	blockDepth [NLOD]uint8

	child [4]*memNode
}

func newMemNode(htmID int64, index uint64) *memNode {
	return &memNode{htmID: htmID, index: index}
}
