package treebuild

// ctx carries the state shared across every node TreeGen touches: the
// leaf-collapse threshold, the next post-order index to hand out, the
// next block ID to hand out per level-of-detail, and the sink DiskNodes
// are written to once fully laid out.
type ctx struct {
	leafthresh uint64
	poidx      uint64
	blockid    [NLOD]uint64
	sink       func(DiskNode) error
	nnodes     uint64
	err        error
}

// addNode walks the level-MaxDepth path of htmid from root, creating
// interior nodes as needed and accumulating count into every node on the
// path. htmid carries the full HTM id bit layout (leading 1, 3 root
// bits, 2 bits per level); only the low 2*MaxDepth bits are consulted
// here since the root is already fixed.
//
// Before descending into child c, any of its earlier-indexed siblings
// still in statusInit are emitted: because points arrive in ascending
// HTM id order, once we start filling child c no more points will ever
// arrive for a sibling at an index less than c.
func addNode(root *memNode, c *ctx, htmid int64, count, index uint64) {
	node := root
	idx := index
	for lvl := 0; lvl < MaxDepth; lvl++ {
		node.count += count
		child := int((htmid >> uint(2*(MaxDepth-1-lvl))) & 3)
		for i := 0; i < child; i++ {
			if sib := node.child[i]; sib != nil && sib.status == statusInit {
				emitNode(sib, c)
			}
		}
		idx -= node.index
		if node.child[child] == nil {
			node.child[child] = newMemNode(node.htmID*4+int64(child), idx)
		}
		node = node.child[child]
	}
	node.count = count
}
