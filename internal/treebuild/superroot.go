package treebuild

// SuperRoot holds the 8 level-0 HTM nodes once every point has been
// added. It has no parent of its own, so Clark-Munro for the top of the
// tree (finishRoot) always allocates real block IDs rather than
// deferring to an ancestor the way layoutNode's internal nodes can.
type SuperRoot struct {
	Count   uint64
	child   [8]*memNode
	ChildID [8]NodeID
}

// finishRoot assigns block IDs, at every level of detail, to the 8 HTM
// roots, following the same greedy smallest-first packing layoutNode
// uses for an internal node's children (there being no actual "parent"
// node here to possibly merge with).
func finishRoot(super *SuperRoot, c *ctx) {
	var cinfo []childInfo
	for i := 0; i < 8; i++ {
		tmp := super.child[i]
		if tmp != nil {
			super.Count += tmp.count
			cinfo = append(cinfo, childInfo{node: tmp, idx: i})
		}
	}

	if len(cinfo) == 0 {
		return
	}

	for lod := 0; lod < NLOD; lod++ {
		info := make([]childInfo, len(cinfo))
		copy(info, cinfo)
		for i := range info {
			info[i].size = info[i].node.blockSize[lod]
			info[i].depth = info[i].node.blockDepth[lod]
		}
		byDepthThenSize(info)

		close := 0
		totsz := info[0].size
		for ci := 1; ci < len(info); ci++ {
			if totsz+info[ci].size > LayoutSize[lod] {
				c.blockid[lod]++
				bid := c.blockid[lod]
				for ; close < ci; close++ {
					assignBlock(c, info[close].node, bid, lod)
				}
				totsz = info[ci].size
			} else {
				totsz += info[ci].size
			}
		}
		c.blockid[lod]++
		bid := c.blockid[lod]
		for ; close < len(info); close++ {
			assignBlock(c, info[close].node, bid, lod)
		}
	}

	for _, ci := range cinfo {
		super.ChildID[ci.idx] = ci.node.id
		super.child[ci.idx] = nil
	}
}
