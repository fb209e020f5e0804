package treebuild

import (
	"sort"

	"github.com/Caltech-IPAC/go-tinyhtm/internal/varint"
)

// childInfo is one non-empty child's footprint at the level-of-detail
// currently being laid out, used to sort children smallest-first for
// Clark-Munro's greedy packing.
type childInfo struct {
	node  *memNode
	idx   int
	size  uint32
	depth uint8
}

func byDepthThenSize(c []childInfo) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].depth != c[j].depth {
			return c[i].depth < c[j].depth
		}
		return c[i].size < c[j].size
	})
}

// estimateNodeSize guesses the compressed on-disk size of node, before
// its final byte layout (and thus its exact child-offset widths) are
// known: varint(index) + varint(count), plus -- for an internal node --
// 3 bytes per child slot (1 for the common case of a short varint
// offset) plus 4 bytes of slack for longer ones.
func estimateNodeSize(node *memNode, nchild int) uint32 {
	sz := varint.Len(node.index) + varint.Len(node.count)
	if nchild > 0 {
		sz += nchild*3 + 4
	}
	return uint32(sz)
}

// layoutNode assigns node a post-order index and, at every
// level-of-detail, either merges it into a block with its children or
// opens fresh blocks, following Clark and Munro's greedy bottom-up
// method. Idempotent: a node already laid out is left alone.
func layoutNode(node *memNode, c *ctx) {
	if node.status > statusEmitted {
		return
	}

	var cinfo []childInfo
	for i, child := range node.child {
		if child != nil {
			layoutNode(child, c)
			cinfo = append(cinfo, childInfo{node: child, idx: i})
		}
	}

	node.status = statusLaidOut
	c.poidx++
	node.id.Block[NLOD] = c.poidx

	nodesz := estimateNodeSize(node, len(cinfo))

	if len(cinfo) == 0 {
		for lod := 0; lod < NLOD; lod++ {
			node.blockSize[lod] = nodesz
			node.blockDepth[lod] = 1
			if nodesz > LayoutSize[lod] {
				c.blockid[lod]++
				assignBlock(c, node, c.blockid[lod], lod)
			}
		}
		return
	}

	for lod := 0; lod < NLOD; lod++ {
		info := make([]childInfo, len(cinfo))
		copy(info, cinfo)
		for i := range info {
			child := info[i].node
			info[i].size = child.blockSize[lod]
			info[i].depth = child.blockDepth[lod]
		}
		byDepthThenSize(info)

		nchild := len(info)
		totsz := nodesz
		close, endclose := 0, nchild

		if info[0].depth == info[nchild-1].depth {
			for _, ci := range info {
				totsz += ci.size
			}
			if totsz <= LayoutSize[lod] {
				node.blockSize[lod] = totsz
				node.blockDepth[lod] = info[0].depth
				continue
			}
			totsz = nodesz
			for close = 0; close < nchild-1; close++ {
				if totsz+info[close].size > LayoutSize[lod] {
					break
				}
				totsz += info[close].size
			}
			node.blockSize[lod] = totsz
			node.blockDepth[lod] = info[0].depth + 1
		} else {
			totsz = nodesz
			for endclose = nchild - 1; endclose > 0; endclose-- {
				totsz += info[endclose].size
				if info[endclose-1].depth != info[nchild-1].depth {
					break
				}
			}
			if totsz < LayoutSize[lod] {
				node.blockSize[lod] = totsz
				node.blockDepth[lod] = info[nchild-1].depth
			} else {
				node.blockSize[lod] = nodesz
				node.blockDepth[lod] = info[nchild-1].depth + 1
				endclose = nchild
			}
		}

		totsz = info[close].size
		for ci := close + 1; ci < endclose; ci++ {
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
		for ; close < endclose; close++ {
			assignBlock(c, info[close].node, bid, lod)
		}
	}
}

// assignBlock assigns blockid at level-of-detail lod to every node in
// n's subtree that doesn't already have one there. Once a node has a
// block ID at every level of detail it is complete: it is written to
// the sink as a DiskNode and its children are discarded.
func assignBlock(c *ctx, n *memNode, blockid uint64, lod int) {
	if n.id.Block[lod] != 0 {
		return
	}
	for _, child := range n.child {
		if child != nil {
			assignBlock(c, child, blockid, lod)
		}
	}
	n.id.Block[lod] = blockid
	for _, b := range n.id.Block {
		if b == 0 {
			return
		}
	}

	d := DiskNode{ID: n.id, Count: n.count, Index: n.index}
	for i, child := range n.child {
		if child != nil {
			d.Child[i] = child.id
			n.child[i] = nil
		}
	}
	if c.err == nil {
		if err := c.sink(d); err != nil {
			c.err = err
		} else {
			c.nnodes++
		}
	}
}
