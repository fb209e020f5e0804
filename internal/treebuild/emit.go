package treebuild

// emitNode is called once all points belonging to node are known. It
// recurses into children first (post-order), then either collapses
// node's subtree into a leaf (count below leafthresh -- children are
// simply discarded, since they were never going to be written out
// individually) or lays node out via Clark-Munro.
//
// Idempotent: a node visited a second time (e.g. once from addNode
// closing out a sibling early, again from its parent's own recursion)
// is a no-op.
func emitNode(node *memNode, c *ctx) {
	if node.status > statusInit {
		return
	}
	for _, child := range node.child {
		if child != nil {
			emitNode(child, c)
		}
	}
	if node.count < c.leafthresh {
		node.child = [4]*memNode{}
		node.status = statusEmitted
		return
	}
	layoutNode(node, c)
}
