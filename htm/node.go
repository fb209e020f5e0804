package htm

import "github.com/Caltech-IPAC/go-tinyhtm/htm/region"

// Node is a triangle together with the scratch state needed to compute
// its four children one at a time. It mirrors libtinyhtm's _htm_node: a
// six-function ladder (Prep0/Make0, Prep1/Make1, Prep2/Make2, Make3)
// where each Prep computes one more midpoint/plane-normal pair and each
// Make assembles one child from vertices and normals computed so far.
// Children share structure (e.g. every child reuses two of the parent's
// three edge-midpoints), so the ladder lets a caller that only needs one
// or two children (HtmId point descent, TreeSearch pruning) skip the
// rest of the work.
type Node struct {
	V       [3]region.V3
	E       [3]region.V3
	MidVert [3]region.V3
	MidEdge [3]region.V3
}

// Prep0 computes the midpoint/edge-normal pair needed by Make0.
func (n *Node) Prep0() {
	n.MidVert[1] = region.Midpoint(n.V[2], n.V[0])
	n.MidVert[2] = region.Midpoint(n.V[0], n.V[1])
	n.MidEdge[1] = n.MidVert[2].Cross(n.MidVert[1])
}

// Make0 returns child 0: the corner triangle at V[0]. Requires Prep0.
func (n *Node) Make0() Node {
	return Node{
		V: [3]region.V3{n.V[0], n.MidVert[2], n.MidVert[1]},
		E: [3]region.V3{n.E[0], n.MidEdge[1], n.E[2]},
	}
}

// Prep1 computes the midpoint/edge-normal pair needed by Make1. Requires Prep0.
func (n *Node) Prep1() {
	n.MidVert[0] = region.Midpoint(n.V[1], n.V[2])
	n.MidEdge[2] = n.MidVert[0].Cross(n.MidVert[2])
}

// Make1 returns child 1: the corner triangle at V[1]. Requires Prep0, Prep1.
func (n *Node) Make1() Node {
	return Node{
		V: [3]region.V3{n.V[1], n.MidVert[0], n.MidVert[2]},
		E: [3]region.V3{n.E[1], n.MidEdge[2], n.E[0]},
	}
}

// Prep2 computes the last edge-normal needed by Make2/Make3. Requires Prep0, Prep1.
func (n *Node) Prep2() {
	n.MidEdge[0] = n.MidVert[1].Cross(n.MidVert[0])
}

// Make2 returns child 2: the corner triangle at V[2]. Requires Prep0..Prep2.
func (n *Node) Make2() Node {
	return Node{
		V: [3]region.V3{n.V[2], n.MidVert[1], n.MidVert[0]},
		E: [3]region.V3{n.E[2], n.MidEdge[0], n.E[1]},
	}
}

// Make3 returns child 3: the central triangle formed by the three
// midpoints, wound the same way as its parent. Each midpoint-plane normal
// points into a corner child, so the central child uses their negations.
// Requires Prep0..Prep2.
func (n *Node) Make3() Node {
	return Node{
		V: [3]region.V3{n.MidVert[0], n.MidVert[1], n.MidVert[2]},
		E: [3]region.V3{n.MidEdge[0].Neg(), n.MidEdge[1].Neg(), n.MidEdge[2].Neg()},
	}
}

// Child returns child index idx (0..3), running exactly the Prep calls it
// needs.
func (n *Node) Child(idx int) Node {
	n.Prep0()
	if idx == 0 {
		return n.Make0()
	}
	n.Prep1()
	if idx == 1 {
		return n.Make1()
	}
	n.Prep2()
	if idx == 2 {
		return n.Make2()
	}
	return n.Make3()
}

// RootNode returns the Node for root triangle r.
func RootNode(r Root) Node {
	return Node{V: rootVert[r], E: rootEdge[r]}
}

// Center returns the (unnormalized) centroid of the triangle; callers
// that need a unit vector should normalize it.
func (n Node) Center() region.V3 {
	return n.V[0].Add(n.V[1]).Add(n.V[2])
}

// BoundingRadius returns the maximum angular distance, in radians, from
// the (normalized) centroid to any of the triangle's vertices.
func (n Node) BoundingRadius(center region.V3) float64 {
	maxR := 0.0
	for _, v := range n.V {
		if d := region.AngularDistance(center, v); d > maxR {
			maxR = d
		}
	}
	return maxR
}
