package htm

import (
	"github.com/Caltech-IPAC/go-tinyhtm/errs"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
)

// Tri is the concrete triangle (trixel) named by an Id: its three
// vertices, its three inward edge-plane normals, a unit center, and a
// bounding angular radius (the farthest vertex from the center).
type Tri struct {
	Vert         [3]region.V3
	Edge         [3]region.V3
	Center       region.V3
	BoundRadius  float64
}

// IdToTri reconstructs the triangle named by id by walking its child
// bits from the root down, applying the inverse of the subdivision used
// by Of.
func IdToTri(id Id) (Tri, error) {
	level := Level(id)
	if level < 0 {
		return Tri{}, errs.New(errs.KindBadID, "malformed HTM id")
	}
	u := uint64(id)
	root := Root((u >> uint(2*level)) & 7)
	node := RootNode(root)

	for l := level - 1; l >= 0; l-- {
		child := int((u >> uint(2*l)) & 3)
		node = node.Child(child)
	}

	center, ok := node.Center().Normalized()
	if !ok {
		return Tri{}, errs.New(errs.KindDegenerate, "degenerate triangle center")
	}
	return Tri{
		Vert:        node.V,
		Edge:        node.E,
		Center:      center,
		BoundRadius: node.BoundingRadius(center),
	}, nil
}
