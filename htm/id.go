package htm

import (
	"github.com/Caltech-IPAC/go-tinyhtm/errs"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
)

// Id is a 64-bit HTM identifier.
type Id int64

// Of returns the level-L HTM id of unit vector v, descending the HTM tree
// one level at a time: at each step the current triangle is subdivided
// and the signed distance of v to each of the three mid-edge planes picks
// one of the four children (the central child if v is "outside" all
// three planes, else the corner child on the near side of the plane it
// fails).
func Of(v region.V3, level int) (Id, error) {
	if v.IsZero() || !v.Finite() {
		return 0, errs.ErrNilVector
	}
	if level < 0 || level > MaxLevel {
		return 0, errs.New(errs.KindBadLevel, "level out of [0, HTM_MAX_LEVEL]")
	}
	u, ok := v.Normalized()
	if !ok {
		return 0, errs.ErrNilVector
	}

	root := RootOf(u)
	node := RootNode(root)
	id := int64(root) + 8

	for l := 0; l < level; l++ {
		node.Prep0()
		if node.MidEdge[1].Dot(u) >= 0 {
			node = node.Make0()
			id = id << 2
			continue
		}
		node.Prep1()
		if node.MidEdge[2].Dot(u) >= 0 {
			node = node.Make1()
			id = (id << 2) + 1
			continue
		}
		node.Prep2()
		if node.MidEdge[0].Dot(u) >= 0 {
			node = node.Make2()
			id = (id << 2) + 2
		} else {
			node = node.Make3()
			id = (id << 2) + 3
		}
	}
	return Id(id), nil
}
