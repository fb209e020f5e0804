package rangecover

import (
	"github.com/Caltech-IPAC/go-tinyhtm/errs"
	"github.com/Caltech-IPAC/go-tinyhtm/htm"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/coverage"
)

// frame is one level of the depth-first traversal: the triangle at this
// level, its id, and which child to descend into next time this frame is
// revisited on the way back down (4 means none left).
type frame struct {
	node  htm.Node
	id    int64
	child int
}

// Cover returns the RangeList of level-L HTM id ranges whose union covers
// shape, starting a depth-first descent from each of the 8 roots and
// stopping each branch as soon as it is classified DISJOINT, or fully
// INSIDE/CONTAINS at the current effective level.
//
// If the resulting list would exceed maxRanges, the effective level is
// lowered and the list built so far is re-coalesced at the coarser
// granularity (RangeList.Coarsen), repeating until the list fits or the
// effective level reaches 0. maxRanges below 4 always fails: at effective
// level 0 the cover is a set of the 8 root ids, and since coalesced ranges
// are separated by at least one missing root it never needs more than 4
// ranges, so any budget under 4 is treated as unsatisfiable up front
// rather than discovered failing degenerately deep into the traversal.
func Cover(shape coverage.Shape, level, maxRanges int) (*RangeList, error) {
	if level < 0 || level > htm.MaxLevel {
		return nil, errs.New(errs.KindBadLevel, "level out of [0, HTM_MAX_LEVEL]")
	}
	if maxRanges < 4 {
		return nil, errs.ErrOutOfBudget
	}

	list := &RangeList{}
	effLevel := level

	for r := htm.S0; r <= htm.N3; r++ {
		stack := make([]frame, 1, level+1)
		stack[0] = frame{node: htm.RootNode(r), id: int64(r) + 8, child: 0}
		curlevel := 0
		shortCircuitRoot := false

		for {
			cur := &stack[curlevel]
			tri := htm.Tri{Vert: cur.node.V, Edge: cur.node.E}
			code := shape.Classify(tri)

			switch code {
			case coverage.Contains:
				if curlevel == 0 {
					shortCircuitRoot = true
				} else {
					stack[curlevel-1].child = 4
				}
				fallthrough
			case coverage.Intersect:
				if curlevel < effLevel {
					child := cur.node.Child(0)
					cur.child = 1
					stack = append(stack, frame{node: child, id: cur.id << 2, child: 0})
					curlevel++
					continue
				}
				fallthrough
			case coverage.Inside:
				shift := uint(2 * (level - curlevel))
				id := cur.id << shift
				n := int64(1) << shift
				list.Add(htm.Id(id), htm.Id(id+n-1))
				for list.Len() > maxRanges && effLevel != 0 {
					effLevel--
					if curlevel > effLevel {
						stack = stack[:effLevel+1]
						curlevel = effLevel
					}
					list.Coarsen(level - effLevel)
				}
			case coverage.Disjoint:
				// nothing to emit
			}

			// ascend towards the root, skipping exhausted frames
			curlevel--
			stack = stack[:curlevel+1]
			for curlevel >= 0 && stack[curlevel].child == 4 {
				curlevel--
				stack = stack[:curlevel+1]
			}
			if curlevel < 0 {
				break
			}
			parent := &stack[curlevel]
			nextChild := parent.child
			var child htm.Node
			switch nextChild {
			case 1:
				child = parent.node.Child(1)
			case 2:
				child = parent.node.Child(2)
			default:
				child = parent.node.Child(3)
			}
			newID := (parent.id << 2) + int64(nextChild)
			parent.child = nextChild + 1
			stack = append(stack, frame{node: child, id: newID, child: 0})
			curlevel++
		}

		if shortCircuitRoot {
			break
		}
	}

	return list, nil
}
