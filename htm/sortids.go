package htm

import (
	"github.com/Caltech-IPAC/go-tinyhtm/errs"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
)

// SortIds assigns every point in points its level-L HTM id and returns a
// reordering of points grouped by id, run-length contiguous per id. It is
// a depth-first partitioning sort: points are first bucketed by root
// triangle, then recursively partitioned by the current triangle's three
// mid-edge planes (computed once per triangle, not once per point, since
// the planes depend only on the triangle). Cost is O(N*L) with one
// triangle-boundary computation per node visited rather than per point,
// which amortizes well for spatially clustered inputs.
func SortIds(points []region.V3, level int) (ids []Id, sorted []region.V3, err error) {
	if level < 0 || level > MaxLevel {
		return nil, nil, errs.New(errs.KindBadLevel, "level out of [0, HTM_MAX_LEVEL]")
	}
	n := len(points)
	unit := make([]region.V3, n)
	for i, v := range points {
		u, ok := v.Normalized()
		if !ok {
			return nil, nil, errs.ErrNilVector
		}
		unit[i] = u
	}

	var buckets [8][]int
	for i, u := range unit {
		r := RootOf(u)
		buckets[r] = append(buckets[r], i)
	}

	outIdx := make([]int, 0, n)
	outIds := make([]Id, 0, n)
	for r := 0; r < 8; r++ {
		b := buckets[r]
		if len(b) == 0 {
			continue
		}
		node := RootNode(Root(r))
		partitionIds(unit, b, node, int64(r)+8, level, &outIdx, &outIds)
	}

	sorted = make([]region.V3, n)
	for pos, orig := range outIdx {
		sorted[pos] = points[orig]
	}
	return outIds, sorted, nil
}

func partitionIds(unit []region.V3, items []int, node Node, id int64, depthLeft int, outIdx *[]int, outIds *[]Id) {
	if depthLeft == 0 {
		for _, i := range items {
			*outIdx = append(*outIdx, i)
			*outIds = append(*outIds, Id(id))
		}
		return
	}

	node.Prep0()
	node.Prep1()
	node.Prep2()

	var groups [4][]int
	for _, i := range items {
		v := unit[i]
		switch {
		case node.MidEdge[1].Dot(v) >= 0:
			groups[0] = append(groups[0], i)
		case node.MidEdge[2].Dot(v) >= 0:
			groups[1] = append(groups[1], i)
		case node.MidEdge[0].Dot(v) >= 0:
			groups[2] = append(groups[2], i)
		default:
			groups[3] = append(groups[3], i)
		}
	}

	makers := [4]func() Node{node.Make0, node.Make1, node.Make2, node.Make3}
	for k := 0; k < 4; k++ {
		if len(groups[k]) == 0 {
			continue
		}
		partitionIds(unit, groups[k], makers[k](), (id<<2)+int64(k), depthLeft-1, outIdx, outIds)
	}
}
