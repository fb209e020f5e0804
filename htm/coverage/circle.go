package coverage

import (
	"github.com/Caltech-IPAC/go-tinyhtm/htm"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
)

// Circle classifies tri against a spherical circle given by its center and
// squared chord radius (region.Circle.Chord2()). Mirrors
// _htm_s2circle_htmcov: vertex-containment count first, then an
// edge-to-center distance check, then a center-behind-every-edge-plane
// check for the remaining CONTAINS/DISJOINT split.
func Circle(tri htm.Tri, center region.V3, chord2 float64) Code {
	nin := 0
	for _, v := range tri.Vert {
		if v.Dist2(center) <= chord2 {
			nin++
		}
	}
	if nin == 3 {
		return Inside
	}
	if nin != 0 {
		return Intersect
	}

	if edgeDist2(center, tri.Vert[0], tri.Vert[1], tri.Edge[0]) <= chord2 ||
		edgeDist2(center, tri.Vert[1], tri.Vert[2], tri.Edge[1]) <= chord2 ||
		edgeDist2(center, tri.Vert[2], tri.Vert[0], tri.Edge[2]) <= chord2 {
		return Intersect
	}

	if center.Dot(tri.Edge[0]) >= 0 && center.Dot(tri.Edge[1]) >= 0 && center.Dot(tri.Edge[2]) >= 0 {
		return Contains
	}
	return Disjoint
}

// edgeDist2 returns the minimum squared chord distance from c to any point
// on the geodesic arc from v1 to v2 (the great-circle edge with inward
// normal n). The point on the full great circle nearest c is the
// normalized in-plane component of c (c with its component along n
// removed); if that point falls within the arc's bounding lune (the same
// n×v1 / v2×n half-space test used to bound intersections against an
// edge elsewhere in this package), its distance to c is the answer,
// otherwise the nearest point is one of the two arc endpoints.
func edgeDist2(c, v1, v2, n region.V3) float64 {
	u, ok := n.Normalized()
	if !ok {
		return min2(c.Dist2(v1), c.Dist2(v2))
	}
	p := c.Sub(u.Scale(c.Dot(u)))
	q, ok := p.Normalized()
	if !ok {
		// c lies on the great circle's axis: every point of the circle
		// is equidistant from c, so only the endpoints matter.
		return min2(c.Dist2(v1), c.Dist2(v2))
	}
	c0 := u.Cross(v1)
	c1 := v2.Cross(u)
	if q.Dot(c0) >= 0 && q.Dot(c1) >= 0 {
		return c.Dist2(q)
	}
	return min2(c.Dist2(v1), c.Dist2(v2))
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
