package htm

import "github.com/Caltech-IPAC/go-tinyhtm/htm/region"

// Root names the 8 level-0 HTM triangles. Their ID is Root+8.
type Root int

const (
	S0 Root = iota
	S1
	S2
	S3
	N0
	N1
	N2
	N3
)

// MaxLevel is the deepest supported subdivision level; level-L ids occupy
// 2L+4 bits, and 2*24+4 = 52 bits comfortably fits in an int64.
const MaxLevel = 24

var (
	z  = region.V3{X: 0, Y: 0, Z: 1}
	x  = region.V3{X: 1, Y: 0, Z: 0}
	y  = region.V3{X: 0, Y: 1, Z: 0}
	nx = region.V3{X: -1, Y: 0, Z: 0}
	ny = region.V3{X: 0, Y: -1, Z: 0}
	nz = region.V3{X: 0, Y: 0, Z: -1}
)

// rootVert[r] holds the 3 vertices of root triangle r, counter-clockwise
// as seen from outside the sphere.
var rootVert = [8][3]region.V3{
	{x, nz, y},  // S0
	{y, nz, nx}, // S1
	{nx, nz, ny}, // S2
	{ny, nz, x},  // S3
	{x, z, ny},  // N0
	{ny, z, nx}, // N1
	{nx, z, y},  // N2
	{y, z, x},   // N3
}

// rootEdge[r] holds the 3 edge-plane inward normals of root triangle r,
// aligned with rootVert[r] (edge i runs from vertex i to vertex i+1 and
// its normal is V[i]×V[i+1]).
var rootEdge = [8][3]region.V3{
	{y, x, nz},  // S0
	{nx, y, nz}, // S1
	{ny, nx, nz}, // S2
	{x, ny, nz},  // S3
	{ny, x, z},  // N0
	{nx, ny, z}, // N1
	{y, nx, z},  // N2
	{x, y, z},   // N3
}

// RootOf returns the root triangle containing unit vector v, resolving
// ties on zero coordinates by favoring the positive axis (matching
// libtinyhtm's _htm_v3_htmroot).
func RootOf(v region.V3) Root {
	if v.Z < 0 {
		switch {
		case v.Y > 0:
			if v.X > 0 {
				return S0
			}
			return S1
		case v.Y == 0:
			if v.X >= 0 {
				return S0
			}
			return S2
		default:
			if v.X < 0 {
				return S2
			}
			return S3
		}
	}
	switch {
	case v.Y > 0:
		if v.X > 0 {
			return N3
		}
		return N2
	case v.Y == 0:
		if v.X >= 0 {
			return N3
		}
		return N1
	default:
		if v.X < 0 {
			return N1
		}
		return N0
	}
}
