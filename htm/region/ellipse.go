package region

import "math"

// Ellipse is a spherical ellipse represented as a symmetric 3x3 quadratic
// form M (stored by its six independent entries), a center unit vector,
// and the semi-major axis in degrees.
//
// The boundary is vᵀMv = 0; a unit vector v is inside iff vᵀMv <= 0 and
// v·center >= 0 (the hemisphere condition disambiguates the ellipse from
// its antipodal mirror image, which satisfies the same quadratic). When
// the semi-major axis is itself >= 90 degrees the ellipse can cover more
// than a hemisphere and the hemisphere check is skipped.
type Ellipse struct {
	Mxx, Myy, Mzz float64
	Mxy, Mxz, Myz float64
	Center        V3
	ADeg          float64
}

// NewEllipse builds the quadratic form for an ellipse centered at center
// with semi-major axis aDeg >= semi-minor axis bDeg (both degrees) and
// position angle paDeg measured east of north.
//
// Construction is the orthographic (tangent-plane) form: a unit vector v is
// inside the ellipse iff its projection onto the tangent plane at center,
// resolved along the rotated (major, minor) axes, satisfies
// (v·major)²/sin²a + (v·minor)²/sin²b <= 1. Writing that inequality using
// v·v=1 for unit v yields the homogeneous form vᵀMv <= 0 with
// M = major⊗major/sin²a + minor⊗minor/sin²b - I.
func NewEllipse(center V3, aDeg, bDeg, paDeg float64) (Ellipse, bool) {
	c, ok := center.Normalized()
	if !ok {
		return Ellipse{}, false
	}
	if aDeg <= 0 || bDeg <= 0 || aDeg > 180 || bDeg > aDeg {
		return Ellipse{}, false
	}
	north, east := NorthEastFrame(c)
	pa := paDeg * degToRad
	major := north.Scale(math.Cos(pa)).Add(east.Scale(math.Sin(pa)))
	minor := north.Scale(-math.Sin(pa)).Add(east.Scale(math.Cos(pa)))

	sa := math.Sin(aDeg * degToRad)
	sb := math.Sin(bDeg * degToRad)
	if sa == 0 || sb == 0 {
		return Ellipse{}, false
	}
	ia, ib := 1/(sa*sa), 1/(sb*sb)

	m := outer(major, ia).add(outer(minor, ib))
	m.xx -= 1
	m.yy -= 1
	m.zz -= 1

	return Ellipse{
		Mxx: m.xx, Myy: m.yy, Mzz: m.zz,
		Mxy: m.xy, Mxz: m.xz, Myz: m.yz,
		Center: c, ADeg: aDeg,
	}, true
}

type sym3 struct{ xx, yy, zz, xy, xz, yz float64 }

func outer(v V3, scale float64) sym3 {
	return sym3{
		xx: v.X * v.X * scale, yy: v.Y * v.Y * scale, zz: v.Z * v.Z * scale,
		xy: v.X * v.Y * scale, xz: v.X * v.Z * scale, yz: v.Y * v.Z * scale,
	}
}

func (a sym3) add(b sym3) sym3 {
	return sym3{a.xx + b.xx, a.yy + b.yy, a.zz + b.zz, a.xy + b.xy, a.xz + b.xz, a.yz + b.yz}
}

// Quad evaluates vᵀMv.
func (e Ellipse) Quad(v V3) float64 {
	return e.Mxx*v.X*v.X + e.Myy*v.Y*v.Y + e.Mzz*v.Z*v.Z +
		2*e.Mxy*v.X*v.Y + 2*e.Mxz*v.X*v.Z + 2*e.Myz*v.Y*v.Z
}

// Contains reports whether unit vector v lies inside the ellipse.
func (e Ellipse) Contains(v V3) bool {
	if e.Quad(v) > 0 {
		return false
	}
	return e.ADeg >= 90 || v.Dot(e.Center) >= 0
}
