package region

// Circle is a spherical cap: all unit vectors within angular RadiusDeg of
// Center.
type Circle struct {
	Center    V3      // unit vector
	RadiusDeg float64 // angular radius in degrees, [0, 180]
	chord2    float64 // cached 4*sin²(r/2), compared against squared chord distance
}

// NewCircle builds a Circle, caching its squared-chord-distance threshold.
func NewCircle(center V3, radiusDeg float64) Circle {
	rad := radiusDeg * degToRad
	return Circle{Center: center, RadiusDeg: radiusDeg, chord2: ChordLength2(rad)}
}

// Chord2 returns the cached squared chord-distance radius, 4*sin²(r/2).
func (c Circle) Chord2() float64 { return c.chord2 }

// Contains reports whether unit vector v lies within the cap.
func (c Circle) Contains(v V3) bool {
	return v.Dist2(c.Center) <= c.chord2
}

const degToRad = 3.141592653589793 / 180
