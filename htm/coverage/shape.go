package coverage

import (
	"github.com/Caltech-IPAC/go-tinyhtm/htm"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
)

// Shape is any region that can be tested against a point and classified
// against an HTM triangle. RangeCover only depends on this interface, not
// on the concrete shape types.
type Shape interface {
	Contains(v region.V3) bool
	Classify(tri htm.Tri) Code
}

// CircleShape adapts region.Circle to Shape.
type CircleShape struct {
	C region.Circle
}

func (s CircleShape) Contains(v region.V3) bool   { return s.C.Contains(v) }
func (s CircleShape) Classify(tri htm.Tri) Code   { return Circle(tri, s.C.Center, s.C.Chord2()) }

// EllipseShape adapts region.Ellipse to Shape.
type EllipseShape struct {
	E region.Ellipse
}

func (s EllipseShape) Contains(v region.V3) bool { return s.E.Contains(v) }
func (s EllipseShape) Classify(tri htm.Tri) Code { return Ellipse(tri, s.E) }

// PolygonShape adapts region.ConvexPoly to Shape.
type PolygonShape struct {
	P region.ConvexPoly
}

func (s PolygonShape) Contains(v region.V3) bool { return s.P.Contains(v) }
func (s PolygonShape) Classify(tri htm.Tri) Code { return Polygon(tri, s.P) }
