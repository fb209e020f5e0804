package main

import (
	"fmt"
	"strconv"

	"github.com/Caltech-IPAC/go-tinyhtm/htm/coverage"
	"github.com/Caltech-IPAC/go-tinyhtm/htm/region"
)

// parseShape builds a coverage.Shape from a kind tag and its positional
// parameters. Parameters are given as raw unit-vector components rather
// than the catalog coordinate systems (ra/dec, etc.) a real ingestion
// front-end would accept, since converting those is an out-of-scope
// concern of this library.
//
//	circle:  x y z radiusDeg
//	ellipse: x y z aDeg bDeg paDeg
//	hull:    x1 y1 z1 x2 y2 z2 ... (>= 3 vertices)
func parseShape(kind string, params []string) (coverage.Shape, error) {
	nums, err := parseFloats(params)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "circle":
		if len(nums) != 4 {
			return nil, fmt.Errorf("circle wants 4 params (x y z radiusDeg), got %d", len(nums))
		}
		c := region.V3{X: nums[0], Y: nums[1], Z: nums[2]}
		return coverage.CircleShape{C: region.NewCircle(c, nums[3])}, nil
	case "ellipse":
		if len(nums) != 6 {
			return nil, fmt.Errorf("ellipse wants 6 params (x y z aDeg bDeg paDeg), got %d", len(nums))
		}
		c := region.V3{X: nums[0], Y: nums[1], Z: nums[2]}
		e, ok := region.NewEllipse(c, nums[3], nums[4], nums[5])
		if !ok {
			return nil, fmt.Errorf("invalid ellipse parameters")
		}
		return coverage.EllipseShape{E: e}, nil
	case "hull":
		if len(nums) < 9 || len(nums)%3 != 0 {
			return nil, fmt.Errorf("hull wants 3*N params (x y z)*N with N >= 3, got %d", len(nums))
		}
		verts := make([]region.V3, len(nums)/3)
		for i := range verts {
			verts[i] = region.V3{X: nums[3*i], Y: nums[3*i+1], Z: nums[3*i+2]}
		}
		p, ok := region.FromHull(verts)
		if !ok {
			return nil, fmt.Errorf("points are not hemispherical; cannot build a hull")
		}
		return coverage.PolygonShape{P: p}, nil
	default:
		return nil, fmt.Errorf("unknown shape kind %q (want circle, ellipse, or hull)", kind)
	}
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %q is not a number", a)
		}
		out[i] = v
	}
	return out, nil
}
