package curvex

import (
	. "github.com/alexozer/curvex/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// Find the closest point on a segment
//
// **params**
// + point to project
// + first point of segment
// + second point of segment
// + first param of segment
// + second param of segment
//
// **returns**
// + the parameter and point of the projection, clamped to the segment
func segmentClosestPoint(pt, segpt0, segpt1 *vec3.T, u0, u1 float64) CurvePoint {
	dif := vec3.Sub(segpt1, segpt0)
	l := dif.Length()

	if l < Epsilon {
		return CurvePoint{u0, *segpt0}
	}

	ray := Ray{Origin: *segpt0, Dir: dif}
	t := ray.ClosestParam(*pt)

	if t <= 0 {
		return CurvePoint{u0, *segpt0}
	} else if t >= 1 {
		return CurvePoint{u1, *segpt1}
	}

	return CurvePoint{u0 + (u1-u0)*t, ray.ClosestPoint(*pt)}
}
