package intersect

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// tangents shorter than this fraction of the scene are treated as vanishing
const vanishing = 1e-12

// direction of a curve at a point: the tangent, or the second derivative where the
// tangent vanishes
func direction(ders []vec3.T, scale float64) vec3.T {
	if ders[1].Length() > vanishing*scale {
		return ders[1]
	}
	return ders[2]
}

// curvature |C' x C''| / |C'|^3, 0 where the tangent vanishes
func curvature(ders []vec3.T, scale float64) float64 {
	speed := ders[1].Length()
	if speed <= vanishing*scale {
		return 0
	}

	cross := vec3.Cross(&ders[1], &ders[2])
	return cross.Length() / (speed * speed * speed)
}

// angle in [0, pi/2] between the lines along a and b
func lineAngle(a, b *vec3.T) float64 {
	cross := vec3.Cross(a, b)
	return math.Atan2(cross.Length(), math.Abs(vec3.Dot(a, b)))
}

// classify a converged root. Borderline angles are tangential.
func (s *search) classify(rt root) Relation {
	if rt.minimized {
		return Tangential
	}

	d0, d1 := s.e0.ders(rt.u0, 2), s.e1.ders(rt.u1, 2)
	t0, t1 := direction(d0, s.diag), direction(d1, s.diag)

	angle := lineAngle(&t0, &t1)
	if angle <= s.angTol {
		return Tangential
	}

	// two crossings this shallow enclose a gap no wider than the tolerance
	kappa := curvature(d0, s.diag) + curvature(d1, s.diag)
	if angle <= math.Sqrt(2*s.tol*kappa) {
		return Tangential
	}

	return Transversal
}
