package intersect

import (
	"math"

	"github.com/alexozer/curvex/internal"

	"github.com/golang/geo/r1"
	"github.com/ungerik/go3d/float64/vec3"
)

type refineResult int

const (
	converged refineResult = iota

	// the iteration did not converge but met nearly parallel tangents on the way
	parallel

	failed
)

// root is a parameter pair produced by the refiner.
type root struct {
	u0, u1   float64
	pt       vec3.T
	residual float64

	// found by minimising the distance rather than by solving for zero
	minimized bool
}

const (
	// iterate until the residual is this fraction of the tolerance
	refineTarget = 1e-3

	// give up once the residual grows this much over the best one seen
	divergeFactor = 1e4
)

// start picks the closest pair among the ends and midpoints of both intervals.
func (s *search) start(a, b r1.Interval) (u0, u1 float64) {
	best := math.MaxFloat64
	for _, x := range [3]float64{a.Lo, a.Center(), a.Hi} {
		p := s.e0.at(x)
		for _, y := range [3]float64{b.Lo, b.Center(), b.Hi} {
			q := s.e1.at(y)
			if d := vec3.SquareDistance(&p, &q); d < best {
				best, u0, u1 = d, x, y
			}
		}
	}
	return u0, u1
}

// refine runs Newton's method on C0(u0) - C1(u1) = 0 from the best pair of the seed.
// Each step solves the normal equations of the linearization
//
//	| T0.T0   -T0.T1 | |du0|   | -T0.r |
//	| -T0.T1   T1.T1 | |du1| = |  T1.r |
//
// with r = C0 - C1 and Ti the tangents, which is the exact solve for planar curves
// and the least squares step for spatial ones.
func (s *search) refine(a, b r1.Interval) (root, refineResult) {
	u0, u1 := s.start(a, b)

	best := root{residual: math.MaxFloat64}
	sawParallel := false

	for it := 0; it < s.maxIterations; it++ {
		d0, d1 := s.e0.ders(u0, 1), s.e1.ders(u1, 1)
		r := vec3.Sub(&d0[0], &d1[0])
		res := r.Length()

		if res < best.residual {
			best = root{u0: u0, u1: u1, pt: midpoint(&d0[0], &d1[0]), residual: res}
		} else if res > divergeFactor*best.residual && best.residual > s.tol {
			break
		}

		if res <= refineTarget*s.tol {
			break
		}

		t0, t1 := d0[1], d1[1]
		if sine(&t0, &t1) <= s.nearParallel {
			sawParallel = true
		}

		m := internal.Mat2{
			A: vec3.Dot(&t0, &t0), B: -vec3.Dot(&t0, &t1),
			C: -vec3.Dot(&t0, &t1), D: vec3.Dot(&t1, &t1),
		}
		du0, du1, ok := m.Solve(-vec3.Dot(&t0, &r), vec3.Dot(&t1, &r))
		if !ok {
			sawParallel = true
			break
		}

		n0, n1 := s.e0.clamp(u0+du0), s.e1.clamp(u1+du1)
		if math.Abs(s.e0.delta(u0, n0)) <= s.width[0]*1e-6 && math.Abs(s.e1.delta(u1, n1)) <= s.width[1]*1e-6 {
			u0, u1 = n0, n1
			break
		}
		u0, u1 = n0, n1
	}

	// the last step may not have been evaluated
	s.polish(&best, u0, u1)

	switch {
	case best.residual <= s.tol:
		return best, converged
	case sawParallel:
		return best, parallel
	}
	return best, failed
}

func (s *search) polish(best *root, u0, u1 float64) {
	p, q := s.e0.at(u0), s.e1.at(u1)
	if res := vec3.Distance(&p, &q); res < best.residual {
		*best = root{u0: u0, u1: u1, pt: midpoint(&p, &q), residual: res}
	}
}

// minimize runs a damped Newton iteration on f = |C0(u0) - C1(u1)|^2 / 2, for curves
// that touch within tolerance without crossing, where C0 - C1 = 0 may have no solution.
//
//	grad f = ( T0.r, -T1.r )
//	H      = | T0.T0 + A0.r   -T0.T1       |
//	         | -T0.T1          T1.T1 - A1.r |
//
// with Ai the second derivatives. Steps that do not decrease f are halved.
func (s *search) minimize(from root) (root, bool) {
	u0, u1 := from.u0, from.u1
	best := from

	f := func(u0, u1 float64) (float64, vec3.T, vec3.T) {
		p, q := s.e0.at(u0), s.e1.at(u1)
		return vec3.SquareDistance(&p, &q) / 2, p, q
	}

	for it := 0; it < s.maxIterations; it++ {
		d0, d1 := s.e0.ders(u0, 2), s.e1.ders(u1, 2)
		r := vec3.Sub(&d0[0], &d1[0])
		fx := vec3.Dot(&r, &r) / 2

		g0, g1 := vec3.Dot(&d0[1], &r), -vec3.Dot(&d1[1], &r)
		m := internal.Mat2{
			A: vec3.Dot(&d0[1], &d0[1]) + vec3.Dot(&d0[2], &r), B: -vec3.Dot(&d0[1], &d1[1]),
			C: -vec3.Dot(&d0[1], &d1[1]), D: vec3.Dot(&d1[1], &d1[1]) - vec3.Dot(&d1[2], &r),
		}

		du0, du1, ok := m.Solve(-g0, -g1)
		if !ok || m.A <= 0 || m.Det() <= 0 {
			// not locally convex; fall back to a scaled gradient step
			du0, du1 = -g0/math.Max(m.A, internal.Epsilon), -g1/math.Max(m.D, internal.Epsilon)
		}

		improved := false
		for h := 0; h < 16; h++ {
			n0, n1 := s.e0.clamp(u0+du0), s.e1.clamp(u1+du1)
			fn, p, q := f(n0, n1)

			if fn < fx {
				u0, u1, improved = n0, n1, true
				if res := math.Sqrt(2 * fn); res < best.residual {
					best = root{u0: n0, u1: n1, pt: midpoint(&p, &q), residual: res}
				}
				break
			}
			du0, du1 = du0/2, du1/2
		}

		if !improved || math.Abs(du0) <= s.width[0]*1e-6 && math.Abs(du1) <= s.width[1]*1e-6 {
			break
		}
	}

	best.minimized = true
	return best, best.residual <= s.tol
}

func midpoint(p, q *vec3.T) vec3.T {
	return vec3.Interpolate(p, q, 0.5)
}

// sine of the angle between two vectors, 0 if either is zero
func sine(a, b *vec3.T) float64 {
	la, lb := a.Length(), b.Length()
	if la == 0 || lb == 0 {
		return 0
	}

	cross := vec3.Cross(a, b)
	return cross.Length() / (la * lb)
}
