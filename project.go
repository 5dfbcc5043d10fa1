package curvex

import (
	"math"

	. "github.com/alexozer/curvex/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

const projectMaxIterations = 24

// ClosestParam finds the parameter of the point on c closest to p: the closest
// point of a regular sampling polyline, polished by ProjectFrom.
func ClosestParam(c Curve, p vec3.T) float64 {
	minDist := math.MaxFloat64
	var u float64

	min, max := c.Domain()
	pts := regularSampleRange(c, min, max, sampleCount(c))

	for i := 0; i < len(pts)-1; i++ {
		proj := segmentClosestPoint(&p, &pts[i].Pt, &pts[i+1].Pt, pts[i].U, pts[i+1].U)
		d := vec3.Distance(&p, &proj.Pt)

		if d < minDist {
			minDist = d
			u = proj.U
		}
	}

	return ProjectFrom(c, p, u)
}

// ProjectFrom finds a parameter near guess where the curve is closest to p.
//
//	We want to solve:
//
//	 C'(u) * ( C(u) - P ) = 0 = f(u)
//
//	with newton's method, u* = u - f / f', where by the product rule
//
//	 f' = C"(u) * ( C(u) - p ) + C'(u) * C'(u)
//
// The parameter is clamped to the domain of open curves and wrapped on periodic ones.
func ProjectFrom(c Curve, p vec3.T, guess float64) float64 {
	min, max := c.Domain()
	periodic := c.IsPeriodic()

	cu := guess
	if periodic {
		cu = reduce(cu, min, max)
	} else {
		cu = math.Max(min, math.Min(max, cu))
	}

	for i := 0; i < projectMaxIterations; i++ {
		e := c.Derivatives(cu, 2)
		dif := vec3.Sub(&e[0], &p)

		f := vec3.Dot(&e[1], &dif)
		df := vec3.Dot(&e[2], &dif) + vec3.Dot(&e[1], &e[1])
		if df <= Epsilon*Epsilon {
			// not locally convex; take a gradient sized step instead
			df = vec3.Dot(&e[1], &e[1])
			if df <= Epsilon*Epsilon {
				break
			}
		}

		ct := cu - f/df

		// are we outside of the bounds of the curve?
		if periodic {
			ct = reduce(ct, min, max)
		} else {
			ct = math.Max(min, math.Min(max, ct))
		}

		step := periodicDelta(ct-cu, max-min, periodic)
		moved := e[1].Length() * math.Abs(step)
		cu = ct

		if moved <= Epsilon*(1+e[0].Length()) {
			break
		}
	}

	return cu
}

// shortest signed parameter difference, taking the seam into account
func periodicDelta(d, period float64, periodic bool) float64 {
	if !periodic {
		return d
	}

	d = math.Mod(d, period)
	if d > period/2 {
		d -= period
	} else if d < -period/2 {
		d += period
	}
	return d
}

func sampleCount(c Curve) int {
	if crv, ok := c.(*NurbsCurve); ok {
		return imax(len(crv.controlPoints)*crv.degree, 16) + 1
	}
	return 65
}

// Sample a range of a curve at equally spaced parametric intervals
//
// **params**
// + start parameter for sampling
// + end parameter for sampling
// + integer number of samples, at least 2
//
// **returns**
// + parameter - point pairs
func regularSampleRange(c Curve, start, end float64, numSamples int) []CurvePoint {
	if numSamples < 2 {
		numSamples = 2
	}

	samples := make([]CurvePoint, numSamples)
	span := (end - start) / float64(numSamples-1)

	for i := range samples {
		u := start + span*float64(i)
		samples[i] = CurvePoint{u, c.Point(u)}
	}

	return samples
}

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
