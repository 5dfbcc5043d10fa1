// Package curvex holds the curve representations consumed by the intersection
// engine in package intersect: rational B-splines (NurbsCurve), analytic lines and
// ellipse arcs, curves carried on NURBS surfaces, and trimmed views of any of them.
//
// All curves are immutable once built. Parameters of periodic curves are taken
// modulo their period; parameters of open curves outside their domain extrapolate
// and must not be relied upon.
package curvex

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// Curve is the capability the intersection engine works against.
type Curve interface {
	// Point on the curve at parameter u.
	Point(u float64) vec3.T

	// Derivatives returns numDerivs+1 vectors: the point, the first derivative, ...
	Derivatives(u float64, numDerivs int) []vec3.T

	// Domain is the closed parameter range of the curve.
	Domain() (min, max float64)

	IsPeriodic() bool
	IsClosed() bool

	// FitTolerance is the accuracy the curve was built to, 0 for exact curves.
	FitTolerance() float64
}

// Bounder is implemented by curves that can bound a parameter sub-range in closed form.
// The returned box must contain the curve over [min, max].
type Bounder interface {
	Bounds(min, max float64) (lo, hi vec3.T)
}

type CurvePoint struct {
	U  float64
	Pt vec3.T
}

// Period of a periodic curve, 0 otherwise.
func Period(c Curve) float64 {
	if !c.IsPeriodic() {
		return 0
	}
	min, max := c.Domain()
	return max - min
}

// Reduce maps u into the domain of a periodic curve. Parameters of open curves are
// returned unchanged.
func Reduce(c Curve, u float64) float64 {
	if !c.IsPeriodic() {
		return u
	}

	min, max := c.Domain()
	return reduce(u, min, max)
}

func reduce(u, min, max float64) float64 {
	period := max - min
	if u >= min && u <= max {
		return u
	}

	u = min + math.Mod(u-min, period)
	if u < min {
		u += period
	}
	return u
}

// InDomain reports whether u may be evaluated on c: any finite u for periodic curves,
// otherwise u within the domain up to a relative slack.
func InDomain(c Curve, u float64) bool {
	if math.IsNaN(u) || math.IsInf(u, 0) {
		return false
	}
	if c.IsPeriodic() {
		return true
	}

	min, max := c.Domain()
	slack := 1e-9 * math.Max(1, max-min)
	return u >= min-slack && u <= max+slack
}

func closedEnds(c Curve, scale float64) bool {
	min, max := c.Domain()
	p0, p1 := c.Point(min), c.Point(max)

	return vec3.Distance(&p0, &p1) <= math.Max(scale, 1)*1e-9
}

// componentwise extremes of pts
func minMax(pts ...vec3.T) (lo, hi vec3.T) {
	lo, hi = pts[0], pts[0]
	for _, pt := range pts[1:] {
		for i := range pt {
			lo[i] = math.Min(lo[i], pt[i])
			hi[i] = math.Max(hi[i], pt[i])
		}
	}
	return lo, hi
}
