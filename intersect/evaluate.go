package intersect

import (
	"math"

	"github.com/alexozer/curvex"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/r1"
	"github.com/ungerik/go3d/float64/vec3"
)

// evaluator is the only path by which the search evaluates a curve. Parameters of
// periodic curves may be any real number; they are reduced into the domain here.
type evaluator struct {
	curve    curvex.Curve
	domain   r1.Interval
	periodic bool
	closed   bool
	period   float64

	bounds boundsFunc
}

func newEvaluator(c curvex.Curve) *evaluator {
	lo, hi := c.Domain()
	if !(hi > lo) {
		panic(errors.AssertionFailedf("curve domain [%v, %v] is empty", lo, hi))
	}

	this := &evaluator{
		curve:    c,
		domain:   r1.Interval{Lo: lo, Hi: hi},
		periodic: c.IsPeriodic(),
		closed:   c.IsClosed(),
		bounds:   newBoundsFunc(c),
	}
	if this.periodic {
		this.period = hi - lo
	}

	return this
}

// reduce a parameter into the domain. Open curves must already be inside it, up to
// a rounding slack that is clamped away.
func (this *evaluator) reduce(u float64) float64 {
	if this.periodic && !math.IsInf(u, 0) && !math.IsNaN(u) {
		u = this.domain.Lo + math.Mod(u-this.domain.Lo, this.period)
		if u < this.domain.Lo {
			u += this.period
		}
		return u
	}

	if !curvex.InDomain(this.curve, u) {
		panic(errors.AssertionFailedf("parameter %v outside curve domain [%v, %v]", u, this.domain.Lo, this.domain.Hi))
	}
	return this.domain.ClampPoint(u)
}

func (this *evaluator) at(u float64) vec3.T {
	return this.curve.Point(this.reduce(u))
}

func (this *evaluator) ders(u float64, n int) []vec3.T {
	return this.curve.Derivatives(this.reduce(u), n)
}

// clamp a parameter produced by a refinement step: wrapped on periodic curves,
// pinned to the domain otherwise
func (this *evaluator) clamp(u float64) float64 {
	if this.periodic {
		return this.reduce(u)
	}
	return this.domain.ClampPoint(u)
}

// delta is the signed parameter difference b - a, the shorter way round for periodic curves.
func (this *evaluator) delta(a, b float64) float64 {
	d := b - a
	if !this.periodic {
		return d
	}

	d = math.Mod(d, this.period)
	if d > this.period/2 {
		d -= this.period
	} else if d < -this.period/2 {
		d += this.period
	}
	return d
}

// same reports whether a and b name the same parameter within eps, modulo the
// period, and for closed open curves also when they are the two ends of the domain.
func (this *evaluator) same(a, b, eps float64) bool {
	if math.Abs(this.delta(a, b)) <= eps {
		return true
	}

	if this.closed && !this.periodic {
		lo, hi := this.domain.Lo, this.domain.Hi
		atEnd := func(u float64) bool { return math.Abs(u-lo) <= eps || math.Abs(u-hi) <= eps }
		return atEnd(a) && atEnd(b)
	}

	return false
}

// contains reports whether u lies in iv, modulo the period, within eps.
func (this *evaluator) contains(iv r1.Interval, u, eps float64) bool {
	if !this.periodic {
		return iv.Expanded(eps).Contains(u)
	}
	if iv.Length() >= this.period-eps {
		return true
	}

	// shift u to the first representative at or above iv.Lo - eps
	v := iv.Lo - eps + math.Mod(u-(iv.Lo-eps), this.period)
	if v < iv.Lo-eps {
		v += this.period
	}
	return v <= iv.Hi+eps
}

// canonical splits an interval that may run past the seam of a periodic curve into
// sub-ranges of the domain.
func (this *evaluator) canonical(iv r1.Interval) []r1.Interval {
	if !this.periodic {
		return []r1.Interval{this.domain.Intersection(iv)}
	}
	return wrapRanges(iv, this.domain)
}

func wrapRanges(iv, domain r1.Interval) []r1.Interval {
	period := domain.Length()
	if iv.Length() >= period {
		return []r1.Interval{domain}
	}

	shift := math.Floor((iv.Lo-domain.Lo)/period) * period
	lo, hi := iv.Lo-shift, iv.Hi-shift

	var res []r1.Interval
	for i := 0; i < 3 && hi > lo; i++ {
		res = append(res, r1.Interval{Lo: lo, Hi: math.Min(hi, domain.Hi)})
		lo, hi = domain.Lo, hi-period
	}
	return res
}

// evaluator is a curvex.Curve over the guarded evaluation path.
func (this *evaluator) Point(u float64) vec3.T { return this.at(u) }
func (this *evaluator) Derivatives(u float64, n int) []vec3.T { return this.ders(u, n) }
func (this *evaluator) Domain() (min, max float64) { return this.domain.Lo, this.domain.Hi }
func (this *evaluator) IsPeriodic() bool { return this.periodic }
func (this *evaluator) IsClosed() bool { return this.closed }
func (this *evaluator) FitTolerance() float64 { return this.curve.FitTolerance() }
