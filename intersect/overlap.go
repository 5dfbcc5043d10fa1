package intersect

import (
	"math"

	"github.com/alexozer/curvex"

	"github.com/golang/geo/r1"
	"github.com/ungerik/go3d/float64/vec3"
)

// span is a traced range over which the two curves coincide. Both ranges are
// unwrapped: on periodic curves they may run past the seam.
type span struct {
	u, t       r1.Interval
	start, end record

	// curve 1 runs backwards while curve 0 runs forwards
	reversed bool
}

const (
	// march steps per seed size of arc length
	marchStepSeeds = 1

	// cap on march steps in one direction
	marchMaxSteps = 1 << 16

	boundaryBisections = 60

	// interior samples of the flatness check, how many must stay within
	// flatFraction of the tolerance, and the minimum span length in tolerances
	flatSamples    = 9
	flatRequired   = 7
	flatFraction   = 0.25
	spanTolerances = 10

	// looser than the refiner's: the tangents of coincident curves only need to
	// agree as well as a tolerance-sized offset allows
	marchParallelFactor = 4
)

// traceSpan probes whether the curves coincide around the root by marching along
// curve 0 in both directions, projecting onto curve 1, until the curves part or a
// curve ends.
func (s *search) traceSpan(rt root) (span, bool) {
	if !s.matches(rt.u0, rt.u1) {
		return span{}, false
	}

	t0, t1 := s.e0.ders(rt.u0, 1)[1], s.e1.ders(rt.u1, 1)[1]
	orient := 1.0
	if vec3.Dot(&t0, &t1) < 0 {
		orient = -1
	}

	hiU, hiT, fullHi := s.march(rt.u0, rt.u1, 1, orient)
	loU, loT, fullLo := s.march(rt.u0, rt.u1, -1, orient)

	var sp span
	if fullHi || fullLo {
		// the whole loop of curve 0 overlaps curve 1
		lo, hi := s.e0.domain.Lo, s.e0.domain.Hi
		loT = s.project(s.e1, s.e0.at(lo), rt.u1+orient*s.paramRatio(rt.u0, rt.u1)*s.e0.delta(rt.u0, lo))
		hiT = loT + orient*s.e1.period
		if !s.e1.periodic {
			hiT = s.project(s.e1, s.e0.at(hi), loT)
		}
		sp.u = r1.Interval{Lo: lo, Hi: hi}
		sp.start = s.boundary(lo, loT, SpanStart, false)
		sp.end = s.boundary(hi, hiT, SpanEnd, false)
	} else {
		sp.u = r1.Interval{Lo: loU, Hi: hiU}
		sp.start = s.boundary(loU, loT, SpanStart, true)
		sp.end = s.boundary(hiU, hiT, SpanEnd, true)
	}
	sp.t = r1.Interval{Lo: math.Min(loT, hiT), Hi: math.Max(loT, hiT)}
	sp.reversed = orient < 0

	if !s.flat(sp.u, loT, hiT) {
		return span{}, false
	}
	return sp, true
}

// matches reports whether curve 0 at u and curve 1 at t are within tolerance in
// position and parallel within the march tolerance.
func (s *search) matches(u, t float64) bool {
	d0, d1 := s.e0.ders(u, 1), s.e1.ders(t, 1)
	if vec3.Distance(&d0[0], &d1[0]) > s.tol {
		return false
	}

	t0, t1 := direction(s.e0.ders(u, 2), s.diag), direction(s.e1.ders(t, 2), s.diag)
	return sine(&t0, &t1) <= marchParallelFactor*s.nearParallel
}

// project p onto a curve near guess, keeping the result on the same sheet of the
// unwrapped parameter as guess. When the local projection stays further than the
// tolerance from p, the closest point over the whole curve is taken if it is nearer.
func (s *search) project(e *evaluator, p vec3.T, guess float64) float64 {
	proj := curvex.ProjectFrom(e.curve, p, e.clamp(guess))

	q := e.at(proj)
	if d := vec3.Distance(&p, &q); d > s.tol {
		global := curvex.ClosestParam(e.curve, p)
		if g := e.at(global); vec3.Distance(&p, &g) < d {
			proj = global
		}
	}

	if !e.periodic {
		return proj
	}
	return guess + e.delta(e.reduce(guess), proj)
}

// ratio of curve 0 to curve 1 parameter speed at a matched pair
func (s *search) paramRatio(u, t float64) float64 {
	v0, v1 := s.e0.ders(u, 1)[1].Length(), s.e1.ders(t, 1)[1].Length()
	if v1 == 0 {
		return 0
	}
	return v0 / v1
}

// march from a matched pair in direction dir along curve 0. It returns the last
// matched pair, or full when curve 0 was traversed through a whole period.
func (s *search) march(u, t, dir, orient float64) (bu, bt float64, full bool) {
	e0, e1 := s.e0, s.e1
	ds := marchStepSeeds * s.seedSize

	var traveled float64
	for step := 0; step < marchMaxSteps; step++ {
		speed := e0.ders(u, 1)[1].Length()
		h := e0.domain.Length() / 1024
		if speed > 0 {
			h = math.Min(h, ds/speed)
		}

		next := u + dir*h
		atEnd := false
		if !e0.periodic {
			if dir > 0 && next >= e0.domain.Hi {
				next, atEnd = e0.domain.Hi, true
			} else if dir < 0 && next <= e0.domain.Lo {
				next, atEnd = e0.domain.Lo, true
			}
		} else if traveled+h >= e0.period {
			return u, t, true
		}

		guess := t + dir*orient*math.Abs(next-u)*s.paramRatio(u, t)
		nt := s.project(e1, e0.at(next), guess)

		if s.matches(next, nt) && !s.pinned(nt, guess) {
			traveled += math.Abs(next - u)
			u, t = next, nt

			if atEnd {
				return u, t, false
			}
			continue
		}

		// curve 1 ends within the step: the boundary is its endpoint
		if end, ok := s.endOf(e1, guess); ok {
			ue := s.project(e0, e1.at(end), u)
			if s.matches(ue, end) {
				return ue, end, false
			}
		}

		bu, bt = s.bisectBoundary(u, t, next, orient)
		return bu, bt, false
	}

	return u, t, false
}

// pinned reports whether the projection onto curve 1 was stopped by the end of
// its domain short of where the march expected it.
func (s *search) pinned(t, guess float64) bool {
	_, ok := s.endOf(s.e1, guess)
	return ok && math.Abs(t-guess) > s.width[1]
}

// endOf returns the end of an open curve's domain that u lies beyond, if any.
func (s *search) endOf(e *evaluator, u float64) (float64, bool) {
	if e.periodic {
		return 0, false
	}
	switch {
	case u <= e.domain.Lo:
		return e.domain.Lo, true
	case u >= e.domain.Hi:
		return e.domain.Hi, true
	}
	return 0, false
}

// bisectBoundary narrows the parting point between a matched parameter and an
// unmatched one on curve 0.
func (s *search) bisectBoundary(good, goodT, bad, orient float64) (float64, float64) {
	for i := 0; i < boundaryBisections && math.Abs(bad-good) > s.width[0]*1e-3; i++ {
		mid := (good + bad) / 2
		guess := goodT + orient*(mid-good)*s.paramRatio(good, goodT)
		nt := s.project(s.e1, s.e0.at(mid), guess)

		if s.matches(mid, nt) {
			good, goodT = mid, nt
		} else {
			bad = mid
		}
	}

	return good, goodT
}

// flat accepts a traced range as an overlap when it is long enough and its interior
// stays well inside the tolerance, which tells an overlap from a tangential touch.
func (s *search) flat(u r1.Interval, loT, hiT float64) bool {
	if math.Abs(curvex.ArcLength(s.e0, u.Lo, u.Hi)) < spanTolerances*s.tol {
		return false
	}

	var inside int
	for i := 1; i <= flatSamples; i++ {
		f := float64(i) / (flatSamples + 1)
		uu := u.Lo + f*u.Length()
		p := s.e0.at(uu)
		q := s.e1.at(s.project(s.e1, p, loT+f*(hiT-loT)))

		if vec3.Distance(&p, &q) <= flatFraction*s.tol {
			inside++
		}
	}

	return inside >= flatRequired
}

func (s *search) boundary(u, t float64, bound Bound, reduce bool) record {
	p, q := s.e0.at(u), s.e1.at(t)
	if reduce {
		u = s.e0.reduce(u)
	}

	return record{
		u0:       u,
		u1:       s.e1.reduce(t),
		pt:       midpoint(&p, &q),
		residual: vec3.Distance(&p, &q),
		relation: CoincidentBoundary,
		bound:    bound,
	}
}

// insideSpan reports whether a candidate pair lies within a traced span.
func (s *search) insideSpan(a, b r1.Interval) bool {
	for i := range s.spans {
		sp := &s.spans[i]
		if s.coversInterval(s.e0, sp.u, a, s.width[0]) && s.coversInterval(s.e1, sp.t, b, s.width[1]) {
			return true
		}
	}
	return false
}

func (s *search) coversInterval(e *evaluator, outer, inner r1.Interval, eps float64) bool {
	if inner.Length() > outer.Length()+eps {
		return false
	}
	return e.contains(outer, inner.Lo, eps) && e.contains(outer, inner.Hi, eps) && e.contains(outer, inner.Center(), eps)
}

// inSpan reports whether a root lies within or at the boundary of a traced span.
func (s *search) inSpan(u0, u1 float64, pt vec3.T) bool {
	eps0, eps1 := selfWidths*s.width[0], selfWidths*s.width[1]

	for i := range s.spans {
		sp := &s.spans[i]
		if s.e0.contains(sp.u, u0, eps0) && s.e1.contains(sp.t, u1, eps1) {
			return true
		}
		if vec3.Distance(&pt, &sp.start.pt) <= s.tol || vec3.Distance(&pt, &sp.end.pt) <= s.tol {
			return true
		}
	}
	return false
}

// addSpan keeps a traced span. Of spans that overlap on both curves only the longest
// is kept, since they are traces of one overlap from different seeds.
func (s *search) addSpan(sp span) {
	kept := s.spans[:0]
	for _, old := range s.spans {
		if !s.overlapping(&old, &sp) {
			kept = append(kept, old)
		} else if old.u.Length() > sp.u.Length() {
			sp = old
		}
	}
	s.spans = append(kept, sp)
	s.stats.Spans++
}

func (s *search) overlapping(a, b *span) bool {
	return rangesOverlap(s.e0, a.u, b.u, s.width[0]) && rangesOverlap(s.e1, a.t, b.t, s.width[1])
}

func rangesOverlap(e *evaluator, a, b r1.Interval, eps float64) bool {
	return e.contains(a, b.Lo, eps) || e.contains(a, b.Hi, eps) || e.contains(b, a.Lo, eps) || e.contains(b, a.Hi, eps)
}
