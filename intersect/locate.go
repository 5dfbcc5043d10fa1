package intersect

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/ungerik/go3d/float64/vec3"
)

type cellState int

const (
	active cellState = iota
	pruned
	seeded
)

// interval is a sub-range of one curve with its box, stored in the locator's arena.
type interval struct {
	curve int
	span  r1.Interval
	box   BoundingBox
}

// cell is a candidate pair of intervals, referenced by arena index.
type cell struct {
	iv    [2]int32
	depth int

	// self mode: both intervals are the same range
	diagonal bool
}

type locator struct {
	s     *search
	arena []interval
	work  []cell
}

const (
	monotoneSamples = 9

	// smallest cosine between the mean direction and any sampled tangent for a
	// range to count as monotone
	monotoneCos = 0.2

	// parameter widths within which a self match counts as trivial
	selfWidths = 64

	// sampled cones are widened by this factor before testing separation
	coneMargin = 2
)

// locate runs the subdivision search, refining every seed as soon as it is reached
// so that traced coincident spans can prune the cells still waiting.
func (s *search) locate() {
	l := &locator{s: s}

	if s.self {
		i := l.add(0, s.e0.domain)
		l.work = append(l.work, cell{iv: [2]int32{i, i}, diagonal: true})
	} else {
		for _, a := range s.initialIntervals(s.e0) {
			for _, b := range s.initialIntervals(s.e1) {
				l.work = append(l.work, cell{iv: [2]int32{l.add(0, a), l.add(1, b)}})
			}
		}
	}

	for len(l.work) > 0 {
		c := l.work[len(l.work)-1]
		l.work = l.work[:len(l.work)-1]
		s.stats.Cells++

		switch l.state(c) {
		case pruned:
			s.stats.Pruned++
		case seeded:
			s.seed(l.arena[c.iv[0]].span, l.arena[c.iv[1]].span)
		case active:
			l.split(c)
		}
	}
}

func (l *locator) add(curve int, span r1.Interval) int32 {
	l.arena = append(l.arena, interval{curve, span, l.s.evaluator(curve).box(span)})
	return int32(len(l.arena) - 1)
}

func (l *locator) state(c cell) cellState {
	s := l.s
	i0, i1 := &l.arena[c.iv[0]], &l.arena[c.iv[1]]

	overlap := i0.box.Intersect(&i1.box, s.tol)
	if overlap == nil {
		return pruned
	}

	// roots of the cell lie in the overlap of its boxes
	if box := s.searchBox; box != nil && !box.Intersects(overlap, s.tol) {
		return pruned
	}

	if s.insideSpan(i0.span, i1.span) {
		return pruned
	}

	if s.self {
		if c.diagonal {
			if s.monotone(i0.span) {
				return pruned
			}
		} else if ranges, ok := s.touching(i0.span, i1.span); ok && s.monotone(ranges...) {
			return pruned
		}
	}

	if c.depth >= s.maxDepth {
		s.stats.DepthLimited++
		return seeded
	}

	// a cell holding more than one root is only seeded once it is below resolution
	if i0.span.Length() <= s.width[0] && i1.span.Length() <= s.width[1] {
		return seeded
	}
	small := seedTolerances * s.tol
	if i0.box.Diagonal() <= small && i1.box.Diagonal() <= small {
		return seeded
	}

	if i0.box.Diagonal() <= s.seedSize && i1.box.Diagonal() <= s.seedSize && s.separated(i0, i1) {
		return seeded
	}

	return active
}

// split bisects the interval with the longer box side of the cell, or both intervals of
// a diagonal cell. Children are pushed so that lower parameters pop first.
func (l *locator) split(c cell) {
	i0, i1 := l.arena[c.iv[0]], l.arena[c.iv[1]]
	depth := c.depth + 1

	if c.diagonal {
		lo, hi := l.bisect(i0)

		// the [hi] x [lo] child mirrors [lo] x [hi]
		l.work = append(l.work,
			cell{iv: [2]int32{hi, hi}, depth: depth, diagonal: true},
			cell{iv: [2]int32{lo, hi}, depth: depth},
			cell{iv: [2]int32{lo, lo}, depth: depth, diagonal: true},
		)
		return
	}

	x0, x1 := extent(&i0.box), extent(&i1.box)
	splitFirst := x0 > x1
	if x0 == x1 {
		splitFirst = i0.span.Length()/l.s.width[0] >= i1.span.Length()/l.s.width[1]
	}
	if i0.span.Length() <= l.s.width[0] {
		splitFirst = false
	} else if i1.span.Length() <= l.s.width[1] {
		splitFirst = true
	}

	if splitFirst {
		lo, hi := l.bisect(i0)
		l.work = append(l.work,
			cell{iv: [2]int32{hi, c.iv[1]}, depth: depth},
			cell{iv: [2]int32{lo, c.iv[1]}, depth: depth},
		)
	} else {
		lo, hi := l.bisect(i1)
		l.work = append(l.work,
			cell{iv: [2]int32{c.iv[0], hi}, depth: depth},
			cell{iv: [2]int32{c.iv[0], lo}, depth: depth},
		)
	}
}

// length of the longest side of a box
func extent(bb *BoundingBox) float64 {
	return bb.AxisLength(bb.LongestAxis())
}

func (l *locator) bisect(iv interval) (lo, hi int32) {
	mid := iv.span.Center()
	lo = l.add(iv.curve, r1.Interval{Lo: iv.span.Lo, Hi: mid})
	hi = l.add(iv.curve, r1.Interval{Lo: mid, Hi: iv.span.Hi})
	return lo, hi
}

// touching reports whether two ranges of the curve searched against itself overlap
// or meet, including across the seam of a closed curve, and returns them in curve order.
func (s *search) touching(a, b r1.Interval) ([]r1.Interval, bool) {
	eps := s.width[0]

	if a.Expanded(eps).Intersects(b) {
		return []r1.Interval{a.Union(b)}, true
	}

	if !s.e0.closed {
		return nil, false
	}

	lo, hi := s.e0.domain.Lo, s.e0.domain.Hi
	switch {
	case a.Lo <= lo+eps && b.Hi >= hi-eps:
		return []r1.Interval{b, a}, true
	case b.Lo <= lo+eps && a.Hi >= hi-eps:
		return []r1.Interval{a, b}, true
	}
	return nil, false
}

// monotone reports whether the curve runs strictly forward along one direction over
// the ranges: all sampled unit tangents lie within a cone narrower than a half space
// around their mean. A curve monotone over a range cannot meet itself there.
func (s *search) monotone(ranges ...r1.Interval) bool {
	_, cos, ok := tangentCone(s.e0, ranges...)
	return ok && cos >= monotoneCos
}

// separated reports whether the tangent cones of the two intervals share no line.
// Every chord of a curve lies in the cone of its tangents, so two separated intervals
// can meet at most once.
func (s *search) separated(i0, i1 *interval) bool {
	axis0, cos0, ok0 := tangentCone(s.evaluator(i0.curve), i0.span)
	axis1, cos1, ok1 := tangentCone(s.evaluator(i1.curve), i1.span)
	if !ok0 || !ok1 || cos0 < monotoneCos || cos1 < monotoneCos {
		return false
	}

	spread := math.Acos(math.Min(cos0, 1)) + math.Acos(math.Min(cos1, 1))
	return lineAngle(&axis0, &axis1) > coneMargin*spread+s.angTol
}

// tangentCone samples the unit tangents over the ranges and returns their mean
// direction with the smallest cosine between it and any sample. It fails where the
// tangent vanishes or the samples cancel out.
func tangentCone(e *evaluator, ranges ...r1.Interval) (axis vec3.T, cos float64, ok bool) {
	tangents := make([]vec3.T, 0, monotoneSamples*len(ranges))

	for _, iv := range ranges {
		h := iv.Length() / (monotoneSamples - 1)
		for i := 0; i < monotoneSamples; i++ {
			tan := e.ders(iv.Lo+h*float64(i), 1)[1]
			l := tan.Length()
			if l <= 1e-300 || math.IsNaN(l) {
				return axis, 0, false
			}
			tangents = append(tangents, tan.Scaled(1/l))
		}
	}

	for i := range tangents {
		axis.Add(&tangents[i])
	}
	if axis.Length() <= 1e-12 {
		return axis, 0, false
	}
	axis.Normalize()

	cos = 1
	for i := range tangents {
		cos = math.Min(cos, vec3.Dot(&axis, &tangents[i]))
	}
	return axis, cos, true
}

// trivialSelf reports whether a root of the curve against itself is the identical
// parameter match rather than a self crossing: the parameters agree modulo the
// period or are the two ends of a closed curve, or the curve is monotone between them.
func (s *search) trivialSelf(u0, u1 float64) bool {
	e := s.e0
	if e.same(u0, u1, selfWidths*s.width[0]) {
		return true
	}

	a, b := math.Min(u0, u1), math.Max(u0, u1)
	if e.periodic {
		d := e.delta(u0, u1)
		a = math.Min(u0, u0+d)
		b = math.Max(u0, u0+d)
	}
	return s.monotone(r1.Interval{Lo: a, Hi: b})
}
