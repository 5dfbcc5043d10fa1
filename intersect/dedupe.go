package intersect

import (
	"math"
	"slices"

	"github.com/golang/geo/r1"
	"github.com/ungerik/go3d/float64/vec3"
)

// record is an intersection before merging and linking.
type record struct {
	u0, u1   float64
	pt       vec3.T
	residual float64
	relation Relation
	bound    Bound
}

// mirrored swaps the parameters of a self intersection record
func (this record) mirrored() record {
	this.u0, this.u1 = this.u1, this.u0
	return this
}

// parameter widths within which two records name the same parameter
const mergeWidths = 64

// seed refines one candidate pair and files the outcome as a point or a span.
func (s *search) seed(a, b r1.Interval) {
	s.stats.Seeds++

	rt, res := s.refine(a, b)
	if s.self && s.trivialSelf(rt.u0, rt.u1) {
		s.stats.Rejected++
		return
	}

	if res == parallel {
		if s.inSpan(rt.u0, rt.u1, rt.pt) {
			return
		}

		if sp, ok := s.traceSpan(rt); ok {
			s.addSpan(sp)
			return
		}

		var ok bool
		if rt, ok = s.minimize(rt); ok {
			s.stats.Minimized++
			res = converged
		}
	}

	if res != converged {
		s.stats.Failed++
		return
	}

	// minimisation may have slid onto the trivial match
	if s.self && rt.minimized && s.trivialSelf(rt.u0, rt.u1) {
		s.stats.Rejected++
		return
	}

	if s.inSpan(rt.u0, rt.u1, rt.pt) {
		return
	}

	rel := s.classify(rt)
	if rel == Tangential {
		if sp, ok := s.traceSpan(rt); ok {
			s.addSpan(sp)
			return
		}
	}

	s.stats.Converged++
	rec := record{
		u0:       s.e0.reduce(rt.u0),
		u1:       s.e1.reduce(rt.u1),
		pt:       rt.pt,
		residual: rt.residual,
		relation: rel,
	}

	// self matches are kept in one ordering; build adds the mirror
	if s.self && rec.u0 > rec.u1 {
		rec.u0, rec.u1 = rec.u1, rec.u0
	}
	s.points = append(s.points, rec)
}

// build merges duplicate records, drops points on traced spans, applies the search
// box, and links the records in order of their parameter on curve 0.
func (s *search) build() *Intersection {
	points := s.merge(s.points)

	var all []record
	for _, rec := range points {
		if !s.inSpan(rec.u0, rec.u1, rec.pt) {
			all = append(all, rec)
		}
	}
	if s.self {
		for _, rec := range all[:len(all):len(all)] {
			all = append(all, rec.mirrored())
		}
	}

	for _, sp := range s.spans {
		all = append(all, sp.start, sp.end)

		if s.self {
			// the mirror runs along the range on curve 1, which starts at the end of a
			// reversed span
			start, end := sp.start.mirrored(), sp.end.mirrored()
			if sp.reversed {
				start.bound, end.bound = SpanEnd, SpanStart
			}
			all = append(all, start, end)
		}
	}

	if box := s.searchBox; box != nil {
		all = slices.DeleteFunc(all, func(rec record) bool {
			return !box.Contains(&rec.pt, s.tol)
		})
	}

	slices.SortStableFunc(all, compareRecords)

	var head *Intersection
	for i := len(all) - 1; i >= 0; i-- {
		rec := &all[i]
		head = &Intersection{
			Point:    rec.pt,
			U0:       rec.u0,
			U1:       rec.u1,
			Relation: rec.relation,
			Bound:    rec.bound,
			Residual: rec.residual,
			Next:     head,
		}
	}

	return head
}

func compareRecords(a, b record) int {
	switch {
	case a.u0 != b.u0:
		return cmpFloat(a.u0, b.u0)
	case a.u1 != b.u1:
		return cmpFloat(a.u1, b.u1)
	}
	return int(a.bound) - int(b.bound)
}

func cmpFloat(a, b float64) int {
	if a < b {
		return -1
	}
	return 1
}

// merge collapses records that name the same intersection, keeping the one with the
// smaller residual. Records are visited in parameter order so the outcome does not
// depend on the order the search found them in.
func (s *search) merge(recs []record) []record {
	sorted := slices.Clone(recs)
	slices.SortStableFunc(sorted, compareRecords)

	var kept []record
	for _, rec := range sorted {
		dup := -1
		for i := range kept {
			if s.duplicate(&kept[i], &rec) {
				dup = i
				break
			}
		}

		if dup < 0 {
			kept = append(kept, rec)
			continue
		}

		s.stats.Merged++
		if rec.residual < kept[dup].residual {
			if kept[dup].relation == Tangential {
				rec.relation = Tangential
			}
			kept[dup] = rec
		} else if rec.relation == Tangential {
			kept[dup].relation = Tangential
		}
	}

	return kept
}

// duplicate reports whether two records are within tolerance of each other in point
// and parameter space, or are tangential records in one contact zone: the curves stay
// within tolerance at the parameter midpoint between them.
func (s *search) duplicate(a, b *record) bool {
	if vec3.Distance(&a.pt, &b.pt) > s.tol*math.Max(1, mergeZone(a, b)) {
		return false
	}

	d0, d1 := s.e0.delta(a.u0, b.u0), s.e1.delta(a.u1, b.u1)
	near0 := math.Abs(d0) <= mergeWidths*s.width[0] || s.e0.same(a.u0, b.u0, mergeWidths*s.width[0])
	near1 := math.Abs(d1) <= mergeWidths*s.width[1] || s.e1.same(a.u1, b.u1, mergeWidths*s.width[1])
	if near0 && near1 {
		return true
	}

	if a.relation != Tangential || b.relation != Tangential {
		return false
	}

	p, q := s.e0.at(a.u0+d0/2), s.e1.at(a.u1+d1/2)
	return vec3.Distance(&p, &q) <= s.tol
}

// tangential records of one contact zone may lie further apart than the tolerance
func mergeZone(a, b *record) float64 {
	if a.relation == Tangential && b.relation == Tangential {
		return math.Inf(1)
	}
	return 1
}
