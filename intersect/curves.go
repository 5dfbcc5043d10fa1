// Package intersect finds where two curves meet: transversal crossings, tangential
// touches, and the ends of ranges over which the curves coincide.
//
// The search subdivides both parameter domains, discarding pairs of sub-ranges whose
// bounding boxes are disjoint, and refines the pairs that become small enough with a
// Newton iteration. Results are deterministic for identical inputs.
package intersect

import (
	"log/slog"
	"math"

	"github.com/alexozer/curvex"

	"github.com/golang/geo/r1"
)

const (
	// seed boxes are at most this fraction of the scene diagonal
	seedFraction = 1e-3

	// lower bound on the seed box diagonal, in tolerances
	seedTolerances = 10
)

// search is the state of one call to Curves.
type search struct {
	e0, e1 *evaluator

	// both curves are the same object
	self bool

	tol    float64
	angTol float64

	// sine below which two tangents are treated as parallel by the refiner
	nearParallel float64

	// seed box diagonal, and per curve parameter widths that always seed
	seedSize float64
	width    [2]float64

	scene BoundingBox
	diag  float64

	searchBox     *BoundingBox
	maxDepth      int
	maxIterations int

	stats *Stats
	log   *slog.Logger

	points []record
	spans  []span
}

// Curves intersects c0 with c1 and returns the intersections ordered by their
// parameter on c0, or nil if the curves do not meet. Passing the same curve twice
// finds self intersections; each is reported twice, once per ordering of its two
// parameters.
//
// A curve with an empty or NaN domain meets nothing. Curves panics with an assertion
// failure if it evaluates a curve outside its domain, which indicates a defect in the
// search rather than bad input.
func Curves(c0, c1 curvex.Curve, opts *Options) *Intersection {
	if !hasDomain(c0) || !hasDomain(c1) {
		opts.logger().Debug("intersect curves: empty domain")
		return nil
	}

	s := newSearch(c0, c1, opts)

	s.locate()
	res := s.build()

	s.log.Debug("intersect curves",
		slog.Bool("self", s.self),
		slog.Float64("tol", s.tol),
		slog.Int("cells", s.stats.Cells),
		slog.Int("seeds", s.stats.Seeds),
		slog.Int("failed", s.stats.Failed),
		slog.Int("spans", len(s.spans)),
		slog.Int("results", res.Len()))

	return res
}

func hasDomain(c curvex.Curve) bool {
	lo, hi := c.Domain()
	return hi > lo
}

func newSearch(c0, c1 curvex.Curve, opts *Options) *search {
	tol := opts.tolerance(c0, c1)

	s := &search{
		e0:            newEvaluator(c0),
		self:          c0 == c1,
		tol:           tol.Linear,
		angTol:        tol.Angular.Radians(),
		searchBox:     opts.searchBox(),
		maxDepth:      opts.maxDepth(),
		maxIterations: opts.maxIterations(),
		stats:         opts.stats(),
		log:           opts.logger(),
	}
	if s.self {
		s.e1 = s.e0
	} else {
		s.e1 = newEvaluator(c1)
	}

	b0, b1 := s.e0.box(s.e0.domain), s.e1.box(s.e1.domain)
	s.scene.Union(&b0).Union(&b1)
	s.diag = math.Max(s.scene.Diagonal(), s.tol)

	s.seedSize = math.Max(seedFraction*s.diag, seedTolerances*s.tol)
	s.nearParallel = math.Max(math.Sin(s.angTol), math.Sqrt(s.tol/s.diag))
	s.width[0] = s.paramWidth(s.e0)
	s.width[1] = s.paramWidth(s.e1)

	return s
}

// paramWidth is the parameter width over which the curve cannot travel further
// than the tolerance, estimated from the largest sampled speed.
func (s *search) paramWidth(e *evaluator) float64 {
	const samples = 33

	var speed float64
	h := e.domain.Length() / (samples - 1)
	for i := 0; i < samples; i++ {
		speed = math.Max(speed, e.ders(e.domain.Lo+h*float64(i), 1)[1].Length())
	}

	floor := 1e-12 * math.Max(1, math.Abs(e.domain.Lo)+math.Abs(e.domain.Hi))
	if speed == 0 {
		return math.Max(floor, e.domain.Length()*1e-9)
	}
	return math.Max(floor, s.tol/speed)
}

func (s *search) evaluator(i int) *evaluator {
	if i == 0 {
		return s.e0
	}
	return s.e1
}

// initialIntervals of a curve: its domain, plus for periodic curves an interval
// straddling the seam so that roots on the seam fall inside a cell
func (s *search) initialIntervals(e *evaluator) []r1.Interval {
	res := []r1.Interval{e.domain}
	if e.periodic && !s.self {
		quarter := e.period / 4
		res = append(res, r1.Interval{Lo: e.domain.Hi - quarter, Hi: e.domain.Hi + quarter})
	}
	return res
}
