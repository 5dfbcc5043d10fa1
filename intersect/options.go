package intersect

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/alexozer/curvex"
	"github.com/alexozer/curvex/internal"

	"github.com/golang/geo/s1"
)

const (
	// DefaultTolerance is the linear tolerance used when neither the options nor
	// the curves' fit tolerances ask for a looser one.
	DefaultTolerance = internal.Tolerance

	DefaultAngularTolerance = 1e-6 * s1.Radian

	// DefaultMaxDepth bounds the number of bisections leading to one candidate pair.
	DefaultMaxDepth = 64

	DefaultMaxIterations = 32
)

// Tolerance is the linear and angular tolerance of one call.
type Tolerance struct {
	Linear  float64
	Angular s1.Angle
}

// Options of one call to Curves. The zero value and nil both select the defaults.
type Options struct {
	// nil derives the tolerance from the curves: the largest of DefaultTolerance
	// and both fit tolerances, with DefaultAngularTolerance.
	Tolerance *Tolerance

	// Only intersections inside SearchBox are returned. Coincident ranges are traced
	// in full before clipping.
	SearchBox *BoundingBox

	MaxDepth      int
	MaxIterations int

	// Logger receives a debug summary of every call. nil discards it.
	Logger *slog.Logger

	// Stats, if set, accumulates counters of the search.
	Stats *Stats
}

// Stats counts what the search did. Counters only ever grow, so one Stats may be
// shared by several calls.
type Stats struct {
	// candidate pairs examined, and how many were discarded
	Cells, Pruned int

	// pairs handed to the local refiner, and how many of those hit MaxDepth first
	Seeds, DepthLimited int

	// refinements that converged, failed, or converged onto the trivial self match
	Converged, Failed, Rejected int

	// fallback minimisations that converged
	Minimized int

	// coincident ranges found
	Spans int

	// records merged away as duplicates
	Merged int
}

func (this *Stats) String() string {
	return fmt.Sprintf("cells=%d pruned=%d seeds=%d depthLimited=%d converged=%d failed=%d rejected=%d minimized=%d spans=%d merged=%d",
		this.Cells, this.Pruned, this.Seeds, this.DepthLimited, this.Converged, this.Failed, this.Rejected, this.Minimized, this.Spans, this.Merged)
}

func (this *Options) tolerance(c0, c1 curvex.Curve) Tolerance {
	var tol Tolerance
	if this != nil && this.Tolerance != nil {
		tol = *this.Tolerance
	} else {
		tol.Linear = math.Max(c0.FitTolerance(), c1.FitTolerance())
	}

	if !(tol.Linear > 0) {
		tol.Linear = DefaultTolerance
	}
	if this == nil || this.Tolerance == nil {
		tol.Linear = math.Max(tol.Linear, DefaultTolerance)
	}
	if !(tol.Angular > 0) {
		tol.Angular = DefaultAngularTolerance
	}

	return tol
}

func (this *Options) maxDepth() int {
	if this == nil || this.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return this.MaxDepth
}

func (this *Options) maxIterations() int {
	if this == nil || this.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return this.MaxIterations
}

func (this *Options) logger() *slog.Logger {
	if this == nil || this.Logger == nil {
		return newNopLogger()
	}
	return this.Logger
}

func (this *Options) stats() *Stats {
	if this == nil || this.Stats == nil {
		return new(Stats)
	}
	return this.Stats
}

func (this *Options) searchBox() *BoundingBox {
	if this == nil || this.SearchBox == nil || !this.SearchBox.initialized {
		return nil
	}
	return this.SearchBox
}
