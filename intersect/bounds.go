package intersect

import (
	"math"
	"sort"

	"github.com/alexozer/curvex"
	"github.com/alexozer/curvex/internal"

	"github.com/golang/geo/r1"
	"github.com/ungerik/go3d/float64/vec3"
)

// boundsFunc boxes a curve over a sub-range of its domain. The box may be larger
// than the curve but never smaller.
type boundsFunc func(iv r1.Interval) BoundingBox

// box of the curve over iv, which may run past the seam of a periodic curve
func (this *evaluator) box(iv r1.Interval) BoundingBox {
	var bb BoundingBox
	for _, piece := range this.canonical(iv) {
		pb := this.bounds(piece)
		bb.Union(&pb)
	}
	return bb
}

func newBoundsFunc(c curvex.Curve) boundsFunc {
	switch c := c.(type) {
	case *curvex.Trimmed:
		base := c.Base()
		bounds := newBoundsFunc(base)
		if !base.IsPeriodic() {
			return bounds
		}

		lo, hi := base.Domain()
		domain := r1.Interval{Lo: lo, Hi: hi}
		return func(iv r1.Interval) BoundingBox {
			var bb BoundingBox
			for _, piece := range wrapRanges(iv, domain) {
				pb := bounds(piece)
				bb.Union(&pb)
			}
			return bb
		}

	case *curvex.NurbsCurve:
		if bounds := newSplineBounds(c); bounds != nil {
			return bounds
		}

	case *curvex.SurfaceCurve:
		if bounds := newSurfaceCurveBounds(c); bounds != nil {
			return bounds
		}

	case curvex.Bounder:
		return func(iv r1.Interval) BoundingBox {
			lo, hi := c.Bounds(iv.Lo, iv.Hi)
			return *NewBoundingBox(lo, hi)
		}
	}

	return sampledBounds(c)
}

type bezierPiece struct {
	span r1.Interval
	pts  []internal.HomoPoint
}

// newSplineBounds boxes sub-ranges of a rational B-spline by the control points of the
// Bézier pieces covering them, which contain the curve when all weights are positive.
// It returns nil for curves with non-positive weights.
func newSplineBounds(c *curvex.NurbsCurve) boundsFunc {
	for _, w := range c.Weights() {
		if !(w > 0) {
			return nil
		}
	}

	beziers := c.Beziers()
	pieces := make([]bezierPiece, 0, len(beziers))
	for _, bez := range beziers {
		lo, hi := bez.Domain()
		pieces = append(pieces, bezierPiece{r1.Interval{Lo: lo, Hi: hi}, bez.HomoControlPoints()})
	}

	return func(iv r1.Interval) BoundingBox {
		var bb BoundingBox

		first := sort.Search(len(pieces), func(i int) bool { return pieces[i].span.Hi > iv.Lo })
		if first == len(pieces) {
			first = len(pieces) - 1
		}

		for _, piece := range pieces[first:] {
			if piece.span.Lo > iv.Hi && bb.initialized {
				break
			}

			sub := piece.span.Intersection(iv)
			if sub.IsEmpty() {
				sub = r1.IntervalFromPoint(piece.span.ClampPoint(iv.Lo))
			}

			t0 := (sub.Lo - piece.span.Lo) / piece.span.Length()
			t1 := (sub.Hi - piece.span.Lo) / piece.span.Length()

			var pts []internal.HomoPoint
			if t1-t0 <= internal.Epsilon {
				pts = []internal.HomoPoint{bezierPoint(piece.pts, t0)}
			} else {
				pts = internal.BezierSegment(piece.pts, t0, t1)
			}

			for i := range pts {
				pt := pts[i].Dehomogenized()
				bb.Add(&pt)
			}
		}

		return bb
	}
}

// point of a rational Bézier at local parameter t, in homogeneous form
func bezierPoint(pts []internal.HomoPoint, t float64) internal.HomoPoint {
	left, _ := internal.BezierSplit(pts, t)
	return left[len(left)-1]
}

// newSurfaceCurveBounds boxes sub-ranges of a curve on a surface: the parameter space
// curve's box gives a (u, v) rectangle, and the control points of the surface patch
// over that rectangle contain the curve. It returns nil when either the parameter
// space curve or the surface has non-positive weights.
func newSurfaceCurveBounds(c *curvex.SurfaceCurve) boundsFunc {
	srf := c.Surface()
	uv := newSplineBounds(c.PCurve())
	if uv == nil || !positiveWeights(srf.Weights()) {
		return nil
	}

	minU, maxU := srf.DomainU()
	minV, maxV := srf.DomainV()
	du, dv := surfaceRangeFloor*(maxU-minU), surfaceRangeFloor*(maxV-minV)

	return func(iv r1.Interval) BoundingBox {
		rect := uv(iv)
		u := widened(r1.Interval{Lo: rect.Min[0], Hi: rect.Max[0]}, du, minU, maxU)
		v := widened(r1.Interval{Lo: rect.Min[1], Hi: rect.Max[1]}, dv, minV, maxV)

		var bb BoundingBox
		for _, row := range srf.Patch(u.Lo, u.Hi, v.Lo, v.Hi).ControlPoints() {
			bb.AddRange(row)
		}
		return bb
	}
}

// parameter ranges of a surface patch are at least this fraction of the domain
const surfaceRangeFloor = 1e-9

// widened clamps iv to [min, max] and grows it to at least width, still inside the domain
func widened(iv r1.Interval, width, min, max float64) r1.Interval {
	iv = r1.Interval{Lo: math.Max(iv.Lo, min), Hi: math.Min(iv.Hi, max)}
	if iv.Hi-iv.Lo >= width {
		return iv
	}

	mid := math.Max(min, math.Min(max, (iv.Lo+iv.Hi)/2))
	iv = r1.Interval{Lo: mid - width/2, Hi: mid + width/2}
	if iv.Lo < min {
		iv = r1.Interval{Lo: min, Hi: min + width}
	} else if iv.Hi > max {
		iv = r1.Interval{Lo: max - width, Hi: max}
	}
	return iv
}

func positiveWeights(weights [][]float64) bool {
	for _, row := range weights {
		for _, w := range row {
			if !(w > 0) {
				return false
			}
		}
	}
	return true
}

const (
	sampledBoundsCount  = 9
	sampledBoundsMargin = 1.5
)

// sampledBounds boxes a sub-range by samples, grown by the chord deviation bound
// K*h*h/8 with K the largest sampled second derivative, scaled by a safety margin.
// The box is an estimate: it serves only curves that offer neither control points
// nor a Bounds method.
func sampledBounds(c curvex.Curve) boundsFunc {
	return func(iv r1.Interval) BoundingBox {
		var bb BoundingBox
		var k float64

		h := iv.Length() / (sampledBoundsCount - 1)
		for i := 0; i < sampledBoundsCount; i++ {
			ders := c.Derivatives(iv.Lo+h*float64(i), 2)
			bb.Add(&ders[0])
			k = math.Max(k, ders[2].Length())
		}

		margin := sampledBoundsMargin * k * h * h / 8
		grow := vec3.T{margin, margin, margin}
		bb.Min.Sub(&grow)
		bb.Max.Add(&grow)

		return bb
	}
}
