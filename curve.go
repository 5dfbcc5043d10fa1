package curvex

import (
	"math"
	"sort"

	. "github.com/alexozer/curvex/internal"

	"github.com/cockroachdb/errors"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

type NurbsCurve struct {
	// degree of curve
	degree int

	// slice of control points, each a homogeneous coordinate
	controlPoints []HomoPoint

	// slice of nondecreasing knot values
	knots KnotVec

	// the last degree control points repeat the first degree ones and the
	// knot spacing wraps around the domain
	periodic bool

	fitTol float64
}

func NewNurbsCurve(degree int, controlPoints []vec3.T, weights []float64, knots []float64) (*NurbsCurve, error) {
	this := NewNurbsCurveUnchecked(degree, controlPoints, weights, knots)
	if err := this.check(); err != nil {
		return nil, err
	}

	return this, nil
}

// NewPeriodicNurbsCurve builds a closed curve that is smooth across its seam.
// The last degree control points (and weights) must repeat the first degree ones,
// and the first 2*degree knot intervals must repeat one period later.
func NewPeriodicNurbsCurve(degree int, controlPoints []vec3.T, weights []float64, knots []float64) (*NurbsCurve, error) {
	this := NewNurbsCurveUnchecked(degree, controlPoints, weights, knots)
	this.periodic = true

	if err := this.check(); err != nil {
		return nil, err
	}

	return this, nil
}

func NewNurbsCurveUnchecked(degree int, controlPoints []vec3.T, weights []float64, knots []float64) *NurbsCurve {
	return &NurbsCurve{
		degree:        degree,
		controlPoints: Homogenize1d(controlPoints, weights),
		knots:         KnotVec(knots).Clone(),
	}
}

func (this *NurbsCurve) Degree() int {
	return this.degree
}

func (this *NurbsCurve) ControlPoints() []vec3.T {
	return Dehomogenize1d(this.controlPoints)
}

func (this *NurbsCurve) Weights() []float64 {
	return Weight1d(this.controlPoints)
}

func (this *NurbsCurve) Knots() []float64 {
	return []float64(this.knots.Clone())
}

// HomoControlPoints returns a copy of the control points as (w*p, w).
func (this *NurbsCurve) HomoControlPoints() []HomoPoint {
	return append([]HomoPoint(nil), this.controlPoints...)
}

// clone() is not exported because NurbsCurve is immutable to the client,
// so there's no point in making a deep copy.
// Should only be used when control points and knots can't be shared
func (this *NurbsCurve) clone() *NurbsCurve {
	return &NurbsCurve{
		degree:        this.degree,
		controlPoints: append([]HomoPoint(nil), this.controlPoints...),
		knots:         this.knots.Clone(),
		periodic:      this.periodic,
		fitTol:        this.fitTol,
	}
}

// WithFitTolerance returns a copy of the curve carrying the accuracy it was built to.
func (this *NurbsCurve) WithFitTolerance(tol float64) *NurbsCurve {
	res := this.clone()
	res.fitTol = math.Max(tol, 0)
	return res
}

func (this *NurbsCurve) FitTolerance() float64 {
	return this.fitTol
}

// Determine the valid domain of the curve
//
// **returns**
// + the first and last parameter of the curve
func (this *NurbsCurve) Domain() (min, max float64) {
	return this.knots.Domain(this.degree)
}

func (this *NurbsCurve) IsPeriodic() bool {
	return this.periodic
}

func (this *NurbsCurve) IsClosed() bool {
	if this.periodic {
		return true
	}

	var scale float64
	for _, pt := range this.ControlPoints() {
		scale = math.Max(scale, pt.Length())
	}
	return closedEnds(this, scale)
}

// Segment returns the part of the curve between the parameters a < b as a clamped
// curve on [a, b]. Periodic curves accept a and b within their domain only.
//
// **params**
// + start parameter
// + end parameter
//
// **returns**
// + the clamped segment
func (this *NurbsCurve) Segment(a, b float64) *NurbsCurve {
	degree := this.degree
	min, max := this.Domain()
	a, b = math.Max(a, min), math.Min(b, max)

	var knotsToInsert KnotVec
	for _, u := range [2]float64{a, b} {
		for i := this.knots.Multiplicity(u); i < degree+1; i++ {
			knotsToInsert = append(knotsToInsert, u)
		}
	}
	res := this.knotRefine(knotsToInsert)

	// first occurrence of a, and the number of knots in [a, b]
	ia := sort.Search(len(res.knots), func(i int) bool { return res.knots[i] >= a-Epsilon })
	var numKnots int
	for _, knot := range res.knots[ia:] {
		if knot > b+Epsilon {
			break
		}
		numKnots++
	}
	numPts := numKnots - degree - 1

	return &NurbsCurve{
		degree:        degree,
		controlPoints: append([]HomoPoint(nil), res.controlPoints[ia:ia+numPts]...),
		knots:         res.knots[ia : ia+numKnots].Clone(),
		fitTol:        this.fitTol,
	}
}

// Insert a collection of knots on a curve
//
// Corresponds to Algorithm A5.4 (Piegl & Tiller)
//
// **params**
// + nondecreasing knots to insert, within the domain
//
// **returns**
// + the refined curve
func (this *NurbsCurve) knotRefine(knotsToInsert KnotVec) *NurbsCurve {
	if len(knotsToInsert) == 0 {
		return this.clone()
	}

	degree := this.degree
	controlPoints := this.controlPoints
	knots := this.knots

	n := len(controlPoints) - 1
	m := n + degree + 1
	r := len(knotsToInsert) - 1
	a := knots.Span(degree, knotsToInsert[0])
	b := knots.Span(degree, knotsToInsert[r]) + 1

	controlPointsPost := make([]HomoPoint, n+r+2)
	knotsPost := make(KnotVec, m+r+2)

	// new control pts
	for i := 0; i <= a-degree; i++ {
		controlPointsPost[i] = controlPoints[i]
	}

	for i := b - 1; i <= n; i++ {
		controlPointsPost[i+r+1] = controlPoints[i]
	}

	// new knot vector
	for i := 0; i <= a; i++ {
		knotsPost[i] = knots[i]
	}

	for i := b + degree; i <= m; i++ {
		knotsPost[i+r+1] = knots[i]
	}

	i := b + degree - 1
	k := b + degree + r

	for j := r; j >= 0; j-- {
		for knotsToInsert[j] <= knots[i] && i > a {
			controlPointsPost[k-degree-1] = controlPoints[i-degree-1]
			knotsPost[k] = knots[i]
			k--
			i--
		}

		controlPointsPost[k-degree-1] = controlPointsPost[k-degree]

		for l := 1; l <= degree; l++ {
			ind := k - degree + l
			alfa := knotsPost[k+l] - knotsToInsert[j]

			if math.Abs(alfa) < Epsilon {
				controlPointsPost[ind-1] = controlPointsPost[ind]
			} else {
				alfa /= knotsPost[k+l] - knots[i-degree+l]
				controlPointsPost[ind-1] = HomoInterpolated(&controlPointsPost[ind], &controlPointsPost[ind-1], alfa)
			}
		}

		knotsPost[k] = knotsToInsert[j]
		k--
	}

	res := this.clone()
	res.controlPoints, res.knots = controlPointsPost, knotsPost
	return res
}

// Beziers decomposes the curve into rational Bézier pieces covering its domain,
// in parameter order. Each piece keeps the parameterization of the curve over its
// knot span and lies in the convex hull of its control points when all weights
// are positive.
func (this *NurbsCurve) Beziers() []*NurbsCurve {
	if !this.knots.IsClamped(this.degree) {
		min, max := this.Domain()
		return this.Segment(min, max).Beziers()
	}

	return this.decomposeIntoBeziers()
}

// Decompose a NURBS curve into a collection of bezier's.  Useful
// as each bezier fits into it's convex hull.  This is a useful starting
// point for intersection, closest point, divide & conquer algorithms
//
// Requires a clamped knot vector.
func (this *NurbsCurve) decomposeIntoBeziers() []*NurbsCurve {
	degree := this.degree
	reqMult := degree + 1

	// raise every interior knot to multiplicity degree + 1 in one refinement
	var knotsToInsert KnotVec
	for _, knotmult := range this.knots.Multiplicities() {
		for i := knotmult.Mult; i < reqMult; i++ {
			knotsToInsert = append(knotsToInsert, knotmult.Knot)
		}
	}
	res := this.knotRefine(knotsToInsert)

	crvKnotLength := reqMult * 2
	crvs := make([]*NurbsCurve, 0, len(res.controlPoints)/reqMult)

	for i := 0; i+reqMult <= len(res.controlPoints); i += reqMult {
		kts := res.knots[i : i+crvKnotLength : i+crvKnotLength]
		if kts[len(kts)-1]-kts[0] < Epsilon {
			continue
		}
		pts := res.controlPoints[i : i+reqMult : i+reqMult]

		crvs = append(crvs, &NurbsCurve{degree: degree, controlPoints: pts, knots: kts, fitTol: this.fitTol})
	}

	return crvs
}

// Determine the arc length of the curve
//
// **returns**
// + The length of the curve
func (this *NurbsCurve) Length() float64 {
	min, max := this.Domain()
	return this.arcLength(min, max)
}

// arc length over [a, b], integrated one knot span at a time so that the
// integrand stays smooth
func (this *NurbsCurve) arcLength(a, b float64) float64 {
	var sum float64
	start := a

	for _, knotmult := range this.knots.Multiplicities() {
		if knotmult.Knot <= start+Epsilon {
			continue
		}
		if knotmult.Knot >= b {
			break
		}

		sum += ArcLength(this, start, knotmult.Knot)
		start = knotmult.Knot
	}

	return sum + ArcLength(this, start, b)
}

// Validate the curve
//
// **returns**
// + an error describing the first broken requirement
func (this *NurbsCurve) check() error {
	if this.controlPoints == nil {
		return errors.New("control points cannot be nil")
	}

	if this.degree < 1 {
		return errors.Newf("degree must be at least 1, got %d", this.degree)
	}

	if this.knots == nil {
		return errors.New("knots cannot be nil")
	}

	if !areValidRelations(this.degree, len(this.controlPoints), len(this.knots)) {
		return errors.Newf("len(controlPoints) + degree + 1 must equal len(knots): %d + %d + 1 != %d",
			len(this.controlPoints), this.degree, len(this.knots))
	}

	if !this.knots.IsValid(this.degree) {
		return errors.New("invalid knot vector: must be nondecreasing with a non-empty domain")
	}

	for i, pt := range this.controlPoints {
		if math.IsNaN(pt.W) || math.IsInf(pt.W, 0) || pt.W == 0 {
			return errors.Newf("control point %d has invalid weight %v", i, pt.W)
		}
	}

	if this.periodic {
		return errors.Wrap(this.checkPeriodic(), "periodic curve")
	}

	return nil
}

func (this *NurbsCurve) checkPeriodic() error {
	degree := this.degree
	numPts := len(this.controlPoints)

	if numPts <= degree {
		return errors.Newf("needs more than %d control points", degree)
	}

	for i := 0; i < degree; i++ {
		p0, p1 := this.controlPoints[i], this.controlPoints[numPts-degree+i]
		if vec3.Distance(&p0.Vec3, &p1.Vec3) > Epsilon*math.Max(1, p0.Vec3.Length()) || math.Abs(p0.W-p1.W) > Epsilon {
			return errors.Newf("control point %d must repeat as control point %d", i, numPts-degree+i)
		}
	}

	min, max := this.Domain()
	period := max - min
	for i := 0; i <= 2*degree && i+numPts-degree < len(this.knots); i++ {
		if math.Abs(this.knots[i+numPts-degree]-this.knots[i]-period) > Epsilon*math.Max(1, period) {
			return errors.Newf("knot %d does not repeat one period later", i)
		}
	}

	return nil
}

func areValidRelations(degree, numControlPoints, knotsLength int) bool {
	return numControlPoints+degree+1 == knotsLength
}

func (this *NurbsCurve) Transform(mat *mat4.T) *NurbsCurve {
	pts := Dehomogenize1d(this.controlPoints)

	for i := range pts {
		pts[i] = mat.MulVec3(&pts[i])
	}

	res := this.clone()
	res.controlPoints = Homogenize1d(pts, Weight1d(this.controlPoints))
	return res
}

// Determine the derivatives of a NURBS curve at a given parameter.
// Derivatives above the degree are zero.
//
// **params**
// + parameter on the curve at which the point is to be evaluated
// + number of derivatives to evaluate
//
// **returns**
// + the point followed by numDerivs derivatives
func (this *NurbsCurve) Derivatives(u float64, numDerivs int) []vec3.T {
	ders := this.nonRationalDerivatives(this.reduce(u), numDerivs)
	ck := make([]vec3.T, 0, numDerivs+1)

	for k := 0; k <= numDerivs; k++ {
		var v vec3.T
		if k < len(ders) {
			v = ders[k].Vec3
		}

		for i := 1; i <= k && i < len(ders); i++ {
			scaled := ck[k-i].Scaled(binomial(k, i) * ders[i].W)
			v.Sub(&scaled)
		}
		v.Scale(1 / ders[0].W)
		ck = append(ck, v)
	}

	return ck
}

// Compute a point on a NURBS curve
//
// **params**
// + parameter on the curve at which the point is to be evaluated
//
// **returns**
// + the point
func (this *NurbsCurve) Point(u float64) vec3.T {
	homoPt := this.nonRationalPoint(this.reduce(u))
	return homoPt.Dehomogenized()
}

func (this *NurbsCurve) reduce(u float64) float64 {
	if !this.periodic {
		return u
	}

	min, max := this.Domain()
	return reduce(u, min, max)
}

func (this *NurbsCurve) nonRationalDerivatives(u float64, numDerivs int) []HomoPoint {
	n := len(this.knots) - this.degree - 2
	return this.nonRationalDerivativesGivenNM(n, u, numDerivs)
}

// Determine the derivatives of a non-uniform, non-rational B-spline curve at a given parameter
// (corresponds to algorithm 3.2 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + integer number of basis functions - 1 = knots.length - degree - 2
// + parameter on the curve at which the point is to be evaluated
// + number of derivatives to evaluate
//
// **returns**
// + min(numDerivs, degree) + 1 homogeneous derivatives
func (this *NurbsCurve) nonRationalDerivativesGivenNM(n int, u float64, numDerivs int) []HomoPoint {
	degree := this.degree
	controlPoints := this.controlPoints
	knots := this.knots

	if !areValidRelations(degree, len(controlPoints), len(knots)) {
		panic(errors.AssertionFailedf("invalid relations between control points, knot vector, and n"))
	}

	du := numDerivs
	if du > degree {
		du = degree
	}

	ck := make([]HomoPoint, du+1)
	knotSpanIndex := knots.SpanGivenN(n, degree, u)
	nders := knots.BasisDerivatives(knotSpanIndex, u, degree, du)

	for k := 0; k <= du; k++ {
		for j := 0; j <= degree; j++ {
			scaled := controlPoints[knotSpanIndex-degree+j].Scaled(nders[k][j])
			ck[k].Add(&scaled)
		}
	}

	return ck
}

func (this *NurbsCurve) nonRationalPoint(u float64) HomoPoint {
	n := len(this.knots) - this.degree - 2
	return this.nonRationalPointGivenN(n, u)
}

// Compute a point on a non-uniform, non-rational b-spline curve
// (corresponds to algorithm 3.1 from The NURBS book, Piegl & Tiller 2nd edition)
func (this *NurbsCurve) nonRationalPointGivenN(n int, u float64) HomoPoint {
	degree := this.degree
	controlPoints := this.controlPoints
	knots := this.knots

	if !areValidRelations(degree, len(controlPoints), len(knots)) {
		panic(errors.AssertionFailedf("invalid relations between control points, knot vector, and n"))
	}

	knotSpanIndex := knots.SpanGivenN(n, degree, u)
	basisValues := knots.Basis(knotSpanIndex, u, degree)
	var position HomoPoint

	for j := 0; j <= degree; j++ {
		scaled := controlPoints[knotSpanIndex-degree+j].Scaled(basisValues[j])
		position.Add(&scaled)
	}

	return position
}
