package curvex

import (
	"math"
	"sort"

	. "github.com/alexozer/curvex/internal"

	"github.com/cockroachdb/errors"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

type UV [2]float64

type NurbsSurface struct {
	// integer degree of surface in u direction
	degreeU int

	// integer degree of surface in v direction
	degreeV int

	// 2d array of control points, the vertical direction (u) increases from top to bottom, the v direction from left to right
	controlPoints [][]HomoPoint

	// array of nondecreasing knot values in u direction
	knotsU KnotVec

	// array of nondecreasing knot values in v direction
	knotsV KnotVec
}

func NewNurbsSurfaceUnchecked(degreeU, degreeV int, controlPoints [][]vec3.T, weights [][]float64, knotsU, knotsV []float64) *NurbsSurface {
	return &NurbsSurface{
		degreeU, degreeV,
		Homogenize2d(controlPoints, weights),
		KnotVec(knotsU).Clone(), KnotVec(knotsV).Clone(),
	}
}

func NewNurbsSurface(degreeU, degreeV int, controlPoints [][]vec3.T, weights [][]float64, knotsU, knotsV []float64) (*NurbsSurface, error) {
	this := NewNurbsSurfaceUnchecked(degreeU, degreeV, controlPoints, weights, knotsU, knotsV)
	if err := this.check(); err != nil {
		return nil, err
	}

	return this, nil
}

func (this *NurbsSurface) DegreeU() int {
	return this.degreeU
}

func (this *NurbsSurface) DegreeV() int {
	return this.degreeV
}

func (this *NurbsSurface) ControlPoints() [][]vec3.T {
	return Dehomogenize2d(this.controlPoints)
}

func (this *NurbsSurface) Weights() [][]float64 {
	return Weight2d(this.controlPoints)
}

func (this *NurbsSurface) KnotsU() []float64 {
	return []float64(this.knotsU.Clone())
}

func (this *NurbsSurface) KnotsV() []float64 {
	return []float64(this.knotsV.Clone())
}

func (this *NurbsSurface) DomainU() (min, max float64) {
	return this.knotsU.Domain(this.degreeU)
}

func (this *NurbsSurface) DomainV() (min, max float64) {
	return this.knotsV.Domain(this.degreeV)
}

// Validate the surface
//
// **returns**
// + an error describing the first broken requirement
func (this *NurbsSurface) check() error {
	if len(this.controlPoints) == 0 || len(this.controlPoints[0]) == 0 {
		return errors.New("control points cannot be empty")
	}

	for i, row := range this.controlPoints {
		if len(row) != len(this.controlPoints[0]) {
			return errors.Newf("control point row %d has %d points, want %d", i, len(row), len(this.controlPoints[0]))
		}
	}

	if this.degreeU < 1 {
		return errors.Newf("degreeU must be at least 1, got %d", this.degreeU)
	}
	if this.degreeV < 1 {
		return errors.Newf("degreeV must be at least 1, got %d", this.degreeV)
	}

	if !areValidRelations(this.degreeU, len(this.controlPoints), len(this.knotsU)) {
		return errors.New("len(controlPointsU) + degreeU + 1 must equal len(knotsU)")
	}
	if !areValidRelations(this.degreeV, len(this.controlPoints[0]), len(this.knotsV)) {
		return errors.New("len(controlPointsV) + degreeV + 1 must equal len(knotsV)")
	}

	if !this.knotsU.IsClamped(this.degreeU) || !this.knotsV.IsClamped(this.degreeV) ||
		!this.knotsU.IsValid(this.degreeU) || !this.knotsV.IsValid(this.degreeV) {
		return errors.New("invalid knot vector: should begin and end with degree + 1 repeats")
	}

	return nil
}

func (this *NurbsSurface) Transform(mat *mat4.T) *NurbsSurface {
	pts := Dehomogenize2d(this.controlPoints)

	for i := range pts {
		for j := range pts[i] {
			pts[i][j] = mat.MulVec3(&pts[i][j])
		}
	}

	return &NurbsSurface{
		this.degreeU,
		this.degreeV,

		Homogenize2d(pts, Weight2d(this.controlPoints)),

		this.knotsU.Clone(),
		this.knotsV.Clone(),
	}
}

func (this *NurbsSurface) knotRefine(knotsToInsert KnotVec, useV bool) *NurbsSurface {
	var knots KnotVec
	var degree int
	var ctrlPts [][]HomoPoint

	// u dir
	if !useV {
		ctrlPts = transposed(this.controlPoints)
		knots = this.knotsU
		degree = this.degreeU
		// v dir
	} else {
		ctrlPts = this.controlPoints
		knots = this.knotsV
		degree = this.degreeV
	}

	// do knot refinement on every row
	newPts := make([][]HomoPoint, 0, len(ctrlPts))
	var c *NurbsCurve
	for _, cptrow := range ctrlPts {
		baseCurve := NurbsCurve{degree: degree, controlPoints: cptrow, knots: knots}
		c = baseCurve.knotRefine(knotsToInsert)
		newPts = append(newPts, c.controlPoints)
	}

	if !useV {
		return &NurbsSurface{
			this.degreeU, this.degreeV,
			transposed(newPts),
			c.knots, this.knotsV.Clone(),
		}
	}

	return &NurbsSurface{
		this.degreeU, this.degreeV,
		newPts,
		this.knotsU.Clone(), c.knots,
	}
}

// Patch returns the part of the surface over [minU, maxU] x [minV, maxV], clamped in
// both directions. The ranges are cut to the domain and must not be empty. The
// control points of the patch contain it when all weights are positive.
//
// **params**
// + the u range
// + the v range
//
// **returns**
// + the patch
func (this *NurbsSurface) Patch(minU, maxU, minV, maxV float64) *NurbsSurface {
	return this.segment(minU, maxU, false).segment(minV, maxV, true)
}

// segment cuts the surface to [a, b] in u, or with useV in v, by raising both ends
// to full multiplicity.
func (this *NurbsSurface) segment(a, b float64, useV bool) *NurbsSurface {
	knots, degree := this.knotsU, this.degreeU
	if useV {
		knots, degree = this.knotsV, this.degreeV
	}

	min, max := knots.Domain(degree)
	a, b = math.Max(a, min), math.Min(b, max)

	var knotsToInsert KnotVec
	for _, u := range [2]float64{a, b} {
		for i := knots.Multiplicity(u); i < degree+1; i++ {
			knotsToInsert = append(knotsToInsert, u)
		}
	}

	res := this
	if len(knotsToInsert) > 0 {
		res = this.knotRefine(knotsToInsert, useV)
	}

	refined := res.knotsU
	if useV {
		refined = res.knotsV
	}

	ia := sort.Search(len(refined), func(i int) bool { return refined[i] >= a-Epsilon })
	var numKnots int
	for _, knot := range refined[ia:] {
		if knot > b+Epsilon {
			break
		}
		numKnots++
	}
	numPts := numKnots - degree - 1
	cut := refined[ia : ia+numKnots].Clone()

	if !useV {
		pts := make([][]HomoPoint, numPts)
		for i := range pts {
			pts[i] = append([]HomoPoint(nil), res.controlPoints[ia+i]...)
		}
		return &NurbsSurface{this.degreeU, this.degreeV, pts, cut, res.knotsV.Clone()}
	}

	pts := make([][]HomoPoint, len(res.controlPoints))
	for i, row := range res.controlPoints {
		pts[i] = append([]HomoPoint(nil), row[ia:ia+numPts]...)
	}
	return &NurbsSurface{this.degreeU, this.degreeV, pts, res.knotsU.Clone(), cut}
}

func transposed(mat [][]HomoPoint) [][]HomoPoint {
	result := make([][]HomoPoint, len(mat[0]))
	for i := range result {
		result[i] = make([]HomoPoint, len(mat))
		for j := range mat {
			result[i][j] = mat[j][i]
		}
	}

	return result
}

// Compute the derivatives at a point on a NURBS surface
// (corresponds to algorithm 4.4 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + u, v parameters at which to evaluate the derivatives
// + number of derivatives to evaluate
//
// **returns**
// + skl[k][l], the k-th u and l-th v derivative for k + l <= numDerivs
func (this *NurbsSurface) Derivatives(uv UV, numDerivs int) [][]vec3.T {
	ders := this.nonRationalDerivatives(uv, numDerivs)
	homo := func(k, l int) HomoPoint {
		if k < len(ders) && l < len(ders[k]) {
			return ders[k][l]
		}
		return HomoPoint{}
	}

	skl := make([][]vec3.T, numDerivs+1)

	for k := 0; k <= numDerivs; k++ {
		skl[k] = make([]vec3.T, numDerivs-k+1)

		for l := 0; l <= numDerivs-k; l++ {
			v := homo(k, l).Vec3

			for j := 1; j <= l; j++ {
				scaled := skl[k][l-j].Scaled(binomial(l, j) * homo(0, j).W)
				v.Sub(&scaled)
			}

			for i := 1; i <= k; i++ {
				scaled := skl[k-i][l].Scaled(binomial(k, i) * homo(i, 0).W)
				v.Sub(&scaled)

				var v2 vec3.T

				for j := 1; j <= l; j++ {
					scaled := skl[k-i][l-j].Scaled(binomial(l, j) * homo(i, j).W)
					v2.Add(&scaled)
				}

				scaled = v2.Scaled(binomial(k, i))
				v.Sub(&scaled)
			}

			v.Scale(1 / homo(0, 0).W)
			skl[k][l] = v
		}
	}

	return skl
}

// Compute a point on a NURBS surface
func (this *NurbsSurface) Point(uv UV) vec3.T {
	homoPt := this.nonRationalPoint(uv)
	return homoPt.Dehomogenized()
}

func (this *NurbsSurface) nonRationalDerivatives(uv UV, numDerivs int) [][]HomoPoint {
	n := len(this.knotsU) - this.degreeU - 2
	m := len(this.knotsV) - this.degreeV - 2

	return this.nonRationalDerivativesGivenNM(n, m, uv, numDerivs)
}

// Compute the derivatives on a non-uniform, non-rational B spline surface
// (corresponds to algorithm 3.6 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + integer number of basis functions in u dir - 1 = knotsU.length - degreeU - 2
// + integer number of basis functions in v dir - 1 = knotsV.length - degreeV - 2
// + u, v parameters at which to evaluate the derivatives
// + number of derivatives to evaluate
//
// **returns**
// + a 2d jagged array representing the derivatives - u derivatives increase by row, v by column
func (this *NurbsSurface) nonRationalDerivativesGivenNM(n, m int, uv UV, numDerivs int) [][]HomoPoint {
	degreeU := this.degreeU
	degreeV := this.degreeV
	controlPoints := this.controlPoints
	knotsU := this.knotsU
	knotsV := this.knotsV

	if !areValidRelations(degreeU, len(controlPoints), len(knotsU)) ||
		!areValidRelations(degreeV, len(controlPoints[0]), len(knotsV)) {
		panic(errors.AssertionFailedf("invalid relations between control points, knot vector, and n"))
	}

	du := numDerivs
	if du > degreeU {
		du = degreeU
	}
	dv := numDerivs
	if dv > degreeV {
		dv = degreeV
	}

	skl := make([][]HomoPoint, du+1)
	for i := range skl {
		skl[i] = make([]HomoPoint, dv+1)
	}

	knotSpanIndexU := knotsU.SpanGivenN(n, degreeU, uv[0])
	knotSpanIndexV := knotsV.SpanGivenN(m, degreeV, uv[1])
	uders := knotsU.BasisDerivatives(knotSpanIndexU, uv[0], degreeU, du)
	vders := knotsV.BasisDerivatives(knotSpanIndexV, uv[1], degreeV, dv)
	temp := make([]HomoPoint, degreeV+1)

	for k := 0; k <= du; k++ {
		for s := range temp {
			temp[s] = HomoPoint{}

			for r := 0; r <= degreeU; r++ {
				scaled := controlPoints[knotSpanIndexU-degreeU+r][knotSpanIndexV-degreeV+s].Scaled(uders[k][r])
				temp[s].Add(&scaled)
			}
		}

		dd := numDerivs - k
		if dd > dv {
			dd = dv
		}

		for l := 0; l <= dd; l++ {
			for s := 0; s <= degreeV; s++ {
				scaled := temp[s].Scaled(vders[l][s])
				skl[k][l].Add(&scaled)
			}
		}
	}

	return skl
}

func (this *NurbsSurface) nonRationalPoint(uv UV) HomoPoint {
	n := len(this.knotsU) - this.degreeU - 2
	m := len(this.knotsV) - this.degreeV - 2

	return this.nonRationalPointGivenNM(n, m, uv)
}

// Compute a point on a non-uniform, non-rational B spline surface
// (corresponds to algorithm 3.5 from The NURBS book, Piegl & Tiller 2nd edition)
func (this *NurbsSurface) nonRationalPointGivenNM(n, m int, uv UV) HomoPoint {
	degreeU := this.degreeU
	degreeV := this.degreeV
	controlPoints := this.controlPoints
	knotsU := this.knotsU
	knotsV := this.knotsV

	if !areValidRelations(degreeU, len(controlPoints), len(knotsU)) ||
		!areValidRelations(degreeV, len(controlPoints[0]), len(knotsV)) {
		panic(errors.AssertionFailedf("invalid relations between control points, knot vector, and n"))
	}

	knotSpanIndexU := knotsU.SpanGivenN(n, degreeU, uv[0])
	knotSpanIndexV := knotsV.SpanGivenN(m, degreeV, uv[1])
	uBasisVals := knotsU.Basis(knotSpanIndexU, uv[0], degreeU)
	vBasisVals := knotsV.Basis(knotSpanIndexV, uv[1], degreeV)
	uind := knotSpanIndexU - degreeU
	var position HomoPoint

	for l := 0; l <= degreeV; l++ {
		var temp HomoPoint
		vind := knotSpanIndexV - degreeV + l

		// sample u isoline
		for k := 0; k <= degreeU; k++ {
			scaled := controlPoints[uind+k][vind].Scaled(uBasisVals[k])
			temp.Add(&scaled)
		}

		// add point from u isoline
		temp.Scale(vBasisVals[l])
		position.Add(&temp)
	}

	return position
}
