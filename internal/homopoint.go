package internal

import "github.com/ungerik/go3d/float64/vec3"

// HomoPoint is a control point in homogeneous (projective) form (w*p, w).
type HomoPoint struct {
	Vec3 vec3.T
	W    float64
}

// Add pt in place
//
// **returns**
// + this HomoPoint for chaining
func (this *HomoPoint) Add(pt *HomoPoint) *HomoPoint {
	this.Vec3.Add(&pt.Vec3)
	this.W += pt.W
	return this
}

// Scale in place, weight included
func (this *HomoPoint) Scale(s float64) *HomoPoint {
	this.Vec3.Scale(s)
	this.W *= s
	return this
}

func (this HomoPoint) Scaled(s float64) HomoPoint {
	return HomoPoint{Vec3: this.Vec3.Scaled(s), W: this.W * s}
}

// Dehomogenized is the cartesian point p of (w*p, w).
func (this *HomoPoint) Dehomogenized() vec3.T {
	return this.Vec3.Scaled(1 / this.W)
}

func Homogenized(pt vec3.T, w float64) HomoPoint {
	return HomoPoint{Vec3: pt.Scaled(w), W: w}
}

// HomoInterpolated returns (1-t)*hpt0 + t*hpt1, weights included.
func HomoInterpolated(hpt0, hpt1 *HomoPoint, t float64) HomoPoint {
	return HomoPoint{
		Vec3: vec3.Interpolate(&hpt0.Vec3, &hpt1.Vec3, t),
		W:    (1-t)*hpt0.W + t*hpt1.W,
	}
}

// Homogenize1d pairs each point with its weight. pts and weights have the same length.
func Homogenize1d(pts []vec3.T, weights []float64) []HomoPoint {
	res := make([]HomoPoint, len(pts))
	for i := range pts {
		res[i] = Homogenized(pts[i], weights[i])
	}
	return res
}

func Homogenize2d(pts [][]vec3.T, weights [][]float64) [][]HomoPoint {
	res := make([][]HomoPoint, len(pts))
	for i := range pts {
		res[i] = Homogenize1d(pts[i], weights[i])
	}
	return res
}

func Dehomogenize1d(hpts []HomoPoint) []vec3.T {
	return mapPoints(hpts, (*HomoPoint).Dehomogenized)
}

func Dehomogenize2d(hpts [][]HomoPoint) [][]vec3.T {
	return mapRows(hpts, Dehomogenize1d)
}

// Weight1d collects the weights of hpts.
func Weight1d(hpts []HomoPoint) []float64 {
	return mapPoints(hpts, func(p *HomoPoint) float64 { return p.W })
}

func Weight2d(hpts [][]HomoPoint) [][]float64 {
	return mapRows(hpts, Weight1d)
}

func mapPoints[T any](hpts []HomoPoint, f func(*HomoPoint) T) []T {
	res := make([]T, len(hpts))
	for i := range hpts {
		res[i] = f(&hpts[i])
	}
	return res
}

func mapRows[T any](rows [][]HomoPoint, f func([]HomoPoint) T) []T {
	res := make([]T, len(rows))
	for i, row := range rows {
		res[i] = f(row)
	}
	return res
}
