package internal

import "github.com/ungerik/go3d/float64/vec3"

// Ray is an infinite line through Origin along Dir. Dir need not be normalized.
type Ray struct {
	Origin, Dir vec3.T
}

// Parameter t of the point Origin + t*Dir closest to pt.
// A zero direction yields 0.
func (this Ray) ClosestParam(pt vec3.T) float64 {
	dd := vec3.Dot(&this.Dir, &this.Dir)
	if dd < Epsilon*Epsilon {
		return 0
	}

	o2pt := vec3.Sub(&pt, &this.Origin)
	return vec3.Dot(&o2pt, &this.Dir) / dd
}

// Find the closest point on a ray
//
// **params**
// + point to project
//
// **returns**
// + pt
func (this Ray) ClosestPoint(pt vec3.T) vec3.T {
	dirScaled := this.Dir.Scaled(this.ClosestParam(pt))
	return vec3.Add(&this.Origin, &dirScaled)
}
