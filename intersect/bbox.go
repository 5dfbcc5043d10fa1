package intersect

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

// The zero value for BoundingBox is ready to use
type BoundingBox struct {
	Min, Max    vec3.T
	initialized bool
}

// NewBoundingBox is the smallest box containing pts.
func NewBoundingBox(pts ...vec3.T) *BoundingBox {
	return new(BoundingBox).AddRange(pts)
}

// Adds a point to the bounding box, expanding the bounding box if the point is outside of it.
// If the bounding box is not initialized, this method has that side effect.
//
// **returns**
// + This BoundingBox for chaining
func (this *BoundingBox) Add(point *vec3.T) *BoundingBox {
	if !this.initialized {
		this.Min, this.Max = *point, *point
		this.initialized = true

		return this
	}

	for i, val := range point {
		if val > this.Max[i] {
			this.Max[i] = val
		}
		if val < this.Min[i] {
			this.Min[i] = val
		}
	}

	return this
}

// Add a slice of points to the bounding box
//
// **returns**
// + this BoundingBox for chaining
func (this *BoundingBox) AddRange(points []vec3.T) *BoundingBox {
	for i := range points {
		this.Add(&points[i])
	}

	return this
}

// Union grows the box to contain bb as well.
func (this *BoundingBox) Union(bb *BoundingBox) *BoundingBox {
	if !bb.initialized {
		return this
	}

	return this.Add(&bb.Min).Add(&bb.Max)
}

func (this *BoundingBox) IsEmpty() bool {
	return !this.initialized
}

// Determines if point is contained in the bounding box
//
// **params**
// + the point
// + the tolerance
//
// **returns**
// + true if the point is inside the box grown by tol
func (this *BoundingBox) Contains(point *vec3.T, tol float64) bool {
	if !this.initialized {
		return false
	}

	return this.Intersects(new(BoundingBox).Add(point), tol)
}

// Determines if two intervals on the real number line overlap once both are grown by tol
func intervalsOverlap(a1, a2, b1, b2 float64, tol float64) bool {
	x1, x2 := math.Min(a1, a2)-tol, math.Max(a1, a2)+tol
	y1, y2 := math.Min(b1, b2), math.Max(b1, b2)

	return x1 <= y2 && y1 <= x2
}

// Determines if this bounding box intersects with another
//
// **params**
// + BoundingBox to check for intersection with this one
// + the tolerance
//
// **returns**
// + true if the two bounding boxes intersect, otherwise false
func (this *BoundingBox) Intersects(bb *BoundingBox, tol float64) bool {
	if !this.initialized || !bb.initialized {
		return false
	}

	a1, a2, b1, b2 := this.Min, this.Max, bb.Min, bb.Max

	for i := range this.Min {
		if !intervalsOverlap(a1[i], a2[i], b1[i], b2[i], tol) {
			return false
		}
	}

	return true
}

// Get longest axis of bounding box
//
// **returns**
// + Index of longest axis
func (this *BoundingBox) LongestAxis() int {
	id, max := 0, 0.0

	for i := range this.Min {
		l := this.AxisLength(i)
		if l > max {
			max = l
			id = i
		}
	}

	return id
}

// Get length of given axis.
//
// **params**
// + Index of axis to inspect (between 0 and 2)
//
// **returns**
// + Length of the given axis.  If axis is out of bounds, returns 0.
func (this *BoundingBox) AxisLength(i int) float64 {
	if i < 0 || i > len(this.Min)-1 {
		return 0
	}
	return math.Abs(this.Min[i] - this.Max[i])
}

// Diagonal length of the box, 0 when empty.
func (this *BoundingBox) Diagonal() float64 {
	if !this.initialized {
		return 0
	}
	return vec3.Distance(&this.Min, &this.Max)
}

// Compute the boolean intersection of this with another axis-aligned bounding box.  If the two
// bounding boxes do not intersect, returns nil.
//
// **params**
// + BoundingBox to intersect with
// + the tolerance
//
// **returns**
// + The bounding box formed by the intersection or nil if there is no intersection.
func (this *BoundingBox) Intersect(bb *BoundingBox, tol float64) *BoundingBox {
	if !this.Intersects(bb, tol) {
		return nil
	}

	var maxbb, minbb vec3.T
	for i := range this.Min {
		maxbb[i] = math.Min(this.Max[i], bb.Max[i])
		minbb[i] = math.Max(this.Min[i], bb.Min[i])
	}

	return new(BoundingBox).Add(&minbb).Add(&maxbb)
}
