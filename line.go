package curvex

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/ungerik/go3d/float64/vec3"
)

// Line is the bounded line Origin + u*Dir over a parameter range.
type Line struct {
	Origin, Dir vec3.T

	min, max float64
}

// NewLine through p0 at u = 0 and p1 at u = 1.
func NewLine(p0, p1 vec3.T) *Line {
	return &Line{Origin: p0, Dir: vec3.Sub(&p1, &p0), min: 0, max: 1}
}

func NewLineRange(origin, dir vec3.T, min, max float64) (*Line, error) {
	if !(max > min) {
		return nil, errors.Newf("empty line range [%v, %v]", min, max)
	}
	if dir.LengthSqr() == 0 {
		return nil, errors.New("line direction cannot be zero")
	}

	return &Line{Origin: origin, Dir: dir, min: min, max: max}, nil
}

func (this *Line) Point(u float64) vec3.T {
	d := this.Dir.Scaled(u)
	return vec3.Add(&this.Origin, &d)
}

func (this *Line) Derivatives(u float64, numDerivs int) []vec3.T {
	ders := make([]vec3.T, numDerivs+1)
	ders[0] = this.Point(u)
	if numDerivs > 0 {
		ders[1] = this.Dir
	}
	return ders
}

func (this *Line) Domain() (min, max float64) {
	return this.min, this.max
}

func (this *Line) IsPeriodic() bool { return false }
func (this *Line) IsClosed() bool { return false }
func (this *Line) FitTolerance() float64 { return 0 }

func (this *Line) Bounds(min, max float64) (lo, hi vec3.T) {
	return minMax(this.Point(min), this.Point(max))
}

func (this *Line) Length() float64 {
	return this.Dir.Length() * math.Abs(this.max-this.min)
}
