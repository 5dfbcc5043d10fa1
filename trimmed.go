package curvex

import (
	"github.com/cockroachdb/errors"
	"github.com/ungerik/go3d/float64/vec3"
)

// Trimmed restricts a curve to a parameter sub-range. The view is never periodic.
// On a periodic base curve the range may run through the seam, up to one period long.
type Trimmed struct {
	base     Curve
	min, max float64
}

func NewTrimmed(base Curve, min, max float64) (*Trimmed, error) {
	if !(max > min) {
		return nil, errors.Newf("empty trim range [%v, %v]", min, max)
	}

	if base.IsPeriodic() {
		if max-min > Period(base)*(1+1e-12) {
			return nil, errors.Newf("trim range [%v, %v] longer than the period", min, max)
		}
	} else if !InDomain(base, min) || !InDomain(base, max) {
		lo, hi := base.Domain()
		return nil, errors.Newf("trim range [%v, %v] outside domain [%v, %v]", min, max, lo, hi)
	}

	return &Trimmed{base, min, max}, nil
}

// Base curve the view is cut from. Parameters are shared with it.
func (this *Trimmed) Base() Curve {
	return this.base
}

func (this *Trimmed) Point(u float64) vec3.T {
	return this.base.Point(u)
}

func (this *Trimmed) Derivatives(u float64, numDerivs int) []vec3.T {
	return this.base.Derivatives(u, numDerivs)
}

func (this *Trimmed) Domain() (min, max float64) {
	return this.min, this.max
}

func (this *Trimmed) IsPeriodic() bool {
	return false
}

func (this *Trimmed) IsClosed() bool {
	return closedEnds(this, 1)
}

func (this *Trimmed) FitTolerance() float64 {
	return this.base.FitTolerance()
}
