package curvex

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/golang/geo/s1"
	"github.com/ungerik/go3d/float64/vec3"
)

// EllipseArc is Center + cos(u)*XAxis + sin(u)*YAxis for u in [Start, End].
// The axes carry the radii. An arc spanning a full turn is periodic.
type EllipseArc struct {
	Center, XAxis, YAxis vec3.T

	start, end float64
}

func NewEllipseArc(center, xaxis, yaxis vec3.T, start, end s1.Angle) (*EllipseArc, error) {
	if !(end > start) {
		return nil, errors.Newf("empty arc [%v, %v]", start, end)
	}
	if end-start > 2*math.Pi*(1+1e-12) {
		return nil, errors.Newf("arc sweeps more than a full turn: %v", end-start)
	}

	cross := vec3.Cross(&xaxis, &yaxis)
	if cross.Length() <= 1e-12*xaxis.Length()*yaxis.Length() || cross.Length() == 0 {
		return nil, errors.New("ellipse axes must be non-zero and not parallel")
	}

	return &EllipseArc{center, xaxis, yaxis, start.Radians(), end.Radians()}, nil
}

// NewEllipse is the full periodic ellipse on [0, 2*pi].
func NewEllipse(center, xaxis, yaxis vec3.T) (*EllipseArc, error) {
	return NewEllipseArc(center, xaxis, yaxis, 0, 2*math.Pi)
}

func (this *EllipseArc) Point(u float64) vec3.T {
	return this.Derivatives(u, 0)[0]
}

// the k-th derivative is cos(u + k*pi/2)*XAxis + sin(u + k*pi/2)*YAxis
func (this *EllipseArc) Derivatives(u float64, numDerivs int) []vec3.T {
	ders := make([]vec3.T, numDerivs+1)

	for k := range ders {
		s, c := math.Sincos(u + float64(k)*math.Pi/2)
		x, y := this.XAxis.Scaled(c), this.YAxis.Scaled(s)
		ders[k] = vec3.Add(&x, &y)
	}
	ders[0].Add(&this.Center)

	return ders
}

func (this *EllipseArc) Domain() (min, max float64) {
	return this.start, this.end
}

func (this *EllipseArc) IsPeriodic() bool {
	return this.end-this.start >= 2*math.Pi*(1-1e-12)
}

func (this *EllipseArc) IsClosed() bool {
	return this.IsPeriodic()
}

func (this *EllipseArc) FitTolerance() float64 { return 0 }

// Bounds over [min, max], from the ends of the range and the coordinate extrema:
// each coordinate c + x*cos(u) + y*sin(u) peaks at u = atan2(y, x) and bottoms out
// half a turn later.
func (this *EllipseArc) Bounds(min, max float64) (lo, hi vec3.T) {
	pts := []vec3.T{this.Point(min), this.Point(max)}

	for i := range this.Center {
		peak := math.Atan2(this.YAxis[i], this.XAxis[i])

		for _, u := range [2]float64{peak, peak + math.Pi} {
			// first occurrence of u at or after min
			u = min + math.Mod(u-min, 2*math.Pi)
			if u < min {
				u += 2 * math.Pi
			}

			if u <= max {
				pts = append(pts, this.Point(u))
			}
		}
	}

	return minMax(pts...)
}
