package curvex

import (
	"github.com/cockroachdb/errors"
	"github.com/ungerik/go3d/float64/vec3"
)

// SurfaceCurve is a curve carried on a surface: a parameter space curve whose x and y
// coordinates are surface (u, v) parameters, mapped through the surface.
// Derivatives of order three and above are reported as zero.
type SurfaceCurve struct {
	surface *NurbsSurface
	pcurve  *NurbsCurve
	fitTol  float64
}

func NewSurfaceCurve(surface *NurbsSurface, pcurve *NurbsCurve, fitTol float64) (*SurfaceCurve, error) {
	if surface == nil || pcurve == nil {
		return nil, errors.New("surface curve needs a surface and a parameter space curve")
	}
	if fitTol < 0 {
		return nil, errors.Newf("negative fit tolerance %v", fitTol)
	}

	return &SurfaceCurve{surface, pcurve, fitTol}, nil
}

func (this *SurfaceCurve) Surface() *NurbsSurface {
	return this.surface
}

func (this *SurfaceCurve) PCurve() *NurbsCurve {
	return this.pcurve
}

func (this *SurfaceCurve) Point(u float64) vec3.T {
	uv := this.pcurve.Point(u)
	return this.surface.Point(UV{uv[0], uv[1]})
}

// Derivatives by the chain rule through the surface:
//
//	C'  = Su u' + Sv v'
//	C'' = Suu u'^2 + 2 Suv u' v' + Svv v'^2 + Su u'' + Sv v''
func (this *SurfaceCurve) Derivatives(u float64, numDerivs int) []vec3.T {
	ders := make([]vec3.T, numDerivs+1)

	p := this.pcurve.Derivatives(u, 2)
	s := this.surface.Derivatives(UV{p[0][0], p[0][1]}, 2)
	ders[0] = s[0][0]

	if numDerivs >= 1 {
		du, dv := s[1][0].Scaled(p[1][0]), s[0][1].Scaled(p[1][1])
		ders[1] = vec3.Add(&du, &dv)
	}

	if numDerivs >= 2 {
		u1, v1, u2, v2 := p[1][0], p[1][1], p[2][0], p[2][1]

		terms := []vec3.T{
			s[2][0].Scaled(u1 * u1),
			s[1][1].Scaled(2 * u1 * v1),
			s[0][2].Scaled(v1 * v1),
			s[1][0].Scaled(u2),
			s[0][1].Scaled(v2),
		}
		for i := range terms {
			ders[2].Add(&terms[i])
		}
	}

	return ders
}

func (this *SurfaceCurve) Domain() (min, max float64) {
	return this.pcurve.Domain()
}

func (this *SurfaceCurve) IsPeriodic() bool {
	return this.pcurve.IsPeriodic()
}

func (this *SurfaceCurve) IsClosed() bool {
	if this.pcurve.IsPeriodic() {
		return true
	}
	return closedEnds(this, 1)
}

func (this *SurfaceCurve) FitTolerance() float64 {
	return this.fitTol
}
