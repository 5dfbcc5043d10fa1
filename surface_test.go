package curvex_test

import (
	"math"
	"testing"

	"github.com/alexozer/curvex"
	"github.com/alexozer/curvex/make"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

func cylinder() *curvex.NurbsSurface {
	return make.CylindricalSurface(&vec3.T{0, 0, 1}, &vec3.T{1, 0, 0}, &vec3.T{}, 2, 1)
}

func assertVecNear(t *testing.T, expected, actual vec3.T, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDeltaSlice(t, expected[:], actual[:], delta, msgAndArgs...)
}

func TestCylindricalSurfacePoint(t *testing.T) {
	srf := cylinder()
	assert.Equal(t, []float64{0, 0, 0, 1, 1, 1}, srf.KnotsU())
	assert.Equal(t, []float64{0, 0, 0, 0.25, 0.25, 0.5, 0.5, 0.75, 0.75, 1, 1, 1}, srf.KnotsV())

	for _, u := range []float64{0, 0.2, 0.5, 1} {
		for _, v := range []float64{0, 0.1, 0.25, 0.6, 0.9} {
			p := srf.Point(curvex.UV{u, v})
			assert.InDelta(t, 1, math.Hypot(p[0], p[1]), 1e-12, "u=%v v=%v", u, v)
			assert.InDelta(t, 2*(1-u), p[2], 1e-12, "u=%v v=%v", u, v)
		}
	}
}

func TestSurfaceDerivatives(t *testing.T) {
	srf := cylinder()
	const h = 1e-6
	uv := curvex.UV{0.3, 0.6}

	ders := srf.Derivatives(uv, 2)
	require.Len(t, ders, 3)
	require.Len(t, ders[0], 3)
	require.Len(t, ders[2], 1)

	pu0, pu1 := srf.Point(curvex.UV{uv[0] - h, uv[1]}), srf.Point(curvex.UV{uv[0] + h, uv[1]})
	pv0, pv1 := srf.Point(curvex.UV{uv[0], uv[1] - h}), srf.Point(curvex.UV{uv[0], uv[1] + h})
	du, dv := vec3.Sub(&pu1, &pu0), vec3.Sub(&pv1, &pv0)

	assertVecNear(t, srf.Point(uv), ders[0][0], 1e-12)
	assertVecNear(t, du.Scaled(1/(2*h)), ders[1][0], 1e-5)
	assertVecNear(t, dv.Scaled(1/(2*h)), ders[0][1], 1e-5)

	// straight along u
	assertVecNear(t, vec3.T{}, ders[2][0], 1e-9)
}

func TestSurfaceTransform(t *testing.T) {
	srf := cylinder()

	mat := mat4.Ident
	mat.SetTranslation(&vec3.T{0, 0, 5})
	moved := srf.Transform(&mat)

	for _, uv := range []curvex.UV{{0, 0}, {0.3, 0.6}, {1, 0.9}} {
		p := srf.Point(uv)
		assertVecNear(t, vec3.T{p[0], p[1], p[2] + 5}, moved.Point(uv), 1e-12)
	}
}

func TestSurfacePatch(t *testing.T) {
	srf := cylinder()

	tests := []struct {
		name                   string
		minU, maxU, minV, maxV float64
	}{
		{"interior", 0.2, 0.7, 0.1, 0.6},
		{"on knots", 0, 1, 0.25, 0.5},
		{"thin", 0.4, 0.4001, 0.3, 0.3001},
		{"past the domain", -1, 0.5, 0.9, 2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			patch := srf.Patch(test.minU, test.maxU, test.minV, test.maxV)

			minU, maxU := patch.DomainU()
			minV, maxV := patch.DomainV()
			assert.InDelta(t, math.Max(test.minU, 0), minU, 1e-12)
			assert.InDelta(t, math.Min(test.maxU, 1), maxU, 1e-12)
			assert.InDelta(t, math.Max(test.minV, 0), minV, 1e-12)
			assert.InDelta(t, math.Min(test.maxV, 1), maxV, 1e-12)

			lo := vec3.T{math.Inf(1), math.Inf(1), math.Inf(1)}
			hi := vec3.T{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
			for _, row := range patch.ControlPoints() {
				for _, pt := range row {
					for k := range pt {
						lo[k], hi[k] = math.Min(lo[k], pt[k]), math.Max(hi[k], pt[k])
					}
				}
			}

			for i := 0; i <= 4; i++ {
				for j := 0; j <= 4; j++ {
					uv := curvex.UV{minU + (maxU-minU)*float64(i)/4, minV + (maxV-minV)*float64(j)/4}
					p := srf.Point(uv)
					assertVecNear(t, p, patch.Point(uv), 1e-12, "uv=%v", uv)

					for k := range p {
						assert.GreaterOrEqual(t, p[k], lo[k]-1e-12)
						assert.LessOrEqual(t, p[k], hi[k]+1e-12)
					}
				}
			}
		})
	}
}

func TestNewNurbsSurfaceCheck(t *testing.T) {
	pts := [][]vec3.T{{{0, 0, 0}, {1, 0, 0}}, {{0, 1, 0}, {1, 1, 0}}}
	weights := [][]float64{{1, 1}, {1, 1}}

	_, err := curvex.NewNurbsSurface(1, 1, pts, weights, []float64{0, 0, 1, 1}, []float64{0, 0, 1, 1})
	require.NoError(t, err)

	_, err = curvex.NewNurbsSurface(1, 1, pts, weights, []float64{0, 0, 1, 1}, []float64{0, 0, 1})
	assert.Error(t, err)

	_, err = curvex.NewNurbsSurface(1, 1, pts, weights, []float64{-1, 0, 1, 2}, []float64{0, 0, 1, 1})
	assert.Error(t, err)

	ragged := [][]vec3.T{{{0, 0, 0}, {1, 0, 0}}, {{0, 1, 0}}}
	_, err = curvex.NewNurbsSurface(1, 1, ragged, weights, []float64{0, 0, 1, 1}, []float64{0, 0, 1, 1})
	assert.Error(t, err)
}

func TestSurfaceCurve(t *testing.T) {
	srf := cylinder()
	pcurve := make.Line(&vec3.T{0.1, 0.1, 0}, &vec3.T{0.9, 0.8, 0})

	crv, err := curvex.NewSurfaceCurve(srf, pcurve, 1e-7)
	require.NoError(t, err)
	assert.Equal(t, 1e-7, crv.FitTolerance())
	assert.False(t, crv.IsPeriodic())
	assert.False(t, crv.IsClosed())
	assert.Same(t, srf, crv.Surface())
	assert.Same(t, pcurve, crv.PCurve())

	const h = 1e-5
	for _, u := range []float64{0.2, 0.5, 0.7} {
		uv := pcurve.Point(u)
		assertVecNear(t, srf.Point(curvex.UV{uv[0], uv[1]}), crv.Point(u), 1e-12)

		ders := crv.Derivatives(u, 3)
		require.Len(t, ders, 4)

		p0, p1 := crv.Point(u-h), crv.Point(u+h)
		first := vec3.Sub(&p1, &p0)
		assertVecNear(t, first.Scaled(1/(2*h)), ders[1], 1e-6, "u=%v", u)

		t0, t1 := crv.Derivatives(u-h, 1)[1], crv.Derivatives(u+h, 1)[1]
		second := vec3.Sub(&t1, &t0)
		assertVecNear(t, second.Scaled(1/(2*h)), ders[2], 1e-4, "u=%v", u)

		assert.Equal(t, vec3.T{}, ders[3])
	}

	_, err = curvex.NewSurfaceCurve(nil, pcurve, 0)
	assert.Error(t, err)
}
