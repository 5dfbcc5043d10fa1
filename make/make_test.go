package make

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestPolyline(t *testing.T) {
	crv := Polyline([]vec3.T{{0, 0, 0}, {3, 4, 0}, {3, 9, 0}})

	assert.Equal(t, []float64{0, 0, 0.5, 1, 1}, crv.Knots())
	p := crv.Point(0.25)
	assert.InDeltaSlice(t, []float64{1.5, 2, 0}, p[:], 1e-12)
	assert.InDelta(t, 10, crv.Length(), 1e-9)

	line := Line(&vec3.T{1, 1, 1}, &vec3.T{2, 2, 2})
	assert.Equal(t, 1, line.Degree())
	assert.InDelta(t, math.Sqrt(3), line.Length(), 1e-12)
}

func TestArc(t *testing.T) {
	center := vec3.T{1, 2, 0}

	tests := []struct {
		name       string
		start, end float64
		numPts     int
	}{
		{"quarter", 0, math.Pi / 2, 3},
		{"half", 0, math.Pi, 5},
		{"three quarters", 0.5, 0.5 + 1.4*math.Pi, 7},
		{"full", 0, 2 * math.Pi, 9},
		{"wrapped end", 1, 0, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			crv := Arc(&center, &vec3.T{2, 0, 0}, &vec3.T{0, 5, 0}, 3, tc.start, tc.end)
			require.Len(t, crv.ControlPoints(), tc.numPts)

			knots := crv.Knots()
			assert.True(t, knotsNonDecreasing(knots))

			for i := 0; i <= 16; i++ {
				p := crv.Point(float64(i) / 16)
				r := vec3.Sub(&p, &center)
				assert.InDelta(t, 3, r.Length(), 1e-12)
			}

			start := crv.Point(0)
			expected := vec3.T{1 + 3*math.Cos(tc.start), 2 + 3*math.Sin(tc.start), 0}
			assert.InDeltaSlice(t, expected[:], start[:], 1e-12)
		})
	}
}

func knotsNonDecreasing(knots []float64) bool {
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			return false
		}
	}
	return true
}

func TestCircleIsClosed(t *testing.T) {
	crv := Circle(&vec3.T{}, &vec3.T{1, 0, 0}, &vec3.T{0, 1, 0}, 2)
	assert.True(t, crv.IsClosed())
	assert.False(t, crv.IsPeriodic())
	assert.InDelta(t, 4*math.Pi, crv.Length(), 1e-9)
	assert.Equal(t, []float64{0, 0, 0, 0.25, 0.25, 0.5, 0.5, 0.75, 0.75, 1, 1, 1}, crv.Knots())
}

func TestEllipse(t *testing.T) {
	crv := Ellipse(&vec3.T{}, &vec3.T{3, 0, 0}, &vec3.T{0, 1, 0})

	for i := 0; i <= 32; i++ {
		p := crv.Point(float64(i) / 32)
		assert.InDelta(t, 1, p[0]*p[0]/9+p[1]*p[1], 1e-12)
	}
}

func TestBezierCurve(t *testing.T) {
	crv := BezierCurve([]vec3.T{{0, 0, 0}, {1, 2, 0}, {2, 2, 0}, {3, 0, 0}})

	assert.Equal(t, 3, crv.Degree())
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 1, 1, 1}, crv.Knots())

	p := crv.Point(0.5)
	assert.InDeltaSlice(t, []float64{1.5, 1.5, 0}, p[:], 1e-12)
}

func TestPeriodicCurve(t *testing.T) {
	pts := []vec3.T{{2, 0, 0}, {0, 1, 0}, {-2, 0, 0}, {0, -1, 0}}

	crv, err := PeriodicCurve(3, pts, nil)
	require.NoError(t, err)
	require.True(t, crv.IsPeriodic())

	min, max := crv.Domain()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 4.0, max)

	// smooth across the seam up to the second derivative
	d0, d1 := crv.Derivatives(min, 2), crv.Derivatives(max, 2)
	for k := range d0 {
		assert.InDeltaSlice(t, d0[k][:], d1[k][:], 1e-12, "derivative %d", k)
	}

	_, err = PeriodicCurve(3, pts[:3], nil)
	assert.Error(t, err)
	_, err = PeriodicCurve(0, pts, nil)
	assert.Error(t, err)
	_, err = PeriodicCurve(2, pts, []float64{1, 1})
	assert.Error(t, err)
}

func TestFourPointSurface(t *testing.T) {
	srf := FourPointSurface(&vec3.T{0, 0, 0}, &vec3.T{1, 0, 0}, &vec3.T{1, 1, 1}, &vec3.T{0, 1, 0}, 0)
	assert.Equal(t, 3, srf.DegreeU())
	assert.Equal(t, 3, srf.DegreeV())

	corners := map[vec3.T]bool{}
	for _, u := range []float64{0, 1} {
		for _, v := range []float64{0, 1} {
			p := srf.Point([2]float64{u, v})
			corners[vec3.T{math.Round(p[0]), math.Round(p[1]), math.Round(p[2])}] = true
		}
	}
	assert.Len(t, corners, 4)
	assert.True(t, corners[vec3.T{1, 1, 1}])

	// a bilinear patch: the center is the average of the corners
	center := srf.Point([2]float64{0.5, 0.5})
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.25}, center[:], 1e-12)
}

func TestExtrudedSurface(t *testing.T) {
	profile := BezierCurve([]vec3.T{{0, 0, 0}, {1, 1, 0}, {2, 0, 0}})
	srf := ExtrudedSurface(&vec3.T{0, 0, 1}, 3, profile)

	for _, u := range []float64{0, 0.5, 1} {
		for _, v := range []float64{0, 0.3, 1} {
			p, q := srf.Point([2]float64{u, v}), profile.Point(v)
			assert.InDeltaSlice(t, []float64{q[0], q[1], 3 * (1 - u)}, p[:], 1e-12)
		}
	}
}
