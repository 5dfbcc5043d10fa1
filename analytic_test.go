package curvex

import (
	"math"
	"testing"

	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestLine(t *testing.T) {
	line := NewLine(vec3.T{1, 1, 0}, vec3.T{4, 5, 0})

	assertVecInDelta(t, vec3.T{2.5, 3, 0}, line.Point(0.5), 1e-12)
	ders := line.Derivatives(0.2, 2)
	require.Len(t, ders, 3)
	assert.Equal(t, vec3.T{3, 4, 0}, ders[1])
	assert.Equal(t, vec3.T{}, ders[2])
	assert.InDelta(t, 5, line.Length(), 1e-12)

	lo, hi := line.Bounds(0.25, 0.75)
	assertVecInDelta(t, vec3.T{1.75, 2, 0}, lo, 1e-12)
	assertVecInDelta(t, vec3.T{3.25, 4, 0}, hi, 1e-12)

	_, err := NewLineRange(vec3.T{}, vec3.T{}, 0, 1)
	assert.Error(t, err)
	_, err = NewLineRange(vec3.T{}, vec3.T{1, 0, 0}, 1, 1)
	assert.Error(t, err)
}

func TestEllipseArc(t *testing.T) {
	circle, err := NewEllipse(vec3.T{1, 1, 0}, vec3.T{2, 0, 0}, vec3.T{0, 2, 0})
	require.NoError(t, err)
	require.True(t, circle.IsPeriodic())
	require.True(t, circle.IsClosed())

	for _, u := range []float64{0, 0.7, 2, 4.5} {
		ders := circle.Derivatives(u, 3)
		radial := vec3.Sub(&ders[0], &circle.Center)
		assert.InDelta(t, 2, radial.Length(), 1e-12)

		// second derivative points back at the center, third is minus the first
		assertVecInDelta(t, radial.Scaled(-1), ders[2], 1e-12)
		assertVecInDelta(t, ders[1].Scaled(-1), ders[3], 1e-12)
	}

	arc, err := NewEllipseArc(vec3.T{}, vec3.T{1, 0, 0}, vec3.T{0, 1, 0}, 0, s1.Angle(math.Pi/2))
	require.NoError(t, err)
	assert.False(t, arc.IsPeriodic())
	assert.False(t, arc.IsClosed())

	_, err = NewEllipseArc(vec3.T{}, vec3.T{1, 0, 0}, vec3.T{2, 0, 0}, 0, 1)
	assert.Error(t, err)
	_, err = NewEllipseArc(vec3.T{}, vec3.T{1, 0, 0}, vec3.T{0, 1, 0}, 1, 1)
	assert.Error(t, err)
}

func TestEllipseArcBounds(t *testing.T) {
	circle, err := NewEllipse(vec3.T{1, 1, 0}, vec3.T{2, 0, 0}, vec3.T{0, 2, 0})
	require.NoError(t, err)

	lo, hi := circle.Bounds(circle.Domain())
	assertVecInDelta(t, vec3.T{-1, -1, 0}, lo, 1e-12)
	assertVecInDelta(t, vec3.T{3, 3, 0}, hi, 1e-12)

	// the second quadrant only reaches the top of the circle and its left side
	lo, hi = circle.Bounds(math.Pi/2, math.Pi)
	assertVecInDelta(t, vec3.T{-1, 1, 0}, lo, 1e-12)
	assertVecInDelta(t, vec3.T{1, 3, 0}, hi, 1e-12)

	// through the seam
	lo, hi = circle.Bounds(-math.Pi/4, math.Pi/4)
	assert.InDelta(t, 3, hi[0], 1e-12)
	assert.InDelta(t, 1+math.Sqrt2, lo[0], 1e-12)

	// a tilted ellipse: the box is tight on every axis
	ellipse, err := NewEllipse(vec3.T{}, vec3.T{3, 0, 4}, vec3.T{0, 1, 0})
	require.NoError(t, err)
	lo, hi = ellipse.Bounds(ellipse.Domain())
	assertVecInDelta(t, vec3.T{-3, -1, -4}, lo, 1e-12)
	assertVecInDelta(t, vec3.T{3, 1, 4}, hi, 1e-12)
}

func TestTrimmed(t *testing.T) {
	circle, err := NewEllipse(vec3.T{}, vec3.T{1, 0, 0}, vec3.T{0, 1, 0})
	require.NoError(t, err)

	// through the seam of the periodic base
	arc, err := NewTrimmed(circle, 3*math.Pi/2, 5*math.Pi/2)
	require.NoError(t, err)
	assert.False(t, arc.IsPeriodic())
	assert.False(t, arc.IsClosed())
	assertVecInDelta(t, vec3.T{1, 0, 0}, arc.Point(2*math.Pi), 1e-12)
	assert.Same(t, circle, arc.Base())

	full, err := NewTrimmed(circle, 1, 1+2*math.Pi)
	require.NoError(t, err)
	assert.True(t, full.IsClosed())

	_, err = NewTrimmed(circle, 0, 7)
	assert.Error(t, err)

	line := NewLine(vec3.T{}, vec3.T{1, 0, 0})
	_, err = NewTrimmed(line, 0.5, 1.5)
	assert.Error(t, err)
	_, err = NewTrimmed(line, 0.5, 0.5)
	assert.Error(t, err)
}

func TestPeriodHelpers(t *testing.T) {
	circle, err := NewEllipse(vec3.T{}, vec3.T{1, 0, 0}, vec3.T{0, 1, 0})
	require.NoError(t, err)
	line := NewLine(vec3.T{}, vec3.T{1, 0, 0})

	assert.InDelta(t, 2*math.Pi, Period(circle), 1e-15)
	assert.Equal(t, 0.0, Period(line))

	assert.InDelta(t, 1, Reduce(circle, 1+4*math.Pi), 1e-12)
	assert.InDelta(t, 2*math.Pi-1, Reduce(circle, -1), 1e-12)
	assert.Equal(t, 3.0, Reduce(line, 3))

	assert.True(t, InDomain(circle, -100))
	assert.True(t, InDomain(line, 1+1e-12))
	assert.False(t, InDomain(line, 1.01))
	assert.False(t, InDomain(circle, math.NaN()))
}

func TestClosestParam(t *testing.T) {
	circle, err := NewEllipse(vec3.T{}, vec3.T{1, 0, 0}, vec3.T{0, 1, 0})
	require.NoError(t, err)

	assert.InDelta(t, math.Pi/4, ClosestParam(circle, vec3.T{2, 2, 0}), 1e-9)
	assert.InDelta(t, 3*math.Pi/2, ClosestParam(circle, vec3.T{0, -3, 1}), 1e-9)

	crv := parabola(t)
	assert.InDelta(t, 0.5, ClosestParam(crv, vec3.T{1, 3, 0}), 1e-9)

	// beyond the end of an open curve
	assert.Equal(t, 1.0, ProjectFrom(crv, vec3.T{5, -1, 0}, 0.9))
}

func TestProjectFromWrapsOnPeriodicCurves(t *testing.T) {
	circle, err := NewEllipse(vec3.T{}, vec3.T{1, 0, 0}, vec3.T{0, 1, 0})
	require.NoError(t, err)

	u := ProjectFrom(circle, vec3.T{1, -0.1, 0}, 0.05)
	assert.InDelta(t, 2*math.Pi-math.Atan(0.1), u, 1e-9)
}

func TestArcLength(t *testing.T) {
	circle, err := NewEllipse(vec3.T{}, vec3.T{2, 0, 0}, vec3.T{0, 2, 0})
	require.NoError(t, err)

	assert.InDelta(t, 4*math.Pi, ArcLength(circle, 0, 2*math.Pi), 1e-9)
	assert.InDelta(t, -math.Pi, ArcLength(circle, math.Pi/2, 0), 1e-9)
	assert.Equal(t, 0.0, ArcLength(circle, 1, 1))
}

func TestBinomial(t *testing.T) {
	assert.Equal(t, 1.0, binomial(5, 0))
	assert.Equal(t, 10.0, binomial(5, 2))
	assert.Equal(t, 10.0, binomial(5, 3))
	assert.Equal(t, 252.0, binomial(10, 5))
}
