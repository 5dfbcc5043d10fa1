package intersect

import (
	"math"
	"testing"

	"github.com/alexozer/curvex"

	"github.com/golang/geo/r1"
	"github.com/stretchr/testify/assert"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestSeparated(t *testing.T) {
	circle := unitCircle(t)
	horizontal := curvex.NewLine(vec3.T{-2, 0, 0}, vec3.T{2, 0, 0})
	diagonal := curvex.NewLine(vec3.T{0, 0, 0}, vec3.T{2, 2, 0})
	along := curvex.NewLine(vec3.T{0, 1, 0}, vec3.T{4, 1, 0})

	tests := []struct {
		name     string
		c0, c1   curvex.Curve
		a, b     r1.Interval
		expected bool
	}{
		{"crossing lines", horizontal, diagonal, r1.Interval{Lo: 0, Hi: 1}, r1.Interval{Lo: 0, Hi: 1}, true},
		{"parallel lines", horizontal, along, r1.Interval{Lo: 0, Hi: 1}, r1.Interval{Lo: 0, Hi: 1}, false},
		{"whole circle", circle, horizontal, r1.Interval{Lo: 0, Hi: 2 * math.Pi}, r1.Interval{Lo: 0, Hi: 1}, false},
		{"quarter circle", circle, diagonal, r1.Interval{Lo: 0, Hi: math.Pi / 2}, r1.Interval{Lo: 0, Hi: 1}, false},
		{"steep arc", circle, horizontal, r1.Interval{Lo: -0.1, Hi: 0.1}, r1.Interval{Lo: 0.4, Hi: 0.6}, true},
		{"arc at the top", circle, horizontal, r1.Interval{Lo: math.Pi/2 - 0.1, Hi: math.Pi/2 + 0.1}, r1.Interval{Lo: 0, Hi: 1}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := newSearch(test.c0, test.c1, nil)
			i0 := &interval{curve: 0, span: test.a}
			i1 := &interval{curve: 1, span: test.b}
			assert.Equal(t, test.expected, s.separated(i0, i1))
		})
	}
}

func TestTangentCone(t *testing.T) {
	e := newEvaluator(unitCircle(t))

	axis, cos, ok := tangentCone(e, r1.Interval{Lo: -0.2, Hi: 0.2})
	assert.True(t, ok)
	assertVec(t, vec3.T{0, 1, 0}, axis, 1e-12)
	assert.InDelta(t, math.Cos(0.2), cos, 1e-12)

	// a whole loop turns every way
	_, cos, ok = tangentCone(e, e.domain)
	assert.True(t, ok)
	assert.Less(t, cos, monotoneCos)
}

func TestExtent(t *testing.T) {
	bb := NewBoundingBox(vec3.T{0, 0, 0}, vec3.T{1, 3, 2})
	assert.Equal(t, 3.0, extent(bb))
}
