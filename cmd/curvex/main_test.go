package main

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/alexozer/curvex"
	"github.com/alexozer/curvex/intersect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestParseInput(t *testing.T) {
	data := []byte(`{"curves": [
		{"type": "nurbs", "degree": 2, "points": [[0,0,0], [1,2,0], [2,0,0]], "knots": [0,0,0,1,1,1]},
		{"type": "line", "from": [0,1,0], "to": [2,1,0]},
		{"type": "polyline", "points": [[0,0,0], [1,0,0], [1,1,0]]},
		{"type": "periodic", "degree": 2, "points": [[1,0,0], [0,1,0], [-1,0,0], [0,-1,0]]},
		{"type": "circle", "center": [0,0,0], "xAxis": [1,0,0], "yAxis": [0,1,0], "radius": 2},
		{"type": "ellipse", "center": [0,0,0], "xAxis": [2,0,0], "yAxis": [0,1,0]},
		{"type": "ellipse", "center": [0,0,0], "xAxis": [1,0,0], "yAxis": [0,1,0], "trim": [0, 1]},
		{"type": "nurbs", "degree": 1, "points": [[0,0,0], [1,0,0]], "knots": [0,0,1,1], "fitTolerance": 0.01}
	]}`)

	crvs, err := parseInput(data)
	require.NoError(t, err)
	require.Len(t, crvs, 8)

	nurbs, ok := crvs[0].(*curvex.NurbsCurve)
	require.True(t, ok)
	assert.Equal(t, 2, nurbs.Degree())
	p := nurbs.Point(0.5)
	assert.InDeltaSlice(t, []float64{1, 1, 0}, p[:], 1e-12)

	_, ok = crvs[1].(*curvex.Line)
	assert.True(t, ok)

	min, max := crvs[2].Domain()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 1.0, max)

	assert.True(t, crvs[3].IsPeriodic())

	circle := crvs[4]
	assert.True(t, circle.IsClosed())
	for _, u := range []float64{0, 0.3, 0.5, 0.8} {
		p := circle.Point(u)
		assert.InDelta(t, 2, p.Length(), 1e-12)
	}

	ellipse, ok := crvs[5].(*curvex.EllipseArc)
	require.True(t, ok)
	assert.True(t, ellipse.IsPeriodic())

	trimmed, ok := crvs[6].(*curvex.Trimmed)
	require.True(t, ok)
	min, max = trimmed.Domain()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 1.0, max)

	assert.Equal(t, 0.01, crvs[7].FitTolerance())
}

func TestParseInputErrors(t *testing.T) {
	tests := []struct {
		name, data, expected string
	}{
		{"syntax", `{"curves": [`, "decode input"},
		{"unknown type", `{"curves": [{"type": "spiral"}]}`, `curve 0: unknown curve type "spiral"`},
		{"bad knots", `{"curves": [{"type": "nurbs", "degree": 2, "points": [[0,0,0], [1,0,0], [2,0,0]], "knots": [0,0,1,1]}]}`, "curve 0"},
		{"short polyline", `{"curves": [{"type": "polyline", "points": [[0,0,0]]}]}`, "polyline needs at least 2 points"},
		{"point line", `{"curves": [{"type": "line", "from": [1,1,1], "to": [1,1,1]}]}`, "coincide"},
		{"zero radius", `{"curves": [{"type": "circle", "xAxis": [1,0,0], "yAxis": [0,1,0]}]}`, "radius"},
		{"periodic degree", `{"curves": [{"type": "line", "from": [0,0,0], "to": [1,0,0]}, {"type": "periodic", "degree": 3, "points": [[0,0,0], [1,0,0]]}]}`, "curve 1: periodic curve"},
		{"trim outside", `{"curves": [{"type": "line", "from": [0,0,0], "to": [1,0,0], "trim": [0.5, 2]}]}`, "trim range"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseInput([]byte(tc.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expected)
		})
	}
}

func TestParseBox(t *testing.T) {
	box, err := parseBox("0, 0, 0, 1,2,3")
	require.NoError(t, err)
	assert.Equal(t, vec3.T{0, 0, 0}, box.Min)
	assert.Equal(t, vec3.T{1, 2, 3}, box.Max)

	box, err = parseBox("1,1,1,-1,-1,-1")
	require.NoError(t, err)
	assert.Equal(t, vec3.T{-1, -1, -1}, box.Min)

	_, err = parseBox("1,2,3")
	assert.Error(t, err)

	_, err = parseBox("1,2,3,4,5,x")
	assert.Error(t, err)
}

func TestIntersectOptions(t *testing.T) {
	opts, err := (&Intersect{}).options()
	require.NoError(t, err)
	assert.Nil(t, opts.Tolerance)
	assert.Nil(t, opts.SearchBox)
	assert.NotNil(t, opts.Stats)

	opts, err = (&Intersect{Angle: 0.01, Box: "0,0,0,1,1,1"}).options()
	require.NoError(t, err)
	require.NotNil(t, opts.Tolerance)
	assert.Equal(t, intersect.DefaultTolerance, opts.Tolerance.Linear)
	assert.InDelta(t, 0.01, opts.Tolerance.Angular.Radians(), 1e-15)
	assert.NotNil(t, opts.SearchBox)

	_, err = (&Intersect{Tol: -1}).options()
	assert.Error(t, err)
}

func TestWriteIntersections(t *testing.T) {
	a := curvex.NewLine(vec3.T{0, 0, 0}, vec3.T{2, 2, 0})
	b := curvex.NewLine(vec3.T{0, 2, 0}, vec3.T{2, 0, 0})

	var buf bytes.Buffer
	writeIntersections(&buf, intersect.Curves(a, b, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	fields := strings.Split(lines[0], "\t")
	require.Len(t, fields, 6)
	assert.Equal(t, "transversal", fields[0])
	assert.Equal(t, "", fields[1])
	assert.True(t, strings.HasPrefix(fields[2], "0.5"), fields[2])
	assert.True(t, strings.HasPrefix(fields[4], "1 1 0"), fields[4])

	buf.Reset()
	writeIntersections(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestLengthOfInputCurves(t *testing.T) {
	crvs, err := parseInput([]byte(`{"curves": [
		{"type": "circle", "xAxis": [1,0,0], "yAxis": [0,1,0], "radius": 1},
		{"type": "line", "from": [0,0,0], "to": [3,4,0]},
		{"type": "polyline", "points": [[0,0,0], [1,0,0], [1,2,0]]},
		{"type": "ellipse", "xAxis": [2,0,0], "yAxis": [0,2,0]}
	]}`))
	require.NoError(t, err)
	require.Len(t, crvs, 4)

	expected := []float64{2 * math.Pi, 5, 3, 4 * math.Pi}
	for i, c := range crvs {
		assert.InDelta(t, expected[i], curveLength(c), 1e-6, "curve %d", i)
	}
}
