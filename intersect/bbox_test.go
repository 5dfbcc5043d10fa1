package intersect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestBoundingBoxAdd(t *testing.T) {
	var bb BoundingBox
	assert.True(t, bb.IsEmpty())
	assert.Equal(t, 0.0, bb.Diagonal())

	bb.Add(&vec3.T{1, 2, 3}).Add(&vec3.T{-1, 5, 3})
	assert.False(t, bb.IsEmpty())
	assert.Equal(t, vec3.T{-1, 2, 3}, bb.Min)
	assert.Equal(t, vec3.T{1, 5, 3}, bb.Max)
	assert.Equal(t, 1, bb.LongestAxis())
	assert.Equal(t, 2.0, bb.AxisLength(0))
	assert.Equal(t, 0.0, bb.AxisLength(3))
	assert.InDelta(t, 3.605551275463989, bb.Diagonal(), 1e-12)
}

func TestBoundingBoxIntersects(t *testing.T) {
	a := NewBoundingBox(vec3.T{0, 0, 0}, vec3.T{1, 1, 1})

	tests := []struct {
		name     string
		b        *BoundingBox
		tol      float64
		expected bool
	}{
		{"overlapping", NewBoundingBox(vec3.T{0.5, 0.5, 0.5}, vec3.T{2, 2, 2}), 0, true},
		{"touching", NewBoundingBox(vec3.T{1, 0, 0}, vec3.T{2, 1, 1}), 0, true},
		{"inside", NewBoundingBox(vec3.T{0.2, 0.2, 0.2}, vec3.T{0.3, 0.3, 0.3}), 0, true},
		{"apart", NewBoundingBox(vec3.T{1.1, 0, 0}, vec3.T{2, 1, 1}), 0, false},
		{"apart within tolerance", NewBoundingBox(vec3.T{1.1, 0, 0}, vec3.T{2, 1, 1}), 0.2, true},
		{"apart in one axis", NewBoundingBox(vec3.T{0, 0, 1.5}, vec3.T{1, 1, 2}), 0.2, false},
		{"empty", new(BoundingBox), 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, a.Intersects(tc.b, tc.tol))
			assert.Equal(t, tc.expected, tc.b.Intersects(a, tc.tol))
		})
	}
}

func TestBoundingBoxContains(t *testing.T) {
	bb := NewBoundingBox(vec3.T{0, 0, 0}, vec3.T{1, 1, 1})

	assert.True(t, bb.Contains(&vec3.T{0.5, 0.5, 0.5}, 0))
	assert.True(t, bb.Contains(&vec3.T{1, 1, 1}, 0))
	assert.False(t, bb.Contains(&vec3.T{1.01, 0.5, 0.5}, 0))
	assert.True(t, bb.Contains(&vec3.T{1.01, 0.5, 0.5}, 0.1))
	assert.False(t, new(BoundingBox).Contains(&vec3.T{}, 1))
}

func TestBoundingBoxUnionIntersect(t *testing.T) {
	a := NewBoundingBox(vec3.T{0, 0, 0}, vec3.T{2, 2, 2})
	b := NewBoundingBox(vec3.T{1, 1, 1}, vec3.T{3, 3, 3})

	in := a.Intersect(b, 0)
	require.NotNil(t, in)
	assert.Equal(t, vec3.T{1, 1, 1}, in.Min)
	assert.Equal(t, vec3.T{2, 2, 2}, in.Max)

	assert.Nil(t, a.Intersect(NewBoundingBox(vec3.T{5, 5, 5}), 0))

	u := *a
	u.Union(b).Union(new(BoundingBox))
	assert.Equal(t, vec3.T{0, 0, 0}, u.Min)
	assert.Equal(t, vec3.T{3, 3, 3}, u.Max)
}
