package intersect

import (
	"iter"

	"github.com/ungerik/go3d/float64/vec3"
)

// Relation tags what kind of meeting an Intersection records.
type Relation int

const (
	// Transversal is a simple crossing.
	Transversal Relation = iota

	// Tangential is a touch where both tangents are parallel within the angular tolerance.
	Tangential

	// CoincidentBoundary is one end of a range over which the curves overlap.
	// Bound tells which end.
	CoincidentBoundary
)

func (this Relation) String() string {
	switch this {
	case Transversal:
		return "transversal"
	case Tangential:
		return "tangential"
	case CoincidentBoundary:
		return "coincident"
	}
	return "unknown"
}

// Bound tells which end of a coincident range a CoincidentBoundary record is.
type Bound int

const (
	NoBound Bound = iota

	// SpanStart is the end of the range with the lower parameter on the first curve.
	SpanStart

	// SpanEnd is the end of the range with the higher parameter on the first curve.
	// When the range runs through the seam of a periodic first curve, the end's
	// parameter is reduced into the domain and may be the smaller one.
	SpanEnd
)

func (this Bound) String() string {
	switch this {
	case SpanStart:
		return "start"
	case SpanEnd:
		return "end"
	}
	return ""
}

// Intersection is one node of the result list of Curves, ordered by U0.
type Intersection struct {
	Point vec3.T

	// parameters on the first and second curve
	U0, U1 float64

	Relation Relation
	Bound    Bound

	// distance between the two curve points at U0 and U1
	Residual float64

	Next *Intersection
}

// Len of the list starting at this node; 0 for a nil list.
func (this *Intersection) Len() int {
	var n int
	for it := this; it != nil; it = it.Next {
		n++
	}
	return n
}

// Slice of the nodes of the list, in order.
func (this *Intersection) Slice() []*Intersection {
	var res []*Intersection
	for it := this; it != nil; it = it.Next {
		res = append(res, it)
	}
	return res
}

// All iterates the list in order.
func (this *Intersection) All() iter.Seq[*Intersection] {
	return func(yield func(*Intersection) bool) {
		for it := this; it != nil; it = it.Next {
			if !yield(it) {
				return
			}
		}
	}
}
