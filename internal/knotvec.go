package internal

import (
	"math"
	"sort"
)

type KnotVec []float64

func (this KnotVec) Clone() KnotVec {
	return append(KnotVec(nil), this...)
}

// Valid parameter range of a spline of the given degree on this knot vector.
// For clamped knot vectors this is the first and last knot; for unclamped
// (periodic) ones the outer degree knots on each side are not part of the domain.
func (this KnotVec) Domain(degree int) (min, max float64) {
	return this[degree], this[len(this)-degree-1]
}

// Span of u on a spline of the given degree: the index i with knots[i] <= u < knots[i+1]
func (this KnotVec) Span(degree int, u float64) int {
	return this.SpanGivenN(len(this)-degree-2, degree, u)
}

// SpanGivenN finds the knot span of u, with n+1 basis functions on the vector
// (Piegl & Tiller A2.1). Parameters below the domain map to the first span and
// parameters at or above its end to the last non-empty one.
func (this KnotVec) SpanGivenN(n int, degree int, u float64) int {
	if u >= this[n+1] {
		for n > degree && this[n] >= this[n+1] {
			n--
		}
		return n
	}
	if u < this[degree] {
		return degree
	}

	// first knot in (degree, n+1] above u, minus one
	i := sort.Search(n+1-degree, func(i int) bool { return this[degree+1+i] > u })
	return degree + i
}

type KnotMultiplicity struct {
	Knot float64
	Mult int
}

// Multiplicities lists the distinct knot values in order with their multiplicity.
func (this KnotVec) Multiplicities() []KnotMultiplicity {
	var res []KnotMultiplicity
	for _, knot := range this {
		if last := len(res) - 1; last >= 0 && math.Abs(knot-res[last].Knot) <= Epsilon {
			res[last].Mult++
			continue
		}
		res = append(res, KnotMultiplicity{Knot: knot, Mult: 1})
	}
	return res
}

// Multiplicity of the knot value u, 0 if u is not a knot.
func (this KnotVec) Multiplicity(u float64) int {
	var mult int
	for _, knot := range this {
		if math.Abs(knot-u) <= Epsilon {
			mult++
		}
	}
	return mult
}

// IsValid reports whether the vector is long enough for the degree and nondecreasing.
// Clamped and unclamped vectors are both valid.
func (this KnotVec) IsValid(degree int) bool {
	if len(this) < (degree+1)*2 {
		return false
	}

	if !this.IsNonDecreasing() {
		return false
	}

	min, max := this.Domain(degree)
	return max-min > Epsilon
}

// IsClamped reports whether the vector begins and ends with degree + 1 repeats.
func (this KnotVec) IsClamped(degree int) bool {
	rep := this[0]
	for _, knot := range this[:degree+1] {
		if math.Abs(knot-rep) > Epsilon {
			return false
		}
	}

	rep = this[len(this)-1]
	for _, knot := range this[len(this)-degree-1:] {
		if math.Abs(knot-rep) > Epsilon {
			return false
		}
	}

	return true
}

func (this KnotVec) IsNonDecreasing() bool {
	rep := this[0]
	for _, knot := range this[1:] {
		if knot < rep-Epsilon {
			return false
		}
		rep = knot
	}
	return true
}
