package internal

// Split a rational Bézier control polygon at local parameter t in [0, 1] using
// de Casteljau's algorithm in homogeneous space.
//
// **returns**
// + control points of the [0, t] and [t, 1] pieces, each of the input length
func BezierSplit(pts []HomoPoint, t float64) (left, right []HomoPoint) {
	n := len(pts)
	work := append([]HomoPoint(nil), pts...)
	left = make([]HomoPoint, n)
	right = make([]HomoPoint, n)

	for k := 0; k < n; k++ {
		left[k] = work[0]
		right[n-1-k] = work[n-1-k]

		for i := 0; i < n-1-k; i++ {
			work[i] = HomoInterpolated(&work[i], &work[i+1], t)
		}
	}

	return left, right
}

// BezierSegment returns the control points of the piece of a Bézier curve between
// local parameters t0 < t1, both in [0, 1].
func BezierSegment(pts []HomoPoint, t0, t1 float64) []HomoPoint {
	seg := pts
	if t1 < 1 {
		seg, _ = BezierSplit(seg, t1)
	}

	if t0 > 0 {
		_, seg = BezierSplit(seg, t0/t1)
	}

	return seg
}
