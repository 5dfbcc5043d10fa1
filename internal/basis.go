package internal

// Basis returns the degree+1 B-spline basis functions that are non-zero at u, where
// span is the knot span index of u (Piegl & Tiller A2.2).
func (this KnotVec) Basis(span int, u float64, degree int) []float64 {
	n := make([]float64, degree+1)
	left, right := this.offsets(span, u, degree)

	n[0] = 1
	for j := 1; j <= degree; j++ {
		var carry float64
		for r := 0; r < j; r++ {
			t := n[r] / (right[r+1] + left[j-r])
			n[r] = carry + right[r+1]*t
			carry = left[j-r] * t
		}
		n[j] = carry
	}

	return n
}

// BasisDerivatives returns the non-zero basis functions at u and their derivatives up
// to order n, which is capped at degree (Piegl & Tiller A2.3). Row k holds the k-th
// derivatives.
func (this KnotVec) BasisDerivatives(span int, u float64, degree, n int) [][]float64 {
	p := degree
	n = min(n, p)

	// the triangular table of A2.3: basis functions of every degree above the
	// diagonal, knot differences below it
	table := zeros2d(p+1, p+1)
	left, right := this.offsets(span, u, p)

	table[0][0] = 1
	for j := 1; j <= p; j++ {
		var carry float64
		for r := 0; r < j; r++ {
			table[j][r] = right[r+1] + left[j-r]
			t := table[r][j-1] / table[j][r]
			table[r][j] = carry + right[r+1]*t
			carry = left[j-r] * t
		}
		table[j][j] = carry
	}

	ders := zeros2d(n+1, p+1)
	for j := range ders[0] {
		ders[0][j] = table[j][p]
	}

	// two alternating rows of coefficients
	var coef [2][]float64
	coef[0], coef[1] = make([]float64, p+1), make([]float64, p+1)

	for r := 0; r <= p; r++ {
		prev, cur := coef[0], coef[1]
		prev[0] = 1

		for k := 1; k <= n; k++ {
			rk, pk := r-k, p-k
			var d float64

			if rk >= 0 {
				cur[0] = prev[0] / table[pk+1][rk]
				d = cur[0] * table[rk][pk]
			}

			lo, hi := max(1, -rk), k-1
			if r-1 > pk {
				hi = p - r
			}
			for j := lo; j <= hi; j++ {
				cur[j] = (prev[j] - prev[j-1]) / table[pk+1][rk+j]
				d += cur[j] * table[rk+j][pk]
			}

			if r <= pk {
				cur[k] = -prev[k-1] / table[pk+1][r]
				d += cur[k] * table[r][pk]
			}

			ders[k][r] = d
			prev, cur = cur, prev
		}
	}

	// scale row k by p!/(p-k)!
	factor := float64(p)
	for k := 1; k <= n; k++ {
		for j := range ders[k] {
			ders[k][j] *= factor
		}
		factor *= float64(p - k)
	}

	return ders
}

// offsets of u from the knots around span: left[j] = u - k[span+1-j] and
// right[j] = k[span+j] - u
func (this KnotVec) offsets(span int, u float64, degree int) (left, right []float64) {
	left, right = make([]float64, degree+1), make([]float64, degree+1)
	for j := 1; j <= degree; j++ {
		left[j] = u - this[span+1-j]
		right[j] = this[span+j] - u
	}
	return left, right
}

func zeros2d(n, m int) [][]float64 {
	res := make([][]float64, n)
	for i := range res {
		res[i] = make([]float64, m)
	}
	return res
}
