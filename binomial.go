package curvex

// binomial coefficient n choose k, 0 when k > n
func binomial(n, k int) float64 {
	if k == 0 {
		return 1
	}

	if n == 0 || k > n {
		return 0
	}

	if k > n-k {
		k = n - k // optimization
	}

	r := 1.0
	for d := 1; d <= k; d++ {
		r = r * float64(n) / float64(d)
		n--
	}

	return r
}
