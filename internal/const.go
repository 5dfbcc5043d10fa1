package internal

const (
	// Epsilon is the smallest distance between two knots, parameters or weights
	// that is treated as distinct.
	Epsilon = 1e-10

	// Tolerance is the default linear tolerance for geometric comparisons.
	Tolerance = 1e-6
)
