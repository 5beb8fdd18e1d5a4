package slabfit

import "golang.org/x/exp/constraints"

// minOf and maxOf are the generic helpers the copy-length and size-class
// comparisons throughout this package lean on, so the same two-line
// branch isn't hand-rolled per call site and per integer type.
func minOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
