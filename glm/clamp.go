package glm

import "golang.org/x/exp/constraints"

// Clamp limits value to the closed interval [lo, hi].
// A value that does not compare (NaN) is mapped to lo.
func Clamp[T constraints.Ordered](value, lo, hi T) T {
	if !(value >= lo) {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}
