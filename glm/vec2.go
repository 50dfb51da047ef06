package glm

type Vec2[T numeric] [2]T

// Clamp clamps each component of the vector into the
// range spanned by the matching components of lo and hi.
func (lhs Vec2[T]) Clamp(lo, hi Vec2[T]) Vec2[T] {
	return Vec2[T]{
		Clamp(lhs[0], lo[0], hi[0]),
		Clamp(lhs[1], lo[1], hi[1]),
	}
}
