package engine

// ============================================================================
// JOINS — Hash inner join over typed slices
// ============================================================================

// Join is an inner join: every pair (l, r) whose keys match produces
// project(l, r). The right side is hashed once; output order follows the
// left input, then the right, so results are deterministic for a given
// input order.
func Join[L, R any, K comparable, T any](
	left []L,
	right []R,
	leftKey func(L) K,
	rightKey func(R) K,
	project func(L, R) T,
) []T {
	byKey := make(map[K][]int, len(right))
	for i, r := range right {
		k := rightKey(r)
		byKey[k] = append(byKey[k], i)
	}

	out := make([]T, 0, len(left))
	for _, l := range left {
		for _, i := range byKey[leftKey(l)] {
			out = append(out, project(l, right[i]))
		}
	}
	return out
}
