package engine

import "sort"

// ============================================================================
// FILTER / SORT / LIMIT
// ============================================================================
// Every operator here is pure: inputs are never reordered or mutated, so a
// snapshot can be shared by any number of concurrent pipelines.
// ============================================================================

// Filter returns the rows satisfying keep, in input order.
func Filter[T any](rows []T, keep func(T) bool) []T {
	var out []T
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortBy returns a sorted copy of rows. The sort is stable; the input
// slice is left untouched.
func SortBy[T any](rows []T, less func(a, b T) bool) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Limit returns at most n rows from the front. n <= 0 means no limit.
func Limit[T any](rows []T, n int) []T {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	return rows[:n]
}
