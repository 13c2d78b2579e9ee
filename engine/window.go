package engine

// ============================================================================
// WINDOWS — Rank and lag within partitions
// ============================================================================

// Ranked pairs a row with its computed rank.
type Ranked[T any] struct {
	Row  T
	Rank int
}

// Rank orders each partition by metric and assigns competition ranks: rows
// tied on metric share a rank and the next distinct value skips past them
// (1, 1, 3 — not 1, 1, 2). desc ranks the largest metric first. Partitions
// keep first-seen order; tied rows keep their input order.
func Rank[T any, K comparable](
	rows []T,
	partition func(T) K,
	metric func(T) float64,
	desc bool,
) []Ranked[T] {
	out := make([]Ranked[T], 0, len(rows))
	for _, p := range GroupBy(rows, partition) {
		sorted := SortBy(p.Rows, func(a, b T) bool {
			if desc {
				return metric(a) > metric(b)
			}
			return metric(a) < metric(b)
		})
		rank := 1
		for i, r := range sorted {
			if i > 0 && metric(r) != metric(sorted[i-1]) {
				rank = i + 1
			}
			out = append(out, Ranked[T]{Row: r, Rank: rank})
		}
	}
	return out
}

// Lagged pairs a row with a value taken from an earlier row in its partition.
type Lagged[T any] struct {
	Row  T
	Prev float64
}

// Lag sorts each partition by less and attaches to every row the value of
// the row offset positions earlier in that order, or fallback when no such
// row exists. Partitions keep first-seen order.
func Lag[T any, K comparable](
	rows []T,
	partition func(T) K,
	less func(a, b T) bool,
	offset int,
	value func(T) float64,
	fallback float64,
) []Lagged[T] {
	out := make([]Lagged[T], 0, len(rows))
	for _, p := range GroupBy(rows, partition) {
		sorted := SortBy(p.Rows, less)
		for i, r := range sorted {
			prev := fallback
			if j := i - offset; offset > 0 && j >= 0 {
				prev = value(sorted[j])
			}
			out = append(out, Lagged[T]{Row: r, Prev: prev})
		}
	}
	return out
}
