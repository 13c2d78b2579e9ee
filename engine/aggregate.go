package engine

import (
	"sort"
	"strings"
)

// ============================================================================
// GROUPING AND AGGREGATION
// ============================================================================
// GroupBy buckets rows; the aggregates fold a bucket down to one number (or
// one string). Buckets keep first-seen order, which is what makes report
// output reproducible run over run.
// ============================================================================

// Group is one bucket of a GroupBy: the key plus the rows that share it.
type Group[K comparable, T any] struct {
	Key  K
	Rows []T
}

// GroupBy buckets rows by key, with buckets ordered by first appearance.
func GroupBy[T any, K comparable](rows []T, key func(T) K) []Group[K, T] {
	index := make(map[K]int, len(rows))
	var groups []Group[K, T]
	for _, r := range rows {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K, T]{Key: k})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}

// ============================================================================
// AGGREGATES
// ============================================================================

// Sum folds value across rows.
func Sum[T any](rows []T, value func(T) float64) float64 {
	var total float64
	for _, r := range rows {
		total += value(r)
	}
	return total
}

// SumInt folds an integer value across rows.
func SumInt[T any](rows []T, value func(T) int) int {
	var total int
	for _, r := range rows {
		total += value(r)
	}
	return total
}

// Avg returns the mean of value across rows. ok is false when rows is
// empty; callers render that as a null cell instead of dividing by zero.
func Avg[T any](rows []T, value func(T) float64) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	return Sum(rows, value) / float64(len(rows)), true
}

// Min returns the smallest value across rows; ok is false when rows is empty.
func Min[T any](rows []T, value func(T) float64) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	m := value(rows[0])
	for _, r := range rows[1:] {
		if v := value(r); v < m {
			m = v
		}
	}
	return m, true
}

// Max returns the largest value across rows; ok is false when rows is empty.
func Max[T any](rows []T, value func(T) float64) (float64, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	m := value(rows[0])
	for _, r := range rows[1:] {
		if v := value(r); v > m {
			m = v
		}
	}
	return m, true
}

// MinInt returns the smallest integer value across rows.
func MinInt[T any](rows []T, value func(T) int) (int, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	m := value(rows[0])
	for _, r := range rows[1:] {
		if v := value(r); v < m {
			m = v
		}
	}
	return m, true
}

// MaxInt returns the largest integer value across rows.
func MaxInt[T any](rows []T, value func(T) int) (int, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	m := value(rows[0])
	for _, r := range rows[1:] {
		if v := value(r); v > m {
			m = v
		}
	}
	return m, true
}

// CountDistinct counts the distinct values of value across rows.
func CountDistinct[T any, V comparable](rows []T, value func(T) V) int {
	seen := make(map[V]struct{}, len(rows))
	for _, r := range rows {
		seen[value(r)] = struct{}{}
	}
	return len(seen)
}

// Distinct returns the distinct values of value in first-seen order.
func Distinct[T any, V comparable](rows []T, value func(T) V) []V {
	seen := make(map[V]struct{}, len(rows))
	var out []V
	for _, r := range rows {
		v := value(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// JoinDistinct concatenates the distinct values of value across rows,
// sorted ascending and separated by sep.
func JoinDistinct[T any](rows []T, value func(T) string, sep string) string {
	vals := Distinct(rows, value)
	sort.Strings(vals)
	return strings.Join(vals, sep)
}
