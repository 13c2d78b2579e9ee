package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scored struct {
	part  string
	name  string
	score float64
}

func TestRankGapSemantics(t *testing.T) {
	rows := []scored{
		{"a", "w", 10},
		{"a", "x", 10},
		{"a", "y", 7},
		{"a", "z", 5},
	}
	ranked := Rank(rows,
		func(s scored) string { return s.part },
		func(s scored) float64 { return s.score },
		true)

	require.Len(t, ranked, 4)
	// Tied leaders share rank 1; the next distinct score ranks 3, not 2.
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 1, ranked[1].Rank)
	assert.Equal(t, 3, ranked[2].Rank)
	assert.Equal(t, 4, ranked[3].Rank)
	// Ties keep input order.
	assert.Equal(t, "w", ranked[0].Row.name)
	assert.Equal(t, "x", ranked[1].Row.name)
}

func TestRankPartitionsAreIndependent(t *testing.T) {
	rows := []scored{
		{"a", "a1", 3},
		{"b", "b1", 1},
		{"a", "a2", 9},
		{"b", "b2", 8},
	}
	ranked := Rank(rows,
		func(s scored) string { return s.part },
		func(s scored) float64 { return s.score },
		true)

	byName := map[string]int{}
	for _, r := range ranked {
		byName[r.Row.name] = r.Rank
	}
	assert.Equal(t, map[string]int{"a1": 2, "a2": 1, "b1": 2, "b2": 1}, byName)
}

func TestRankAscending(t *testing.T) {
	rows := []scored{{"a", "x", 5}, {"a", "y", 2}}
	ranked := Rank(rows,
		func(s scored) string { return s.part },
		func(s scored) float64 { return s.score },
		false)
	assert.Equal(t, "y", ranked[0].Row.name)
	assert.Equal(t, 1, ranked[0].Rank)
}

func TestLagFirstRowGetsFallback(t *testing.T) {
	rows := []scored{
		{"a", "1996", 100},
		{"a", "1998", 300},
		{"b", "1997", 50},
	}
	lagged := Lag(rows,
		func(s scored) string { return s.part },
		func(x, y scored) bool { return x.name < y.name },
		1,
		func(s scored) float64 { return s.score },
		0)

	require.Len(t, lagged, 3)
	// Partition "a": 1996 has no prior year, 1998 lags to 1996 even though
	// 1997 is missing. Partition "b": single row, fallback.
	assert.Equal(t, 0.0, lagged[0].Prev)
	assert.Equal(t, 100.0, lagged[1].Prev)
	assert.Equal(t, 0.0, lagged[2].Prev)
}

func TestLagOffsetTwo(t *testing.T) {
	rows := []scored{
		{"a", "1", 10},
		{"a", "2", 20},
		{"a", "3", 30},
	}
	lagged := Lag(rows,
		func(s scored) string { return s.part },
		func(x, y scored) bool { return x.name < y.name },
		2,
		func(s scored) float64 { return s.score },
		-1)

	assert.Equal(t, -1.0, lagged[0].Prev)
	assert.Equal(t, -1.0, lagged[1].Prev)
	assert.Equal(t, 10.0, lagged[2].Prev)
}

func TestLagDoesNotReorderInput(t *testing.T) {
	rows := []scored{{"a", "2", 2}, {"a", "1", 1}}
	Lag(rows,
		func(s scored) string { return s.part },
		func(x, y scored) bool { return x.name < y.name },
		1,
		func(s scored) float64 { return s.score },
		0)
	assert.Equal(t, "2", rows[0].name, "input slice must stay untouched")
}
