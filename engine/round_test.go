package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in     float64
		places int
		want   float64
	}{
		{2.5, 0, 3},
		{3.5, 0, 4},
		{-2.5, 0, -3},
		{2.4, 0, 2},
		{0.125, 2, 0.13},
		{-0.125, 2, -0.13},
		{2.675, 2, 2.68}, // binary-float rounding would give 2.67
		{45.0, 0, 45},
		{35.5, 0, 36},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v@%d", c.in, c.places), func(t *testing.T) {
			assert.Equal(t, c.want, Round(c.in, c.places))
		})
	}
}
