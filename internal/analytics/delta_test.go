package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name              string
		previous, current float64
		want              int
	}{
		{name: "new from zero", previous: 0, current: 5, want: 100},
		{name: "zero to zero", previous: 0, current: 0, want: 0},
		{name: "zero to negative", previous: 0, current: -3, want: 0},
		{name: "growth", previous: 4, current: 5, want: 25},
		{name: "decline", previous: 10, current: 4, want: -60},
		{name: "more than double", previous: 2, current: 7, want: 250},
		{name: "rounding", previous: 3, current: 4, want: 33},
		{name: "unchanged", previous: 8, current: 8, want: 0},
		{name: "negative half rounds away from zero", previous: 40, current: 39, want: -3},
		{name: "positive half rounds away from zero", previous: 40, current: 41, want: 3},
		{name: "nan input", previous: math.NaN(), current: 1, want: 0},
		{name: "inf input", previous: 1, current: math.Inf(1), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentChange(tt.previous, tt.current))
		})
	}
}

func TestPercentChangeFromZeroIsAlwaysSentinel(t *testing.T) {
	for _, current := range []float64{0.01, 1, 42, 1e9} {
		assert.Equal(t, NewBaselineChange, PercentChange(0, current))
	}
}
