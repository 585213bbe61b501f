package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestCompletion(t *testing.T) {
	tests := []struct {
		name        string
		numerator   float64
		denominator *float64
		want        int
	}{
		{name: "no target", numerator: 3, denominator: nil, want: 0},
		{name: "zero target", numerator: 3, denominator: ptr(0), want: 0},
		{name: "negative target", numerator: 3, denominator: ptr(-4), want: 0},
		{name: "nothing done", numerator: 0, denominator: ptr(4), want: 0},
		{name: "half", numerator: 2, denominator: ptr(4), want: 50},
		{name: "done", numerator: 4, denominator: ptr(4), want: 100},
		{name: "over stale target", numerator: 9, denominator: ptr(4), want: 100},
		{name: "rounds", numerator: 1, denominator: ptr(3), want: 33},
		{name: "nan numerator", numerator: math.NaN(), denominator: ptr(3), want: 0},
		{name: "negative numerator", numerator: -1, denominator: ptr(3), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Completion(tt.numerator, tt.denominator))
		})
	}
}

func TestCompletionBounds(t *testing.T) {
	for d := 1.0; d <= 50; d++ {
		assert.Equal(t, 0, CompletionOf(0, d))
		assert.Equal(t, 100, CompletionOf(d, d))
		for n := 0.0; n <= 2*d; n++ {
			got := CompletionOf(n, d)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		}
	}
}
