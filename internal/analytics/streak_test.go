package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeStreaks(t *testing.T) {
	today := day(2024, time.June, 15)
	d := func(offset int) time.Time { return today.AddDate(0, 0, offset) }

	tests := []struct {
		name  string
		dates []time.Time
		want  Streaks
	}{
		{name: "no records", want: Streaks{}},
		{name: "only today", dates: []time.Time{d(0)}, want: Streaks{Current: 1, Longest: 1}},
		{name: "three days ending today", dates: []time.Time{d(0), d(-1), d(-2)}, want: Streaks{Current: 3, Longest: 3}},
		{name: "ends yesterday", dates: []time.Time{d(-1), d(-2)}, want: Streaks{Current: 2, Longest: 2}},
		{name: "broken by absence", dates: []time.Time{d(-5), d(-4)}, want: Streaks{Current: 0, Longest: 2}},
		{name: "gap inside current run", dates: []time.Time{d(0), d(-2), d(-3), d(-4)}, want: Streaks{Current: 1, Longest: 3}},
		{name: "duplicates collapse", dates: []time.Time{d(0), d(0), d(-1), d(-1).Add(5 * time.Hour)}, want: Streaks{Current: 2, Longest: 2}},
		{name: "unordered input", dates: []time.Time{d(-2), d(0), d(-1), d(-10), d(-11)}, want: Streaks{Current: 3, Longest: 3}},
		{name: "future dates ignored for current", dates: []time.Time{d(3), d(-3)}, want: Streaks{Current: 0, Longest: 1}},
		{name: "zero dates ignored", dates: []time.Time{{}, d(0)}, want: Streaks{Current: 1, Longest: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreaks(tt.dates, today, 30))
		})
	}
}

func TestComputeStreaksWindowBoundsCurrentOnly(t *testing.T) {
	today := day(2024, time.June, 15)
	var dates []time.Time
	for i := 0; i < 45; i++ {
		dates = append(dates, today.AddDate(0, 0, -i))
	}

	s := ComputeStreaks(dates, today, 30)
	assert.Equal(t, 30, s.Current)
	assert.Equal(t, 45, s.Longest)

	assert.Equal(t, 45, ComputeStreaks(dates, today, 0).Current)
}

func TestComputeStreaksAcrossMonthAndYear(t *testing.T) {
	today := day(2025, time.January, 1)
	dates := []time.Time{day(2024, time.December, 30), day(2024, time.December, 31), today}
	assert.Equal(t, Streaks{Current: 3, Longest: 3}, ComputeStreaks(dates, today, 30))
}
