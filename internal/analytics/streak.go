package analytics

import (
	"sort"
	"time"
)

// Streaks 当前连续天数与历史最长连续天数
type Streaks struct {
	Current int
	Longest int
}

// civilDay 把日期换算成自 1970-01-01 起的天数，只看年月日
func civilDay(t time.Time) int64 {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// ComputeStreaks 计算连续学习天数。
//
// Longest 统计全部历史中相邻日期恰好相差一天的最长区间。
// Current 从 today 或之前最近的一条记录向前回溯，只要中间出现缺失就中断；
// 最近记录既不是今天也不是昨天时为 0。只回看 window 天（<=0 表示不限）。
func ComputeStreaks(dates []time.Time, today time.Time, window int) Streaks {
	days := make([]int64, 0, len(dates))
	seen := make(map[int64]struct{}, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		n := civilDay(d)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		days = append(days, n)
	}
	if len(days) == 0 {
		return Streaks{}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	var s Streaks
	run := 0
	for i, d := range days {
		if i > 0 && d == days[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > s.Longest {
			s.Longest = run
		}
	}

	todayN := civilDay(today)
	last := -1
	for i := len(days) - 1; i >= 0; i-- {
		if days[i] <= todayN {
			last = i
			break
		}
	}
	if last < 0 || todayN-days[last] > 1 {
		return s
	}

	for i := last; i >= 0; i-- {
		if window > 0 && todayN-days[i] >= int64(window) {
			break
		}
		if i < last && days[i] != days[i+1]-1 {
			break
		}
		s.Current++
	}
	return s
}
