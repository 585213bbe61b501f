package analytics

import "math"

// NewBaselineChange 上期为 0、本期为正时返回的封顶值，表示“从无到有”
const NewBaselineChange = 100

// PercentChange 计算环比变化百分比（四舍五入取整）。
//
// previous 为 0 时不做除法：current > 0 返回 NewBaselineChange，否则返回 0。
// 其余情况不做 [0,100] 截断，可能为负或超过 100。
func PercentChange(previous, current float64) int {
	if !finite(previous) || !finite(current) {
		return 0
	}
	if previous == 0 {
		if current > 0 {
			return NewBaselineChange
		}
		return 0
	}
	change := math.Round((current - previous) / previous * 100)
	if change > math.MaxInt32 {
		return math.MaxInt32
	}
	if change < math.MinInt32 {
		return math.MinInt32
	}
	return int(change)
}
