package analytics

import "math"

// Completion 计算目标完成百分比，结果始终在 [0,100]。
// 没有目标（nil）、目标为 0 或数值非法时返回 0。
// 分子可能超过过期的目标值，因此结果需要截断。
func Completion(numerator float64, denominator *float64) int {
	if denominator == nil {
		return 0
	}
	d := *denominator
	if !finite(numerator) || !finite(d) || d <= 0 {
		return 0
	}
	pct := math.Round(numerator / d * 100)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// CompletionOf 分母必定存在时的便捷写法
func CompletionOf(numerator, denominator float64) int {
	return Completion(numerator, &denominator)
}
