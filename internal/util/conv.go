package util

import (
	"strconv"
)

// ParseLimit 解析 limit 类查询参数，非法时返回默认值，超过上限时截断
func ParseLimit(s string, def, max int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
