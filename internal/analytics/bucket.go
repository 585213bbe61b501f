package analytics

import (
	"math"
	"sort"
	"time"
)

type Granularity int

const (
	ByDay Granularity = iota
	ByMonth
)

type Aggregation int

const (
	// Sum 用于学习时长这类可累加的指标
	Sum Aggregation = iota
	// Mean 用于熟练度这类快照指标，保留两位小数
	Mean
)

const dayLabelLayout = "2006-01-02"

// BucketKey 可排序的 (年, 期) 键。按月时 Period 为月份，按天时为年内第几天。
// 不同年份的同名月份（如两个 "Jan"）键不同，不会合并。
type BucketKey struct {
	Year   int
	Period int
}

func (k BucketKey) Before(o BucketKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Period < o.Period
}

// DatedValue 一条带日期的数值
type DatedValue struct {
	Date  time.Time
	Value float64
}

// BucketPoint 聚合后的一个时间桶
type BucketPoint struct {
	Key   BucketKey
	Label string
	First time.Time
	Value float64
	Count int
}

// KeyFor 返回日期所属桶的键与对外展示的短标签。
// 日期按其自身的年月日解释，不做时区换算。
func KeyFor(t time.Time, g Granularity) (BucketKey, string) {
	if g == ByDay {
		return BucketKey{Year: t.Year(), Period: t.YearDay()}, t.Format(dayLabelLayout)
	}
	return BucketKey{Year: t.Year(), Period: int(t.Month())}, t.Format("Jan")
}

// BucketSeries 将记录按天或按月分组聚合，每个出现过的桶输出一项，
// 按桶内最早日期排序。没有数据的周期不会补齐。
func BucketSeries(values []DatedValue, g Granularity, agg Aggregation) []BucketPoint {
	if len(values) == 0 {
		return []BucketPoint{}
	}

	type acc struct {
		point BucketPoint
		sum   float64
	}
	buckets := make(map[BucketKey]*acc)
	for _, v := range values {
		if v.Date.IsZero() || !finite(v.Value) {
			continue
		}
		key, label := KeyFor(v.Date, g)
		b, ok := buckets[key]
		if !ok {
			b = &acc{point: BucketPoint{Key: key, Label: label, First: v.Date}}
			buckets[key] = b
		}
		if v.Date.Before(b.point.First) {
			b.point.First = v.Date
		}
		b.sum += v.Value
		b.point.Count++
	}

	out := make([]BucketPoint, 0, len(buckets))
	for _, b := range buckets {
		p := b.point
		switch agg {
		case Mean:
			p.Value = round2(b.sum / float64(p.Count))
		default:
			p.Value = round2(b.sum)
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].First.Equal(out[j].First) {
			return out[i].First.Before(out[j].First)
		}
		return out[i].Key.Before(out[j].Key)
	})
	return out
}

// TakeLast 只保留最近的 n 个桶，较早的丢弃；n <= 0 表示不限制
func TakeLast(points []BucketPoint, n int) []BucketPoint {
	if n <= 0 || len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
