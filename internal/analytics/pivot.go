package analytics

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// CategoryValue 长表中的一行：(桶, 分类, 值)
type CategoryValue struct {
	Key      BucketKey
	Label    string
	Category string
	Value    float64
}

// PivotRow 宽表中的一行，每个预期分类一个字段
type PivotRow struct {
	Key        BucketKey
	Month      string
	Categories []string
	Values     map[string]float64
}

// Get 返回分类取值，缺失时为 0
func (r PivotRow) Get(category string) float64 {
	return r.Values[category]
}

// MarshalJSON 输出 {"month":"Jan","technical":60,"soft":0}，字段顺序与预期分类一致
func (r PivotRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"month":`)
	label, err := json.Marshal(r.Month)
	if err != nil {
		return nil, err
	}
	buf.Write(label)
	for _, c := range r.Categories {
		name, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(r.Values[c], 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Pivot 把 (桶, 分类, 值) 长表转成每个桶一行的稠密宽表。
//
// 每个出现过的桶输出一行，按时间先后排序；预期分类缺失时补 0。
// 不在预期集合中的分类不会生成新字段，这些行原样通过 dropped 返回。
// 同一 (桶, 分类) 出现多次时后写覆盖前写，调用方应先聚合。
func Pivot(rows []CategoryValue, categories []string) (out []PivotRow, dropped []CategoryValue) {
	expected := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		expected[c] = struct{}{}
	}

	index := make(map[BucketKey]int)
	out = []PivotRow{}
	for _, row := range rows {
		if _, ok := expected[row.Category]; !ok {
			dropped = append(dropped, row)
			continue
		}
		i, ok := index[row.Key]
		if !ok {
			values := make(map[string]float64, len(categories))
			for _, c := range categories {
				values[c] = 0
			}
			out = append(out, PivotRow{
				Key:        row.Key,
				Month:      row.Label,
				Categories: categories,
				Values:     values,
			})
			i = len(out) - 1
			index[row.Key] = i
		}
		if finite(row.Value) {
			out[i].Values[row.Category] = row.Value
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Key.Before(out[j].Key)
	})
	return out, dropped
}
