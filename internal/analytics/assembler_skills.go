package analytics

import (
	"sort"

	"skilltracker_backend/internal/model"

	"go.uber.org/zap"
)

// SkillCategories 技能成长曲线固定展示的分类
func SkillCategories() []string {
	out := make([]string, len(model.SkillTypes))
	for i, t := range model.SkillTypes {
		out[i] = string(t)
	}
	return out
}

// groupLevels 按 keyFn 分组，保留首次出现的顺序
func groupLevels(records []model.ProficiencyRecord, keyFn func(model.ProficiencyRecord) string) ([]string, map[string][]DatedValue) {
	var order []string
	groups := make(map[string][]DatedValue)
	for _, r := range records {
		k := keyFn(r)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], DatedValue{Date: r.RecordedDate, Value: r.ProficiencyLevel})
	}
	return order, groups
}

// monthlyLevels 每组按月取平均后展开为长表，按月份、再按组名排序
func monthlyLevels(records []model.ProficiencyRecord, keyFn func(model.ProficiencyRecord) string) []CategoryValue {
	order, groups := groupLevels(records, keyFn)
	var rows []CategoryValue
	for _, k := range order {
		for _, p := range BucketSeries(groups[k], ByMonth, Mean) {
			rows = append(rows, CategoryValue{Key: p.Key, Label: p.Label, Category: k, Value: p.Value})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Key != rows[j].Key {
			return rows[i].Key.Before(rows[j].Key)
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// SkillGrowth 按月计算各分类的平均熟练度，并展开为每月一行的宽表
func (a *Assembler) SkillGrowth(records []model.ProficiencyRecord, categories []string) []PivotRow {
	valid := a.validProficiency("skill_growth", records)
	rows := monthlyLevels(valid, func(r model.ProficiencyRecord) string { return string(r.Category) })

	// 输入已按用户过滤，取任一记录的用户即可
	var userID uint
	if len(valid) > 0 {
		userID = valid[0].UserID
	}
	out, dropped := Pivot(rows, categories)
	for _, d := range dropped {
		a.drop("skill_growth", reasonUnknownCategory, userID, zap.String("category", d.Category), zap.String("month", d.Label))
	}
	return out
}

// RecentSkillGrowth 只保留最近若干个月的宽表行
func (a *Assembler) RecentSkillGrowth(records []model.ProficiencyRecord, categories []string) []PivotRow {
	rows := a.SkillGrowth(records, categories)
	if n := a.Settings().MonthlySeriesLimit; n > 0 && len(rows) > n {
		rows = rows[len(rows)-n:]
	}
	return rows
}

// SkillsProgression 所有技能按月平均，只保留最近若干个月
func (a *Assembler) SkillsProgression(records []model.ProficiencyRecord) []model.MonthlyLevel {
	valid := a.validProficiency("skills_progression", records)
	values := make([]DatedValue, len(valid))
	for i, r := range valid {
		values[i] = DatedValue{Date: r.RecordedDate, Value: r.ProficiencyLevel}
	}
	points := TakeLast(BucketSeries(values, ByMonth, Mean), a.Settings().MonthlySeriesLimit)

	out := make([]model.MonthlyLevel, len(points))
	for i, p := range points {
		out[i] = model.MonthlyLevel{Month: p.Label, AverageLevel: p.Value}
	}
	return out
}

// TechnicalGrowth 技术类技能按分类名称逐月平均
func (a *Assembler) TechnicalGrowth(records []model.ProficiencyRecord) []model.CategoryLevel {
	valid := a.validProficiency("technical_growth", records)
	technical := valid[:0:0]
	for _, r := range valid {
		if r.Category == model.SkillTechnical {
			technical = append(technical, r)
		}
	}

	rows := monthlyLevels(technical, func(r model.ProficiencyRecord) string { return r.CategoryName })
	out := make([]model.CategoryLevel, len(rows))
	for i, r := range rows {
		out[i] = model.CategoryLevel{Month: r.Label, Category: r.Category, Level: r.Value}
	}
	return out
}

// SoftGrowth 软技能按单个技能逐月平均，不做宽表转换
func (a *Assembler) SoftGrowth(records []model.ProficiencyRecord) []model.SkillLevel {
	valid := a.validProficiency("soft_growth", records)
	soft := valid[:0:0]
	for _, r := range valid {
		if r.Category == model.SkillSoft {
			soft = append(soft, r)
		}
	}

	rows := monthlyLevels(soft, func(r model.ProficiencyRecord) string { return r.SkillName })
	out := make([]model.SkillLevel, len(rows))
	for i, r := range rows {
		out[i] = model.SkillLevel{Month: r.Label, Skill: r.Category, Level: r.Value}
	}
	return out
}

// OverallProgress 每种技能类型各自保留最近若干个月的平均值
func (a *Assembler) OverallProgress(records []model.ProficiencyRecord) []model.TypeLevel {
	valid := a.validProficiency("overall_progress", records)
	_, groups := groupLevels(valid, func(r model.ProficiencyRecord) string { return string(r.Category) })

	limit := a.Settings().MonthlySeriesLimit
	var rows []CategoryValue
	for _, t := range model.SkillTypes {
		for _, p := range TakeLast(BucketSeries(groups[string(t)], ByMonth, Mean), limit) {
			rows = append(rows, CategoryValue{Key: p.Key, Label: p.Label, Category: string(t), Value: p.Value})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Key.Before(rows[j].Key)
	})

	out := make([]model.TypeLevel, len(rows))
	for i, r := range rows {
		out[i] = model.TypeLevel{Month: r.Label, Type: model.SkillType(r.Category), AvgLevel: r.Value}
	}
	return out
}

// SkillDistribution 各类型当前熟练度平均值，两个类型始终返回
func (a *Assembler) SkillDistribution(skills []model.SkillWithCategory) []model.CategoryShare {
	valid := a.validSkills("skill_distribution", skills)
	sums := make(map[model.SkillType]float64)
	counts := make(map[model.SkillType]int)
	for _, s := range valid {
		sums[s.Category] += s.ProficiencyLevel
		counts[s.Category]++
	}

	out := make([]model.CategoryShare, len(model.SkillTypes))
	for i, t := range model.SkillTypes {
		pct := 0.0
		if counts[t] > 0 {
			pct = round2(sums[t] / float64(counts[t]))
		}
		out[i] = model.CategoryShare{Category: t, Percentage: pct}
	}
	return out
}

// SkillsDistribution 每种出现过的类型的技能数量与平均熟练度
func (a *Assembler) SkillsDistribution(skills []model.SkillWithCategory) []model.SkillTypeSummary {
	valid := a.validSkills("skills_distribution", skills)
	index := make(map[model.SkillType]int)
	var out []model.SkillTypeSummary
	sums := make(map[model.SkillType]float64)
	for _, s := range valid {
		i, ok := index[s.Category]
		if !ok {
			out = append(out, model.SkillTypeSummary{Type: s.Category})
			i = len(out) - 1
			index[s.Category] = i
		}
		out[i].Count++
		sums[s.Category] += s.ProficiencyLevel
	}
	for i := range out {
		out[i].AvgProficiency = round2(sums[out[i].Type] / float64(out[i].Count))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	if out == nil {
		out = []model.SkillTypeSummary{}
	}
	return out
}

// SkillSummaries 技能列表，附带按记录日期排序的熟练度历史
func (a *Assembler) SkillSummaries(skills []model.SkillWithCategory, records []model.ProficiencyRecord) []model.SkillSummary {
	valid := a.validProficiency("skill_summaries", records)
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].RecordedDate.Before(valid[j].RecordedDate)
	})
	bySkill := make(map[uint][]model.ProficiencyRecord)
	for _, r := range valid {
		bySkill[r.SkillID] = append(bySkill[r.SkillID], r)
	}

	ordered := append([]model.SkillWithCategory(nil), skills...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Category != ordered[j].Category {
			return ordered[i].Category < ordered[j].Category
		}
		return ordered[i].Name < ordered[j].Name
	})

	out := make([]model.SkillSummary, len(ordered))
	for i, s := range ordered {
		history := bySkill[s.ID]
		summary := model.SkillSummary{
			ID:               s.ID,
			Name:             s.Name,
			Category:         s.Category,
			ProficiencyLevel: model.ClampPercent(s.ProficiencyLevel),
			History:          make([]float64, len(history)),
			Dates:            make([]string, len(history)),
		}
		for j, h := range history {
			summary.History[j] = h.ProficiencyLevel
			_, summary.Dates[j] = KeyFor(h.RecordedDate, ByMonth)
		}
		out[i] = summary
	}
	return out
}

const (
	topSkillsLimit      = 5
	highPriorityBelow   = 60
	mediumPriorityBelow = 80
)

func priorityFor(level float64) string {
	switch {
	case level < highPriorityBelow:
		return "high"
	case level < mediumPriorityBelow:
		return "medium"
	default:
		return "low"
	}
}

// Recommendations 熟练度最低的几项技能及优先级
func (a *Assembler) Recommendations(skills []model.SkillWithCategory) []model.SkillRecommendation {
	valid := a.validSkills("recommendations", skills)
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].ProficiencyLevel < valid[j].ProficiencyLevel
	})
	if len(valid) > topSkillsLimit {
		valid = valid[:topSkillsLimit]
	}

	out := make([]model.SkillRecommendation, len(valid))
	for i, s := range valid {
		out[i] = model.SkillRecommendation{ID: s.ID, SkillName: s.Name, Priority: priorityFor(s.ProficiencyLevel)}
	}
	return out
}

// MostUsedSkills 按熟练度记录条数排序，条数相同时熟练度高者在前
func (a *Assembler) MostUsedSkills(skills []model.SkillWithCategory, records []model.ProficiencyRecord) []model.SkillUsage {
	valid := a.validProficiency("most_used", records)
	usage := make(map[uint]int)
	for _, r := range valid {
		usage[r.SkillID]++
	}

	out := make([]model.SkillUsage, len(skills))
	for i, s := range skills {
		out[i] = model.SkillUsage{
			Name:             s.Name,
			ProficiencyLevel: model.ClampPercent(s.ProficiencyLevel),
			UsageCount:       usage[s.ID],
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UsageCount != out[j].UsageCount {
			return out[i].UsageCount > out[j].UsageCount
		}
		return out[i].ProficiencyLevel > out[j].ProficiencyLevel
	})
	if len(out) > topSkillsLimit {
		out = out[:topSkillsLimit]
	}
	return out
}

// RecentImprovements 最新的几条熟练度记录
func (a *Assembler) RecentImprovements(records []model.ProficiencyRecord) []model.SkillImprovement {
	valid := a.validProficiency("recent_improvements", records)
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].RecordedDate.After(valid[j].RecordedDate)
	})
	if len(valid) > topSkillsLimit {
		valid = valid[:topSkillsLimit]
	}

	out := make([]model.SkillImprovement, len(valid))
	for i, r := range valid {
		out[i] = model.SkillImprovement{
			Name:             r.SkillName,
			ProficiencyLevel: r.ProficiencyLevel,
			RecordedDate:     r.RecordedDate.Format(dayLabelLayout),
		}
	}
	return out
}
