package analytics

import (
	"fmt"
	"math"
	"time"

	"skilltracker_backend/internal/model"
)

// ProfileInput 个人主页概览所需的原始行
type ProfileInput struct {
	User           model.User
	Activity       []model.LearningStreak
	Courses        []model.Course
	Certifications []model.Certification
	MonthlyTarget  *float64
	CurrentStat    *model.MonthlyStat
}

// DeriveCertificationStatus 根据到期日推导证书状态：
// 已过期 → expired；在 within 天内到期 → expiring；否则沿用存储的状态（为空时视为 active）
func DeriveCertificationStatus(c model.Certification, today time.Time, within int) model.CertificationStatus {
	if c.ExpiryDate != nil && !c.ExpiryDate.IsZero() {
		left := civilDay(*c.ExpiryDate) - civilDay(today)
		if left < 0 {
			return model.CertExpired
		}
		if left <= int64(within) {
			return model.CertExpiring
		}
	}
	if c.Status == "" {
		return model.CertActive
	}
	return c.Status
}

// CertificationStats 按推导后的状态统计证书数量
func (a *Assembler) CertificationStats(certs []model.Certification) model.CertificationStats {
	today := a.Today()
	within := a.Settings().ExpiringWithinDays

	stats := model.CertificationStats{Total: len(certs)}
	for _, c := range certs {
		switch DeriveCertificationStatus(c, today, within) {
		case model.CertActive:
			stats.Active++
		case model.CertExpiring:
			stats.ExpiringSoon++
		case model.CertExpired:
			stats.Expired++
		}
	}
	return stats
}

// CertificationHistory 按颁发月份统计证书数量，按时间先后排列
func (a *Assembler) CertificationHistory(certs []model.Certification) []model.CertificationMonth {
	valid := a.validCertifications("certification_history", certs)
	values := make([]DatedValue, len(valid))
	for i, c := range valid {
		values[i] = DatedValue{Date: c.IssueDate, Value: 1}
	}

	points := BucketSeries(values, ByMonth, Sum)
	out := make([]model.CertificationMonth, len(points))
	for i, p := range points {
		out[i] = model.CertificationMonth{Month: p.Label, Count: p.Count}
	}
	return out
}

// ReportsOverview 技能、课程、证书数量与累计学习时长
func (a *Assembler) ReportsOverview(skills []model.SkillWithCategory, courses []model.Course, certs []model.Certification, activity []model.LearningStreak) model.ReportsOverview {
	return model.ReportsOverview{
		TotalSkills:         len(skills),
		TotalCourses:        len(courses),
		TotalCertifications: len(certs),
		TotalHours:          round2(totalHours(a.validActivity("reports_overview", activity))),
	}
}

func totalHours(records []model.LearningStreak) float64 {
	total := 0.0
	for _, r := range records {
		total += r.HoursSpent
	}
	return total
}

func monthHours(records []model.LearningStreak, month time.Time) float64 {
	total := 0.0
	for _, r := range records {
		if r.Date.Year() == month.Year() && r.Date.Month() == month.Month() {
			total += r.HoursSpent
		}
	}
	return total
}

func averageRating(courses []model.Course) string {
	sum, n := 0.0, 0
	for _, c := range courses {
		if c.Rating == nil || math.IsNaN(*c.Rating) || math.IsInf(*c.Rating, 0) {
			continue
		}
		sum += *c.Rating
		n++
	}
	if n == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", sum/float64(n))
}

// ProfileOverview 个人主页：汇总数据、目标完成度与亮点
func (a *Assembler) ProfileOverview(in ProfileInput) model.ProfileOverview {
	activity := a.validActivity("profile_overview", in.Activity)
	streaks := a.Streaks(activity)
	hours := totalHours(activity)

	completedCourses := 0
	for _, c := range in.Courses {
		if c.Status == model.CourseCompleted {
			completedCourses++
		}
	}

	activeCerts := 0
	today := a.Today()
	within := a.Settings().ExpiringWithinDays
	for _, c := range in.Certifications {
		if DeriveCertificationStatus(c, today, within) == model.CertActive {
			activeCerts++
		}
	}

	goalsCompleted := 0
	goalsTotal := a.Settings().DefaultMonthlyGoals
	if in.CurrentStat != nil {
		goalsCompleted = in.CurrentStat.CompletedGoals
		if in.CurrentStat.TotalGoals > 0 {
			goalsTotal = in.CurrentStat.TotalGoals
		}
	}

	return model.ProfileOverview{
		Profile: model.ProfileSummary{
			Name:             in.User.Name,
			Email:            in.User.Email,
			StudyHours:       int(math.Round(hours)),
			CompletedCourses: completedCourses,
			Certificates:     len(in.Certifications),
			CurrentStreak:    streaks.CurrentStreak,
		},
		Goals: model.GoalPercentages{
			CourseCompletion:   CompletionOf(float64(completedCourses), float64(len(in.Courses))),
			StudyTimeTarget:    Completion(monthHours(activity, a.CurrentMonth()), in.MonthlyTarget),
			CertificationGoals: CompletionOf(float64(activeCerts), float64(len(in.Certifications))),
		},
		Highlights: model.ProfileHighlights{
			LongestStreak:         streaks.LongestStreak,
			MonthlyGoalsCompleted: goalsCompleted,
			MonthlyGoalsTotal:     goalsTotal,
			TotalHours:            int(math.Round(hours)),
			AverageRating:         averageRating(in.Courses),
		},
	}
}
