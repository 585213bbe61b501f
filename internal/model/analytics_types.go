package model

// MetricDelta 当月数值与环比变化百分比
type MetricDelta struct {
	Current float64 `json:"current"`
	Change  int     `json:"change"`
}

// DashboardStats 仪表盘四项指标
type DashboardStats struct {
	ActiveCourses  MetricDelta `json:"activeCourses"`
	Certifications MetricDelta `json:"certifications"`
	SkillsMastered MetricDelta `json:"skillsMastered"`
	LearningHours  MetricDelta `json:"learningHours"`
}

// StreakSummary 连续学习天数
type StreakSummary struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

type GoalCount struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// ReportStats 月度报告卡片
type ReportStats struct {
	Progress       int       `json:"progress"`
	Goals          GoalCount `json:"goals"`
	StudyTime      float64   `json:"studyTime"`
	Certifications int       `json:"certifications"`
}

type HoursBucket struct {
	Month    string  `json:"month"`
	Category string  `json:"category"`
	Hours    float64 `json:"hours"`
}

type DailyActivity struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

type CategoryShare struct {
	Category   SkillType `json:"category"`
	Percentage float64   `json:"percentage"`
}

type SkillTypeSummary struct {
	Type           SkillType `json:"type"`
	Count          int       `json:"count"`
	AvgProficiency float64   `json:"avg_proficiency"`
}

type CertificationMonth struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type CertificationStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	ExpiringSoon int `json:"expiringSoon"`
	Expired      int `json:"expired"`
}

type MonthlyLevel struct {
	Month        string  `json:"month"`
	AverageLevel float64 `json:"average_level"`
}

type CategoryLevel struct {
	Month    string  `json:"month"`
	Category string  `json:"category"`
	Level    float64 `json:"level"`
}

type SkillLevel struct {
	Month string  `json:"month"`
	Skill string  `json:"skill"`
	Level float64 `json:"level"`
}

type TypeLevel struct {
	Month    string    `json:"month"`
	Type     SkillType `json:"type"`
	AvgLevel float64   `json:"avg_level"`
}

// ReportsOverview 报表总览（字段名沿用旧接口）
type ReportsOverview struct {
	TotalSkills         int     `json:"total_skills"`
	TotalCourses        int     `json:"total_courses"`
	TotalCertifications int     `json:"total_certifications"`
	TotalHours          float64 `json:"total_hours"`
}

type ProfileSummary struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	StudyHours       int    `json:"studyHours"`
	CompletedCourses int    `json:"completedCourses"`
	Certificates     int    `json:"certificates"`
	CurrentStreak    int    `json:"currentStreak"`
}

type GoalPercentages struct {
	CourseCompletion   int `json:"courseCompletion"`
	StudyTimeTarget    int `json:"studyTimeTarget"`
	CertificationGoals int `json:"certificationGoals"`
}

type ProfileHighlights struct {
	LongestStreak         int    `json:"longestStreak"`
	MonthlyGoalsCompleted int    `json:"monthlyGoalsCompleted"`
	MonthlyGoalsTotal     int    `json:"monthlyGoalsTotal"`
	TotalHours            int    `json:"totalHours"`
	AverageRating         string `json:"averageRating"`
}

// ProfileOverview 个人主页概览
type ProfileOverview struct {
	Profile    ProfileSummary    `json:"profile"`
	Goals      GoalPercentages   `json:"goals"`
	Highlights ProfileHighlights `json:"highlights"`
}

type StreakDay struct {
	Date       string  `json:"date"`
	HoursSpent float64 `json:"hoursSpent"`
}

type SkillSummary struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Category         SkillType `json:"category"`
	ProficiencyLevel float64   `json:"proficiency_level"`
	History          []float64 `json:"history"`
	Dates            []string  `json:"dates"`
}

type SkillRecommendation struct {
	ID        uint   `json:"id"`
	SkillName string `json:"skill_name"`
	Priority  string `json:"priority"`
}

type SkillUsage struct {
	Name             string  `json:"name"`
	ProficiencyLevel float64 `json:"proficiency_level"`
	UsageCount       int     `json:"usage_count"`
}

type SkillImprovement struct {
	Name             string  `json:"name"`
	ProficiencyLevel float64 `json:"proficiency_level"`
	RecordedDate     string  `json:"recorded_date"`
}
