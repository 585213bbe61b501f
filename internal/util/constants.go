package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// gin.Context 中的键
const (
	UserContextKey = "user"
	RequestIDKey   = "request_id"
)

const RequestIDHeader = "X-Request-ID"

// 报表缓存的 kind，同时作为 trace span 名
const (
	ReportDashboardStats       = "dashboard-stats"
	ReportProfileOverview      = "profile-overview"
	ReportProfileStreak        = "profile-streak"
	ReportStreakSummary        = "streak-summary"
	ReportStats                = "stats"
	ReportHoursDistribution    = "hours-distribution"
	ReportSkillDistribution    = "skill-distribution"
	ReportCertificationHistory = "certification-history"
	ReportSkillGrowth          = "skill-growth"
	ReportDailyActivity        = "daily-activity"
	ReportOverview             = "overview"
	ReportSkillsDistribution   = "skills-distribution"
	ReportSkillsProgression    = "skills-progression"
	ReportTechnicalGrowth      = "technical-growth"
	ReportSoftGrowth           = "soft-growth"
	ReportOverallProgress      = "overall-progress"
	ReportSkills               = "skills"
	ReportRecommendations      = "skill-recommendations"
	ReportMostUsedSkills       = "most-used-skills"
	ReportRecentImprovements   = "recent-improvements"
	ReportCertificationStats   = "certification-stats"
)

// RecentStreakDays 个人主页展示的最近学习天数
const RecentStreakDays = 7
