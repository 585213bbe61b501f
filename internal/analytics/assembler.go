package analytics

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"skilltracker_backend/internal/model"
	"skilltracker_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// ErrDuplicateMonthlyStat 并发补建时 (user_id, month) 唯一约束冲突
var ErrDuplicateMonthlyStat = errors.New("monthly stat already exists")

// MonthlyStatStore 月度统计的持久化协作方。
// FindMonthlyStat 在记录不存在时返回 (nil, nil)；
// InsertMonthlyStat 遇到唯一约束冲突时返回 ErrDuplicateMonthlyStat。
type MonthlyStatStore interface {
	FindMonthlyStat(ctx context.Context, userID uint, month time.Time) (*model.MonthlyStat, error)
	InsertMonthlyStat(ctx context.Context, stat *model.MonthlyStat) error
}

// Settings 统计窗口等可热更新的参数
type Settings struct {
	Location                *time.Location
	CurrentStreakWindowDays int
	DailyActivityDays       int
	MonthlySeriesLimit      int
	ExpiringWithinDays      int
	DefaultMonthlyGoals     int
}

func DefaultSettings() Settings {
	return Settings{
		Location:                time.UTC,
		CurrentStreakWindowDays: 30,
		DailyActivityDays:       30,
		MonthlySeriesLimit:      6,
		ExpiringWithinDays:      30,
		DefaultMonthlyGoals:     4,
	}
}

// Assembler 把各个计算器组合成具体的报表结构。
// 输入均为调用方已按用户过滤好的原始行，除月度统计补建外不访问存储。
type Assembler struct {
	store    MonthlyStatStore
	log      *zap.Logger
	now      func() time.Time
	settings atomic.Pointer[Settings]
}

type Option func(*Assembler)

func WithLogger(log *zap.Logger) Option {
	return func(a *Assembler) {
		if log != nil {
			a.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

func WithSettings(s Settings) Option {
	return func(a *Assembler) {
		a.UpdateSettings(s)
	}
}

func NewAssembler(store MonthlyStatStore, opts ...Option) *Assembler {
	a := &Assembler{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	a.UpdateSettings(DefaultSettings())
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// UpdateSettings 原子替换统计参数，零值字段沿用默认值
func (a *Assembler) UpdateSettings(s Settings) {
	def := DefaultSettings()
	if s.Location == nil {
		s.Location = def.Location
	}
	if s.CurrentStreakWindowDays <= 0 {
		s.CurrentStreakWindowDays = def.CurrentStreakWindowDays
	}
	if s.DailyActivityDays <= 0 {
		s.DailyActivityDays = def.DailyActivityDays
	}
	if s.MonthlySeriesLimit <= 0 {
		s.MonthlySeriesLimit = def.MonthlySeriesLimit
	}
	if s.ExpiringWithinDays <= 0 {
		s.ExpiringWithinDays = def.ExpiringWithinDays
	}
	if s.DefaultMonthlyGoals < 0 {
		s.DefaultMonthlyGoals = def.DefaultMonthlyGoals
	}
	a.settings.Store(&s)
}

func (a *Assembler) Settings() Settings {
	return *a.settings.Load()
}

// Today 返回配置时区下的当天日期（以 UTC 零点表示，与 DATE 列一致）
func (a *Assembler) Today() time.Time {
	n := a.now().In(a.Settings().Location)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentMonth 当月第一天
func (a *Assembler) CurrentMonth() time.Time {
	return model.MonthStart(a.Today())
}

// PreviousMonth 上月第一天
func (a *Assembler) PreviousMonth() time.Time {
	return a.CurrentMonth().AddDate(0, -1, 0)
}

func metric(current, previous float64) model.MetricDelta {
	return model.MetricDelta{Current: current, Change: PercentChange(previous, current)}
}

// DashboardStats 本月与上月对比，缺失的月份按全 0 处理
func (a *Assembler) DashboardStats(current, previous *model.MonthlyStat) model.DashboardStats {
	if current == nil {
		current = &model.MonthlyStat{}
	}
	if previous == nil {
		previous = &model.MonthlyStat{}
	}
	return model.DashboardStats{
		ActiveCourses:  metric(float64(current.ActiveCourses), float64(previous.ActiveCourses)),
		Certifications: metric(float64(current.Certifications), float64(previous.Certifications)),
		SkillsMastered: metric(float64(current.SkillsMastered), float64(previous.SkillsMastered)),
		LearningHours:  metric(current.LearningHours, previous.LearningHours),
	}
}

// Streaks 当前连续天数只看最近窗口，最长连续天数看全部历史
func (a *Assembler) Streaks(records []model.LearningStreak) model.StreakSummary {
	valid := a.validActivity("streak", records)
	dates := make([]time.Time, len(valid))
	for i, r := range valid {
		dates[i] = r.Date
	}
	s := ComputeStreaks(dates, a.Today(), a.Settings().CurrentStreakWindowDays)
	return model.StreakSummary{CurrentStreak: s.Current, LongestStreak: s.Longest}
}

// EnsureMonthlyStat 读取目标月份的统计行，不存在时以全 0 补建。
// 并发补建导致的唯一约束冲突视为成功，随后重新读取。
// 存储层的其它错误直接返回，不做重试。
func (a *Assembler) EnsureMonthlyStat(ctx context.Context, userID uint, month time.Time) (*model.MonthlyStat, error) {
	month = model.MonthStart(month)
	if a.store == nil {
		return &model.MonthlyStat{UserID: userID, Month: month}, nil
	}

	stat, err := a.store.FindMonthlyStat(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	if stat != nil {
		return stat, nil
	}

	seed := &model.MonthlyStat{UserID: userID, Month: month}
	err = a.store.InsertMonthlyStat(ctx, seed)
	switch {
	case err == nil:
		monitoring.MonthlyStatSeeds.WithLabelValues("created").Inc()
		a.log.Info("seeded monthly stat", zap.Uint("user_id", userID), zap.Time("month", month))
	case errors.Is(err, ErrDuplicateMonthlyStat):
		monitoring.MonthlyStatSeeds.WithLabelValues("conflict").Inc()
		a.log.Debug("monthly stat seeded concurrently", zap.Uint("user_id", userID), zap.Time("month", month))
	default:
		return nil, err
	}

	stat, err = a.store.FindMonthlyStat(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		return &model.MonthlyStat{UserID: userID, Month: month}, nil
	}
	return stat, nil
}

// ReportStats 月度报告卡片，必要时补建当月统计行
func (a *Assembler) ReportStats(ctx context.Context, userID uint) (model.ReportStats, error) {
	stat, err := a.EnsureMonthlyStat(ctx, userID, a.CurrentMonth())
	if err != nil {
		return model.ReportStats{}, err
	}
	return model.ReportStats{
		Progress: CompletionOf(float64(stat.CompletedGoals), float64(stat.TotalGoals)),
		Goals: model.GoalCount{
			Completed: stat.CompletedGoals,
			Total:     stat.TotalGoals,
		},
		StudyTime:      round2(stat.LearningHours),
		Certifications: stat.Certifications,
	}, nil
}

// HoursDistribution 按月汇总学习时长，只保留最近若干个月
func (a *Assembler) HoursDistribution(records []model.LearningStreak) []model.HoursBucket {
	valid := a.validActivity("hours_distribution", records)
	points := TakeLast(BucketSeries(activityValues(valid), ByMonth, Sum), a.Settings().MonthlySeriesLimit)

	out := make([]model.HoursBucket, len(points))
	for i, p := range points {
		out[i] = model.HoursBucket{Month: p.Label, Category: "Study Hours", Hours: p.Value}
	}
	return out
}

// DailyActivity 最近 N 天每天的学习时长，同一天多条记录求和
func (a *Assembler) DailyActivity(records []model.LearningStreak) []model.DailyActivity {
	valid := a.validActivity("daily_activity", records)
	since := civilDay(a.Today()) - int64(a.Settings().DailyActivityDays)

	values := make([]DatedValue, 0, len(valid))
	for _, r := range valid {
		if civilDay(r.Date) < since {
			continue
		}
		values = append(values, DatedValue{Date: r.Date, Value: r.HoursSpent})
	}

	points := BucketSeries(values, ByDay, Sum)
	out := make([]model.DailyActivity, len(points))
	for i, p := range points {
		out[i] = model.DailyActivity{Date: p.Label, Hours: p.Value}
	}
	return out
}

// RecentStreak 最近 n 个有记录的日期（升序），同一天合并
func (a *Assembler) RecentStreak(records []model.LearningStreak, n int) []model.StreakDay {
	valid := a.validActivity("recent_streak", records)
	points := BucketSeries(activityValues(valid), ByDay, Sum)
	if n > 0 && len(points) > n {
		points = points[len(points)-n:]
	}
	out := make([]model.StreakDay, len(points))
	for i, p := range points {
		out[i] = model.StreakDay{Date: p.Label, HoursSpent: p.Value}
	}
	return out
}

func activityValues(records []model.LearningStreak) []DatedValue {
	values := make([]DatedValue, len(records))
	for i, r := range records {
		values[i] = DatedValue{Date: r.Date, Value: r.HoursSpent}
	}
	return values
}
