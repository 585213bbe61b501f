package service

import (
	"context"
	"encoding/json"

	"skilltracker_backend/internal/analytics"
	"skilltracker_backend/internal/model"
	"skilltracker_backend/internal/repository"
	"skilltracker_backend/internal/util"
	"skilltracker_backend/pkg/cache"
)

type ReportService struct {
	StreakRepo *repository.StreakRepository
	SkillRepo  *repository.SkillRepository
	CourseRepo *repository.CourseRepository
	CertRepo   *repository.CertificationRepository
	Assembler  *analytics.Assembler
	Cache      *cache.ReportCache
}

func NewReportService(
	streakRepo *repository.StreakRepository,
	skillRepo *repository.SkillRepository,
	courseRepo *repository.CourseRepository,
	certRepo *repository.CertificationRepository,
	assembler *analytics.Assembler,
	reportCache *cache.ReportCache,
) *ReportService {
	return &ReportService{
		StreakRepo: streakRepo,
		SkillRepo:  skillRepo,
		CourseRepo: courseRepo,
		CertRepo:   certRepo,
		Assembler:  assembler,
		Cache:      reportCache,
	}
}

// Stats 当月报告卡片，必要时补建月度统计行，不缓存
func (s *ReportService) Stats(ctx context.Context, userID uint) (model.ReportStats, error) {
	return tracedReport(ctx, util.ReportStats, userID, func(ctx context.Context) (model.ReportStats, error) {
		return s.Assembler.ReportStats(ctx, userID)
	})
}

func (s *ReportService) HoursDistribution(ctx context.Context, userID uint) ([]model.HoursBucket, error) {
	return cachedReport(ctx, s.Cache, util.ReportHoursDistribution, userID, func(ctx context.Context) ([]model.HoursBucket, error) {
		activity, err := s.StreakRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Assembler.HoursDistribution(activity), nil
	})
}

func (s *ReportService) SkillDistribution(ctx context.Context, userID uint) ([]model.CategoryShare, error) {
	return cachedReport(ctx, s.Cache, util.ReportSkillDistribution, userID, func(ctx context.Context) ([]model.CategoryShare, error) {
		skills, err := s.SkillRepo.ListWithCategory(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Assembler.SkillDistribution(skills), nil
	})
}

func (s *ReportService) CertificationHistory(ctx context.Context, userID uint) ([]model.CertificationMonth, error) {
	return cachedReport(ctx, s.Cache, util.ReportCertificationHistory, userID, func(ctx context.Context) ([]model.CertificationMonth, error) {
		certs, err := s.CertRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Assembler.CertificationHistory(certs), nil
	})
}

// SkillGrowth 各技能类型按月的平均熟练度宽表
func (s *ReportService) SkillGrowth(ctx context.Context, userID uint) (json.RawMessage, error) {
	return cachedReport(ctx, s.Cache, util.ReportSkillGrowth, userID, func(ctx context.Context) (json.RawMessage, error) {
		records, err := s.SkillRepo.ProficiencyHistory(ctx, userID)
		if err != nil {
			return nil, err
		}
		return rawJSON(s.Assembler.SkillGrowth(records, analytics.SkillCategories()))
	})
}

func (s *ReportService) DailyActivity(ctx context.Context, userID uint) ([]model.DailyActivity, error) {
	return cachedReport(ctx, s.Cache, util.ReportDailyActivity, userID, func(ctx context.Context) ([]model.DailyActivity, error) {
		since := s.Assembler.Today().AddDate(0, 0, -s.Assembler.Settings().DailyActivityDays)
		activity, err := s.StreakRepo.ListSince(ctx, userID, since)
		if err != nil {
			return nil, err
		}
		return s.Assembler.DailyActivity(activity), nil
	})
}

func (s *ReportService) Overview(ctx context.Context, userID uint) (model.ReportsOverview, error) {
	return cachedReport(ctx, s.Cache, util.ReportOverview, userID, func(ctx context.Context) (model.ReportsOverview, error) {
		skills, err := s.SkillRepo.ListWithCategory(ctx, userID)
		if err != nil {
			return model.ReportsOverview{}, err
		}
		courses, err := s.CourseRepo.ListByUser(ctx, userID)
		if err != nil {
			return model.ReportsOverview{}, err
		}
		certs, err := s.CertRepo.ListByUser(ctx, userID)
		if err != nil {
			return model.ReportsOverview{}, err
		}
		activity, err := s.StreakRepo.ListByUser(ctx, userID)
		if err != nil {
			return model.ReportsOverview{}, err
		}
		return s.Assembler.ReportsOverview(skills, courses, certs, activity), nil
	})
}

func (s *ReportService) SkillsDistribution(ctx context.Context, userID uint) ([]model.SkillTypeSummary, error) {
	return cachedReport(ctx, s.Cache, util.ReportSkillsDistribution, userID, func(ctx context.Context) ([]model.SkillTypeSummary, error) {
		skills, err := s.SkillRepo.ListWithCategory(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Assembler.SkillsDistribution(skills), nil
	})
}

func (s *ReportService) SkillsProgression(ctx context.Context, userID uint) ([]model.MonthlyLevel, error) {
	return cachedReport(ctx, s.Cache, util.ReportSkillsProgression, userID, func(ctx context.Context) ([]model.MonthlyLevel, error) {
		records, err := s.SkillRepo.ProficiencyHistory(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Assembler.SkillsProgression(records), nil
	})
}

func (s *ReportService) TechnicalGrowth(ctx context.Context, userID uint) ([]model.CategoryLevel, error) {
	return cachedReport(ctx, s.Cache, util.ReportTechnicalGrowth, userID, func(ctx context.Context) ([]model.CategoryLevel, error) {
		records, err := s.SkillRepo.ProficiencyHistory(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Assembler.TechnicalGrowth(records), nil
	})
}

func (s *ReportService) SoftGrowth(ctx context.Context, userID uint) ([]model.SkillLevel, error) {
	return cachedReport(ctx, s.Cache, util.ReportSoftGrowth, userID, func(ctx context.Context) ([]model.SkillLevel, error) {
		records, err := s.SkillRepo.ProficiencyHistory(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Assembler.SoftGrowth(records), nil
	})
}

func (s *ReportService) OverallProgress(ctx context.Context, userID uint) ([]model.TypeLevel, error) {
	return cachedReport(ctx, s.Cache, util.ReportOverallProgress, userID, func(ctx context.Context) ([]model.TypeLevel, error) {
		records, err := s.SkillRepo.ProficiencyHistory(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Assembler.OverallProgress(records), nil
	})
}

// ClearCache 丢弃用户已缓存的全部报表
func (s *ReportService) ClearCache(ctx context.Context, userID uint) error {
	return s.Cache.Invalidate(ctx, userID)
}
