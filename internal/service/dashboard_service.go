package service

import (
	"context"

	"skilltracker_backend/internal/analytics"
	"skilltracker_backend/internal/model"
	"skilltracker_backend/internal/repository"
	"skilltracker_backend/internal/util"
	"skilltracker_backend/pkg/cache"
)

type DashboardService struct {
	StatRepo   *repository.MonthlyStatRepository
	StreakRepo *repository.StreakRepository
	Assembler  *analytics.Assembler
	Cache      *cache.ReportCache
}

func NewDashboardService(
	statRepo *repository.MonthlyStatRepository,
	streakRepo *repository.StreakRepository,
	assembler *analytics.Assembler,
	reportCache *cache.ReportCache,
) *DashboardService {
	return &DashboardService{
		StatRepo:   statRepo,
		StreakRepo: streakRepo,
		Assembler:  assembler,
		Cache:      reportCache,
	}
}

// Stats 本月与上月对比；本月统计行不存在时补建，上月缺失按 0 处理
func (s *DashboardService) Stats(ctx context.Context, userID uint) (model.DashboardStats, error) {
	return tracedReport(ctx, util.ReportDashboardStats, userID, func(ctx context.Context) (model.DashboardStats, error) {
		current, err := s.Assembler.EnsureMonthlyStat(ctx, userID, s.Assembler.CurrentMonth())
		if err != nil {
			return model.DashboardStats{}, err
		}
		previous, err := s.StatRepo.FindMonthlyStat(ctx, userID, s.Assembler.PreviousMonth())
		if err != nil {
			return model.DashboardStats{}, err
		}
		return s.Assembler.DashboardStats(current, previous), nil
	})
}

// Streak 当前与最长连续学习天数
func (s *DashboardService) Streak(ctx context.Context, userID uint) (model.StreakSummary, error) {
	return cachedReport(ctx, s.Cache, util.ReportStreakSummary, userID, func(ctx context.Context) (model.StreakSummary, error) {
		activity, err := s.StreakRepo.ListByUser(ctx, userID)
		if err != nil {
			return model.StreakSummary{}, err
		}
		return s.Assembler.Streaks(activity), nil
	})
}
