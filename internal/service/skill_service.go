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

type SkillService struct {
	SkillRepo *repository.SkillRepository
	Assembler *analytics.Assembler
	Cache     *cache.ReportCache
}

func NewSkillService(skillRepo *repository.SkillRepository, assembler *analytics.Assembler, reportCache *cache.ReportCache) *SkillService {
	return &SkillService{
		SkillRepo: skillRepo,
		Assembler: assembler,
		Cache:     reportCache,
	}
}

// List 技能列表及熟练度历史
func (s *SkillService) List(ctx context.Context, userID uint) ([]model.SkillSummary, error) {
	return cachedReport(ctx, s.Cache, util.ReportSkills, userID, func(ctx context.Context) ([]model.SkillSummary, error) {
		skills, err := s.SkillRepo.ListWithCategory(ctx, userID)
		if err != nil {
			return nil, err
		}
		records, err := s.SkillRepo.ProficiencyHistory(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Assembler.SkillSummaries(skills, records), nil
	})
}

// Growth 最近几个月的技能成长宽表
func (s *SkillService) Growth(ctx context.Context, userID uint) (json.RawMessage, error) {
	return cachedReport(ctx, s.Cache, util.ReportSkillGrowth+":recent", userID, func(ctx context.Context) (json.RawMessage, error) {
		records, err := s.SkillRepo.ProficiencyHistory(ctx, userID)
		if err != nil {
			return nil, err
		}
		return rawJSON(s.Assembler.RecentSkillGrowth(records, analytics.SkillCategories()))
	})
}

func (s *SkillService) Recommendations(ctx context.Context, userID uint) ([]model.SkillRecommendation, error) {
	return cachedReport(ctx, s.Cache, util.ReportRecommendations, userID, func(ctx context.Context) ([]model.SkillRecommendation, error) {
		skills, err := s.SkillRepo.ListWithCategory(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Assembler.Recommendations(skills), nil
	})
}

func (s *SkillService) MostUsed(ctx context.Context, userID uint) ([]model.SkillUsage, error) {
	return cachedReport(ctx, s.Cache, util.ReportMostUsedSkills, userID, func(ctx context.Context) ([]model.SkillUsage, error) {
		skills, err := s.SkillRepo.ListWithCategory(ctx, userID)
		if err != nil {
			return nil, err
		}
		records, err := s.SkillRepo.ProficiencyHistory(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Assembler.MostUsedSkills(skills, records), nil
	})
}

func (s *SkillService) RecentImprovements(ctx context.Context, userID uint) ([]model.SkillImprovement, error) {
	return cachedReport(ctx, s.Cache, util.ReportRecentImprovements, userID, func(ctx context.Context) ([]model.SkillImprovement, error) {
		records, err := s.SkillRepo.ProficiencyHistory(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Assembler.RecentImprovements(records), nil
	})
}
