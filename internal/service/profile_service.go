package service

import (
	"context"
	"errors"
	"strconv"

	"skilltracker_backend/internal/analytics"
	"skilltracker_backend/internal/model"
	"skilltracker_backend/internal/repository"
	"skilltracker_backend/internal/util"
	"skilltracker_backend/pkg/cache"

	"gorm.io/gorm"
)

type ProfileService struct {
	UserRepo   *repository.UserRepository
	StreakRepo *repository.StreakRepository
	CourseRepo *repository.CourseRepository
	CertRepo   *repository.CertificationRepository
	StatRepo   *repository.MonthlyStatRepository
	Assembler  *analytics.Assembler
	Cache      *cache.ReportCache
}

func NewProfileService(
	userRepo *repository.UserRepository,
	streakRepo *repository.StreakRepository,
	courseRepo *repository.CourseRepository,
	certRepo *repository.CertificationRepository,
	statRepo *repository.MonthlyStatRepository,
	assembler *analytics.Assembler,
	reportCache *cache.ReportCache,
) *ProfileService {
	return &ProfileService{
		UserRepo:   userRepo,
		StreakRepo: streakRepo,
		CourseRepo: courseRepo,
		CertRepo:   certRepo,
		StatRepo:   statRepo,
		Assembler:  assembler,
		Cache:      reportCache,
	}
}

// Overview 个人主页概览；用户不存在时返回 util.ErrUserNotFound
func (s *ProfileService) Overview(ctx context.Context, userID uint) (model.ProfileOverview, error) {
	return cachedReport(ctx, s.Cache, util.ReportProfileOverview, userID, func(ctx context.Context) (model.ProfileOverview, error) {
		in, err := s.loadProfileInput(ctx, userID)
		if err != nil {
			return model.ProfileOverview{}, err
		}
		return s.Assembler.ProfileOverview(in), nil
	})
}

func (s *ProfileService) loadProfileInput(ctx context.Context, userID uint) (analytics.ProfileInput, error) {
	var in analytics.ProfileInput

	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return in, util.ErrUserNotFound
	}
	if err != nil {
		return in, err
	}
	in.User = *user

	if in.MonthlyTarget, err = s.UserRepo.FindMonthlyTarget(ctx, userID); err != nil {
		return in, err
	}
	if in.Activity, err = s.StreakRepo.ListByUser(ctx, userID); err != nil {
		return in, err
	}
	if in.Courses, err = s.CourseRepo.ListByUser(ctx, userID); err != nil {
		return in, err
	}
	if in.Certifications, err = s.CertRepo.ListByUser(ctx, userID); err != nil {
		return in, err
	}
	if in.CurrentStat, err = s.StatRepo.FindMonthlyStat(ctx, userID, s.Assembler.CurrentMonth()); err != nil {
		return in, err
	}
	return in, nil
}

// RecentStreak 最近 days 个有学习记录的日期
func (s *ProfileService) RecentStreak(ctx context.Context, userID uint, days int) ([]model.StreakDay, error) {
	kind := util.ReportProfileStreak + ":" + strconv.Itoa(days)
	return cachedReport(ctx, s.Cache, kind, userID, func(ctx context.Context) ([]model.StreakDay, error) {
		activity, err := s.StreakRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Assembler.RecentStreak(activity, days), nil
	})
}
