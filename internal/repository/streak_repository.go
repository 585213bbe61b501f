package repository

import (
	"context"
	"time"

	"skilltracker_backend/internal/model"

	"gorm.io/gorm"
)

type StreakRepository struct {
	DB *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{DB: db}
}

// ListByUser 用户全部学习记录，按日期升序
func (r *StreakRepository) ListByUser(ctx context.Context, userID uint) ([]model.LearningStreak, error) {
	var records []model.LearningStreak
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

// ListSince 指定日期（含）之后的学习记录
func (r *StreakRepository) ListSince(ctx context.Context, userID uint, since time.Time) ([]model.LearningStreak, error) {
	var records []model.LearningStreak
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date ASC").
		Find(&records).Error
	return records, err
}

func (r *StreakRepository) Create(ctx context.Context, record *model.LearningStreak) error {
	return r.DB.WithContext(ctx).Create(record).Error
}
