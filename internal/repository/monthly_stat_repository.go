package repository

import (
	"context"
	"errors"
	"time"

	"skilltracker_backend/internal/analytics"
	"skilltracker_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MonthlyStatRepository 月度统计行的读取与补建
type MonthlyStatRepository struct {
	DB *gorm.DB
}

func NewMonthlyStatRepository(db *gorm.DB) *MonthlyStatRepository {
	return &MonthlyStatRepository{DB: db}
}

var _ analytics.MonthlyStatStore = (*MonthlyStatRepository)(nil)

// FindMonthlyStat 记录不存在时返回 (nil, nil)
func (r *MonthlyStatRepository) FindMonthlyStat(ctx context.Context, userID uint, month time.Time) (*model.MonthlyStat, error) {
	var stat model.MonthlyStat
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, model.MonthStart(month)).
		First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

// InsertMonthlyStat 插入种子行；(user_id, month) 已存在时返回 analytics.ErrDuplicateMonthlyStat
func (r *MonthlyStatRepository) InsertMonthlyStat(ctx context.Context, stat *model.MonthlyStat) error {
	stat.Month = model.MonthStart(stat.Month)
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
			DoNothing: true,
		}).
		Create(stat)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return analytics.ErrDuplicateMonthlyStat
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return analytics.ErrDuplicateMonthlyStat
	}
	return nil
}
