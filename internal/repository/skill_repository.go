package repository

import (
	"context"

	"skilltracker_backend/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

// ListWithCategory 用户技能及所属分类
func (r *SkillRepository) ListWithCategory(ctx context.Context, userID uint) ([]model.SkillWithCategory, error) {
	var skills []model.SkillWithCategory
	err := r.DB.WithContext(ctx).
		Table("skills").
		Select("skills.id, skills.user_id, skills.name, skill_categories.type AS category, skill_categories.name AS category_name, skills.proficiency_level").
		Joins("JOIN skill_categories ON skill_categories.id = skills.category_id").
		Where("skills.user_id = ? AND skills.deleted_at IS NULL", userID).
		Order("skills.id ASC").
		Scan(&skills).Error
	return skills, err
}

// ProficiencyHistory skill_progress 关联技能与分类，按记录日期升序
func (r *SkillRepository) ProficiencyHistory(ctx context.Context, userID uint) ([]model.ProficiencyRecord, error) {
	var records []model.ProficiencyRecord
	err := r.DB.WithContext(ctx).
		Table("skill_progress").
		Select("skill_progress.skill_id, skill_progress.user_id, skills.name AS skill_name, " +
			"skill_categories.type AS category, skill_categories.name AS category_name, " +
			"skill_progress.recorded_date, skill_progress.proficiency_level").
		Joins("JOIN skills ON skills.id = skill_progress.skill_id").
		Joins("JOIN skill_categories ON skill_categories.id = skills.category_id").
		Where("skill_progress.user_id = ? AND skill_progress.deleted_at IS NULL AND skills.deleted_at IS NULL", userID).
		Order("skill_progress.recorded_date ASC, skill_progress.id ASC").
		Scan(&records).Error
	return records, err
}

func (r *SkillRepository) Create(ctx context.Context, skill *model.Skill) error {
	return r.DB.WithContext(ctx).Create(skill).Error
}

// RecordProgress 写入一条熟练度快照
func (r *SkillRepository) RecordProgress(ctx context.Context, progress *model.SkillProgress) error {
	return r.DB.WithContext(ctx).Create(progress).Error
}

func (r *SkillRepository) ListCategories(ctx context.Context) ([]model.SkillCategory, error) {
	var categories []model.SkillCategory
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}
