package repository

import (
	"context"

	"skilltracker_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) ListByUser(ctx context.Context, userID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}
