package repository

import (
	"context"

	"skilltracker_backend/internal/model"

	"gorm.io/gorm"
)

type CertificationRepository struct {
	DB *gorm.DB
}

func NewCertificationRepository(db *gorm.DB) *CertificationRepository {
	return &CertificationRepository{DB: db}
}

// ListByUser 按颁发日期升序
func (r *CertificationRepository) ListByUser(ctx context.Context, userID uint) ([]model.Certification, error) {
	var certs []model.Certification
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("issue_date ASC").Find(&certs).Error
	return certs, err
}

func (r *CertificationRepository) Create(ctx context.Context, cert *model.Certification) error {
	return r.DB.WithContext(ctx).Create(cert).Error
}
