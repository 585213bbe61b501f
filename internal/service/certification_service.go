package service

import (
	"context"

	"skilltracker_backend/internal/analytics"
	"skilltracker_backend/internal/model"
	"skilltracker_backend/internal/repository"
	"skilltracker_backend/internal/util"
	"skilltracker_backend/pkg/cache"
)

type CertificationService struct {
	CertRepo  *repository.CertificationRepository
	Assembler *analytics.Assembler
	Cache     *cache.ReportCache
}

func NewCertificationService(certRepo *repository.CertificationRepository, assembler *analytics.Assembler, reportCache *cache.ReportCache) *CertificationService {
	return &CertificationService{
		CertRepo:  certRepo,
		Assembler: assembler,
		Cache:     reportCache,
	}
}

// Stats 按推导状态统计证书
func (s *CertificationService) Stats(ctx context.Context, userID uint) (model.CertificationStats, error) {
	return cachedReport(ctx, s.Cache, util.ReportCertificationStats, userID, func(ctx context.Context) (model.CertificationStats, error) {
		certs, err := s.CertRepo.ListByUser(ctx, userID)
		if err != nil {
			return model.CertificationStats{}, err
		}
		return s.Assembler.CertificationStats(certs), nil
	})
}
