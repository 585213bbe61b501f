package controller

import (
	"skilltracker_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type CertificationController struct {
	CertificationService *service.CertificationService
}

func NewCertificationController(certificationService *service.CertificationService) *CertificationController {
	return &CertificationController{CertificationService: certificationService}
}

// @Summary 证书统计
// @Description 证书总数及有效、即将过期、已过期数量
// @Tags 证书
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.CertificationStats}
// @Router /api/certifications/stats [get]
func (c *CertificationController) GetStats(ctx *gin.Context) {
	serveReport(ctx, c.CertificationService.Stats)
}
