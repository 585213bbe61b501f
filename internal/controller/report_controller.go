package controller

import (
	"context"

	"skilltracker_backend/internal/service"
	"skilltracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// serveReport 取当前用户并调用报表方法，错误统一记录为 500
func serveReport[T any](ctx *gin.Context, build func(context.Context, uint) (T, error)) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	data, err := build(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, data)
}

// @Summary 月度报告卡片
// @Description 当月目标完成率、学习时长与证书数，当月统计不存在时自动补建
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.ReportStats}
// @Router /api/reports/stats [get]
func (c *ReportController) GetStats(ctx *gin.Context) {
	serveReport(ctx, c.ReportService.Stats)
}

// @Summary 学习时长分布
// @Description 最近 6 个月每月学习时长
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.HoursBucket}
// @Router /api/reports/hours-distribution [get]
func (c *ReportController) GetHoursDistribution(ctx *gin.Context) {
	serveReport(ctx, c.ReportService.HoursDistribution)
}

// @Summary 技能分布
// @Description 技术类与软技能的平均熟练度
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.CategoryShare}
// @Router /api/reports/skill-distribution [get]
func (c *ReportController) GetSkillDistribution(ctx *gin.Context) {
	serveReport(ctx, c.ReportService.SkillDistribution)
}

// @Summary 证书获取历史
// @Description 按颁发月份统计证书数量
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.CertificationMonth}
// @Router /api/reports/certification-history [get]
func (c *ReportController) GetCertificationHistory(ctx *gin.Context) {
	serveReport(ctx, c.ReportService.CertificationHistory)
}

// @Summary 技能成长曲线
// @Description 每月一行，technical 与 soft 两列为当月平均熟练度，缺失为 0
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/reports/skill-growth [get]
func (c *ReportController) GetSkillGrowth(ctx *gin.Context) {
	serveReport(ctx, c.ReportService.SkillGrowth)
}

// @Summary 每日学习时长
// @Description 最近 30 天每天的学习时长
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.DailyActivity}
// @Router /api/reports/daily-activity [get]
func (c *ReportController) GetDailyActivity(ctx *gin.Context) {
	serveReport(ctx, c.ReportService.DailyActivity)
}

// @Summary 报表总览
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.ReportsOverview}
// @Router /api/reports/overview [get]
func (c *ReportController) GetOverview(ctx *gin.Context) {
	serveReport(ctx, c.ReportService.Overview)
}

// @Summary 技能类型统计
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.SkillTypeSummary}
// @Router /api/reports/skills-distribution [get]
func (c *ReportController) GetSkillsDistribution(ctx *gin.Context) {
	serveReport(ctx, c.ReportService.SkillsDistribution)
}

// @Summary 技能熟练度走势
// @Description 最近 6 个月全部技能的月平均熟练度
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.MonthlyLevel}
// @Router /api/reports/skills-progression [get]
func (c *ReportController) GetSkillsProgression(ctx *gin.Context) {
	serveReport(ctx, c.ReportService.SkillsProgression)
}

// @Summary 技术类技能成长
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.CategoryLevel}
// @Router /api/reports/technical-growth [get]
func (c *ReportController) GetTechnicalGrowth(ctx *gin.Context) {
	serveReport(ctx, c.ReportService.TechnicalGrowth)
}

// @Summary 软技能成长
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.SkillLevel}
// @Router /api/reports/soft-growth [get]
func (c *ReportController) GetSoftGrowth(ctx *gin.Context) {
	serveReport(ctx, c.ReportService.SoftGrowth)
}

// @Summary 整体进度
// @Description 每种技能类型最近 6 个月的平均熟练度
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.TypeLevel}
// @Router /api/reports/overall-progress [get]
func (c *ReportController) GetOverallProgress(ctx *gin.Context) {
	serveReport(ctx, c.ReportService.OverallProgress)
}

// @Summary 清除报表缓存
// @Tags 报表
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/reports/cache [delete]
func (c *ReportController) ClearCache(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ReportService.ClearCache(ctx.Request.Context(), user.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
