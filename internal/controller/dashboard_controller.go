package controller

import (
	"skilltracker_backend/internal/service"
	"skilltracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// @Summary 获取仪表盘统计
// @Description 本月在学课程、证书、已掌握技能、学习时长及相对上月的变化百分比
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.DashboardStats}
// @Router /api/dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.DashboardService.Stats(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary 获取连续学习天数
// @Description 当前连续学习天数与历史最长连续天数
// @Tags 仪表盘
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.StreakSummary}
// @Router /api/dashboard/streak [get]
func (c *DashboardController) GetStreak(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	streak, err := c.DashboardService.Streak(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, streak)
}
