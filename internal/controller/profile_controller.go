package controller

import (
	"errors"
	"net/http"

	"skilltracker_backend/internal/service"
	"skilltracker_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// @Summary 个人主页概览
// @Description 学习时长、课程与证书汇总、目标完成度与亮点
// @Tags 个人主页
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.ProfileOverview}
// @Failure 404 {object} util.Response
// @Router /api/profile/overview [get]
func (c *ProfileController) GetOverview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	overview, err := c.ProfileService.Overview(ctx.Request.Context(), user.UserID)
	if errors.Is(err, util.ErrUserNotFound) {
		util.Error(ctx, http.StatusNotFound, util.ErrUserNotFound.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}

// @Summary 最近学习记录
// @Description 最近若干个有学习记录的日期及当天时长，按日期升序
// @Tags 个人主页
// @Produce json
// @Security BearerAuth
// @Param days query int false "天数，默认 7，最大 30"
// @Success 200 {object} util.Response{data=[]model.StreakDay}
// @Router /api/profile/streak [get]
func (c *ProfileController) GetStreak(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	days := util.ParseLimit(ctx.Query("days"), util.RecentStreakDays, 30)
	streak, err := c.ProfileService.RecentStreak(ctx.Request.Context(), user.UserID, days)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, streak)
}
