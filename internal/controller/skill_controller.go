package controller

import (
	"skilltracker_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService *service.SkillService
}

func NewSkillController(skillService *service.SkillService) *SkillController {
	return &SkillController{SkillService: skillService}
}

// @Summary 技能列表
// @Description 按类型、名称排序，附熟练度历史与对应月份
// @Tags 技能
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.SkillSummary}
// @Router /api/skills [get]
func (c *SkillController) List(ctx *gin.Context) {
	serveReport(ctx, c.SkillService.List)
}

// @Summary 技能成长
// @Description 最近 6 个月的 technical / soft 平均熟练度
// @Tags 技能
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/skills/growth [get]
func (c *SkillController) GetGrowth(ctx *gin.Context) {
	serveReport(ctx, c.SkillService.Growth)
}

// @Summary 技能提升建议
// @Description 熟练度最低的 5 项技能及优先级
// @Tags 技能
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.SkillRecommendation}
// @Router /api/skills/recommendations [get]
func (c *SkillController) GetRecommendations(ctx *gin.Context) {
	serveReport(ctx, c.SkillService.Recommendations)
}

// @Summary 最常练习的技能
// @Tags 技能
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.SkillUsage}
// @Router /api/skills/most-used [get]
func (c *SkillController) GetMostUsed(ctx *gin.Context) {
	serveReport(ctx, c.SkillService.MostUsed)
}

// @Summary 最近的熟练度记录
// @Tags 技能
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.SkillImprovement}
// @Router /api/skills/recent-improvements [get]
func (c *SkillController) GetRecentImprovements(ctx *gin.Context) {
	serveReport(ctx, c.SkillService.RecentImprovements)
}
