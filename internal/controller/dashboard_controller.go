package controller

import (
	"childwell_backend/internal/service"
	"childwell_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	ChildService     *service.ChildService
}

func NewDashboardController(dashboardService *service.DashboardService, childService *service.ChildService) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
		ChildService:     childService,
	}
}

// GetChildDashboard godoc
// @Summary 儿童健康总览
// @Description 聚合最新评估、学业分析、营养概况，结果缓存于 Redis
// @Tags 总览
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Success 200 {object} util.Response{data=service.ChildDashboard}
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "档案不存在"
// @Router /api/children/{childId}/dashboard [get]
func (c *DashboardController) GetChildDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}

	dashboard, err := c.DashboardService.GetChildDashboard(ctx.Request.Context(), id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}
