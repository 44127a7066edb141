package controller

import (
	"childwell_backend/internal/service"
	"childwell_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NutritionController struct {
	NutritionService *service.NutritionService
	ChildService     *service.ChildService
}

func NewNutritionController(nutritionService *service.NutritionService, childService *service.ChildService) *NutritionController {
	return &NutritionController{
		NutritionService: nutritionService,
		ChildService:     childService,
	}
}

// AddRecord godoc
// @Summary 录入营养记录
// @Description 追加一次身体测量与饮食习惯并整体重建营养建议
// @Tags 营养健康
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Param   body body service.NutritionRecordRequest true "测量与习惯"
// @Success 201 {object} util.Response{data=model.NutritionRecord}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "无权访问"
// @Router /api/children/{childId}/nutrition/records [post]
func (c *NutritionController) AddRecord(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}

	var req service.NutritionRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.NutritionService.AddRecord(ctx.Request.Context(), id, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, record)
}

// ListRecords godoc
// @Summary 营养记录历史
// @Tags 营养健康
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Success 200 {object} util.Response{data=[]model.NutritionRecord}
// @Failure 403 {object} util.Response "无权访问"
// @Router /api/children/{childId}/nutrition/records [get]
func (c *NutritionController) ListRecords(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}

	records, err := c.NutritionService.ListRecords(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// GetSummary godoc
// @Summary 营养概况
// @Description 基于最新记录的 BMI 分类、习惯得分与健康综合分
// @Tags 营养健康
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Success 200 {object} util.Response{data=insight.NutritionSummary}
// @Failure 403 {object} util.Response "无权访问"
// @Router /api/children/{childId}/nutrition/summary [get]
func (c *NutritionController) GetSummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}

	summary, err := c.NutritionService.GetSummary(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// ListRecommendations godoc
// @Summary 营养建议列表
// @Description 按优先级降序返回当前建议集
// @Tags 营养健康
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Success 200 {object} util.Response{data=[]model.NutritionRecommendation}
// @Failure 403 {object} util.Response "无权访问"
// @Router /api/children/{childId}/nutrition/recommendations [get]
func (c *NutritionController) ListRecommendations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}

	recs, err := c.NutritionService.ListRecommendations(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, recs)
}
