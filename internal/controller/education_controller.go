package controller

import (
	"childwell_backend/internal/insight"
	"childwell_backend/internal/service"
	"childwell_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type EducationController struct {
	EducationService *service.EducationService
	ChildService     *service.ChildService
}

func NewEducationController(educationService *service.EducationService, childService *service.ChildService) *EducationController {
	return &EducationController{
		EducationService: educationService,
		ChildService:     childService,
	}
}

// AddRecord godoc
// @Summary 录入成绩记录
// @Description 追加一次各科成绩并整体重建学习建议
// @Tags 学业表现
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Param   body body service.EducationRecordRequest true "各科成绩"
// @Success 201 {object} util.Response{data=model.EducationRecord}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "无权访问"
// @Router /api/children/{childId}/education/records [post]
func (c *EducationController) AddRecord(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}

	var req service.EducationRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.EducationService.AddRecord(ctx.Request.Context(), id, req)
	if err != nil {
		var verr *insight.ValidationError
		if errors.As(err, &verr) {
			util.BadRequest(ctx, verr.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, record)
}

// ListRecords godoc
// @Summary 成绩记录历史
// @Tags 学业表现
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Success 200 {object} util.Response{data=[]model.EducationRecord}
// @Failure 403 {object} util.Response "无权访问"
// @Router /api/children/{childId}/education/records [get]
func (c *EducationController) ListRecords(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}

	records, err := c.EducationService.ListRecords(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// GetAnalysis godoc
// @Summary 学业分析
// @Description 趋势、稳定度、GPA 等指标，无记录时 hasData=false
// @Tags 学业表现
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Success 200 {object} util.Response{data=insight.PerformanceAnalysis}
// @Failure 403 {object} util.Response "无权访问"
// @Router /api/children/{childId}/education/analysis [get]
func (c *EducationController) GetAnalysis(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}

	analysis, err := c.EducationService.GetAnalysis(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, analysis)
}

// ListSuggestions godoc
// @Summary 学习建议列表
// @Description 按优先级降序返回当前建议集
// @Tags 学业表现
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Success 200 {object} util.Response{data=[]model.StudySuggestion}
// @Failure 403 {object} util.Response "无权访问"
// @Router /api/children/{childId}/education/suggestions [get]
func (c *EducationController) ListSuggestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}

	suggestions, err := c.EducationService.ListSuggestions(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, suggestions)
}
