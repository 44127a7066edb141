package controller

import (
	"childwell_backend/internal/insight"
	"childwell_backend/internal/service"
	"childwell_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
	ChildService      *service.ChildService
}

func NewAssessmentController(assessmentService *service.AssessmentService, childService *service.ChildService) *AssessmentController {
	return &AssessmentController{
		AssessmentService: assessmentService,
		ChildService:      childService,
	}
}

// SubmitAssessment godoc
// @Summary 提交健康评估
// @Description 对指定儿童执行一次评估：校验方法、归一化作答、按维度评分分级，生成不可变报告
// @Tags 健康评估
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Param   body body service.SubmitAssessmentRequest true "评分方法与作答"
// @Success 201 {object} util.Response{data=model.AssessmentResult}
// @Failure 400 {object} util.Response "方法不合法或没有作答"
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "档案不存在"
// @Router /api/children/{childId}/assessments [post]
func (c *AssessmentController) SubmitAssessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}

	var req service.SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.SubmitAssessment(ctx.Request.Context(), id, claims.UserID, req)
	if err != nil {
		var verr *insight.ValidationError
		if errors.As(err, &verr) {
			util.BadRequest(ctx, verr.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, result)
}

// ListAssessments godoc
// @Summary 评估历史
// @Description 按评估日期倒序分页返回儿童的评估报告
// @Tags 健康评估
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 403 {object} util.Response "无权访问"
// @Router /api/children/{childId}/assessments [get]
func (c *AssessmentController) ListAssessments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}

	page, limit := pagination(ctx)
	results, total, err := c.AssessmentService.ListAssessments(id, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: results, Total: total, Page: page, Limit: limit})
}

// GetAssessment godoc
// @Summary 评估报告详情
// @Tags 健康评估
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Param   assessmentId path string true "评估ID"
// @Success 200 {object} util.Response{data=model.AssessmentResult}
// @Failure 404 {object} util.Response "报告不存在"
// @Router /api/children/{childId}/assessments/{assessmentId} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}

	result, err := c.AssessmentService.GetAssessment(ctx.Param("assessmentId"))
	if err != nil || result.ChildID != id {
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			util.LogInternalError(ctx, err)
			return
		}
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, result)
}
