package controller

import (
	"childwell_backend/internal/service"
	"childwell_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// CreateQuestion godoc
// @Summary 创建评估题目
// @Description 管理员维护题库，题目带各问题维度的权重
// @Tags 题库
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.QuestionRequest true "题目定义"
// @Success 201 {object} util.Response{data=model.AssessmentQuestion}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.CreateQuestion(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// ListQuestions godoc
// @Summary 题库分页列表
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	page, limit := pagination(ctx)
	questions, total, err := c.QuestionService.ListQuestions(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: questions, Total: total, Page: page, Limit: limit})
}

// ListActiveQuestions godoc
// @Summary 启用中的评估题目
// @Description 提交评估前拉取当前启用的题目
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.AssessmentQuestion}
// @Router /api/questions [get]
func (c *QuestionController) ListActiveQuestions(ctx *gin.Context) {
	questions, err := c.QuestionService.ListActiveQuestions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// GetQuestion godoc
// @Summary 题目详情
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "题目ID"
// @Success 200 {object} util.Response{data=model.AssessmentQuestion}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	q, err := c.QuestionService.GetQuestion(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, q)
}

// UpdateQuestion godoc
// @Summary 更新评估题目
// @Tags 题库
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "题目ID"
// @Param   body body service.QuestionRequest true "题目定义"
// @Success 200 {object} util.Response{data=model.AssessmentQuestion}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.UpdateQuestion(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary 删除评估题目
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuestionService.DeleteQuestion(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
