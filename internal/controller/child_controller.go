package controller

import (
	"childwell_backend/internal/service"
	"childwell_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChildController struct {
	ChildService *service.ChildService
}

func NewChildController(childService *service.ChildService) *ChildController {
	return &ChildController{ChildService: childService}
}

// pagination 解析分页参数，默认 page=1 limit=10
func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// childID 解析路径中的儿童 ID
func childID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("childId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的儿童ID")
		return 0, false
	}
	return uint(id), true
}

// writeChildError 归属校验失败与未找到的统一出口
func writeChildError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrChildNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateChild godoc
// @Summary 创建儿童档案
// @Description 家长为自己的孩子建档
// @Tags 儿童档案
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ChildRequest true "儿童信息"
// @Success 201 {object} util.Response{data=model.Child}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/children [post]
func (c *ChildController) CreateChild(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ChildRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	child, err := c.ChildService.CreateChild(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, child)
}

// ListChildren godoc
// @Summary 儿童档案列表
// @Description 家长看到自己的孩子，指导员和管理员看到全部
// @Tags 儿童档案
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/children [get]
func (c *ChildController) ListChildren(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	children, total, err := c.ChildService.ListChildren(claims, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: children, Total: total, Page: page, Limit: limit})
}

// GetChild godoc
// @Summary 儿童档案详情
// @Tags 儿童档案
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Success 200 {object} util.Response{data=model.Child}
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "档案不存在"
// @Router /api/children/{childId} [get]
func (c *ChildController) GetChild(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}

	child, err := c.ChildService.GetChildFor(claims, id)
	if err != nil {
		writeChildError(ctx, err)
		return
	}
	util.Success(ctx, child)
}

// UpdateChild godoc
// @Summary 更新儿童档案
// @Tags 儿童档案
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Param   body body service.ChildRequest true "儿童信息"
// @Success 200 {object} util.Response{data=model.Child}
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "档案不存在"
// @Router /api/children/{childId} [put]
func (c *ChildController) UpdateChild(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}

	var req service.ChildRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	child, err := c.ChildService.UpdateChild(claims, id, req)
	if err != nil {
		writeChildError(ctx, err)
		return
	}
	util.Success(ctx, child)
}

// DeleteChild godoc
// @Summary 删除儿童档案
// @Tags 儿童档案
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "档案不存在"
// @Router /api/children/{childId} [delete]
func (c *ChildController) DeleteChild(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}

	if err := c.ChildService.DeleteChild(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
