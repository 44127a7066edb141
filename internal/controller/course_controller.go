package controller

import (
	"childwell_backend/internal/model"
	"childwell_backend/internal/service"
	"childwell_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
	ChildService  *service.ChildService
}

func NewCourseController(courseService *service.CourseService, childService *service.ChildService) *CourseController {
	return &CourseController{
		CourseService: courseService,
		ChildService:  childService,
	}
}

func courseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "无效的课程ID")
		return 0, false
	}
	return uint(id), true
}

func writeCourseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrCourseCodeTaken):
		util.Error(ctx, 409, "课程编码已存在")
	case errors.Is(err, util.ErrNotEnrolled):
		util.Error(ctx, 404, "尚未报名该课程")
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateCourse godoc
// @Summary 创建推荐课程
// @Description 课程编码与评估目录中的推荐课程对应
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 409 {object} util.Response "课程编码已存在"
// @Router /api/admin/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(req)
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// ListCourses godoc
// @Summary 课程列表
// @Description 普通用户只看到已发布课程
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, limit := pagination(ctx)

	publishedOnly := claims == nil || claims.Role != model.Admin
	courses, total, err := c.CourseService.ListCourses(page, limit, publishedOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// GetCourse godoc
// @Summary 课程详情
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}
	course, err := c.CourseService.GetCourse(id)
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body service.CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(id, req)
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}
	if err := c.CourseService.DeleteCourse(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadMaterial godoc
// @Summary 上传课程素材
// @Description multipart 上传视频或文档，视频自动探测时长
// @Tags 课程
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   title formData string true "素材标题"
// @Param   order formData int false "排序"
// @Param   file formData file true "素材文件"
// @Success 201 {object} util.Response{data=model.CourseMaterial}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id}/materials [post]
func (c *CourseController) UploadMaterial(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "素材标题不能为空")
		return
	}
	order, _ := strconv.Atoi(ctx.DefaultPostForm("order", "0"))

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}

	material, err := c.CourseService.UploadMaterial(ctx.Request.Context(), id, title, order, file)
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Created(ctx, material)
}

// ListMaterials godoc
// @Summary 课程素材列表
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.CourseMaterial}
// @Router /api/courses/{id}/materials [get]
func (c *CourseController) ListMaterials(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}
	materials, err := c.CourseService.ListMaterials(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, materials)
}

// DeleteMaterial godoc
// @Summary 删除课程素材
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "素材ID"
// @Success 200 {object} util.Response
// @Router /api/admin/materials/{id} [delete]
func (c *CourseController) DeleteMaterial(ctx *gin.Context) {
	if err := c.CourseService.DeleteMaterial(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// EnrollRequest 课程报名请求
// swagger:model EnrollRequest
type EnrollRequest struct {
	ChildID uint `json:"childId" binding:"required"`
}

// Enroll godoc
// @Summary 课程报名
// @Description 家长为自己的孩子报名已发布课程，重复报名幂等
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body EnrollRequest true "儿童ID"
// @Success 201 {object} util.Response{data=model.CourseEnrollment}
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, req.ChildID); err != nil {
		writeChildError(ctx, err)
		return
	}

	enrollment, err := c.CourseService.Enroll(id, req.ChildID)
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// ProgressRequest 学习进度更新请求
// swagger:model ProgressRequest
type ProgressRequest struct {
	ChildID  uint    `json:"childId" binding:"required"`
	Progress float64 `json:"progress" binding:"min=0,max=100"`
}

// UpdateProgress godoc
// @Summary 更新学习进度
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body ProgressRequest true "进度"
// @Success 200 {object} util.Response{data=model.CourseEnrollment}
// @Failure 404 {object} util.Response "尚未报名该课程"
// @Router /api/courses/{id}/progress [put]
func (c *CourseController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, req.ChildID); err != nil {
		writeChildError(ctx, err)
		return
	}

	enrollment, err := c.CourseService.UpdateProgress(id, req.ChildID, req.Progress)
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, enrollment)
}

// ListEnrollments godoc
// @Summary 儿童的课程报名列表
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   childId path int true "儿童ID"
// @Success 200 {object} util.Response{data=[]model.CourseEnrollment}
// @Failure 403 {object} util.Response "无权访问"
// @Router /api/children/{childId}/enrollments [get]
func (c *CourseController) ListEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := childID(ctx)
	if !ok {
		return
	}
	if _, err := c.ChildService.GetChildFor(claims, id); err != nil {
		writeChildError(ctx, err)
		return
	}

	enrollments, err := c.CourseService.ListEnrollments(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}
