package app

import (
	"childwell_backend/docs"
	"childwell_backend/internal/config"
	"childwell_backend/internal/middleware"
	"childwell_backend/internal/model"

	"childwell_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerAccountRoutes(authGroup, c)
		a.registerChildRoutes(authGroup, c)
		a.registerCourseRoutes(authGroup, c)
	}

	// 3. 题库与课程维护接口（指导员及管理员）
	a.registerManagementRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerAccountRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.PUT("/me", c.auth.UpdateProfile)

	// 评估作答前拉取启用中的题目
	rg.GET("/questions", c.question.ListActiveQuestions)
}

func (a *App) registerChildRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/children", c.child.CreateChild)
	rg.GET("/children", c.child.ListChildren)

	child := rg.Group("/children/:childId")
	{
		child.GET("", c.child.GetChild)
		child.PUT("", c.child.UpdateChild)
		child.DELETE("", c.child.DeleteChild)

		// 健康评估
		child.POST("/assessments", c.assessment.SubmitAssessment)
		child.GET("/assessments", c.assessment.ListAssessments)
		child.GET("/assessments/:assessmentId", c.assessment.GetAssessment)

		// 学业表现
		child.POST("/education/records", c.education.AddRecord)
		child.GET("/education/records", c.education.ListRecords)
		child.GET("/education/analysis", c.education.GetAnalysis)
		child.GET("/education/suggestions", c.education.ListSuggestions)

		// 营养健康
		child.POST("/nutrition/records", c.nutrition.AddRecord)
		child.GET("/nutrition/records", c.nutrition.ListRecords)
		child.GET("/nutrition/summary", c.nutrition.GetSummary)
		child.GET("/nutrition/recommendations", c.nutrition.ListRecommendations)

		// 总览与课程报名
		child.GET("/dashboard", c.dashboard.GetChildDashboard)
		child.GET("/enrollments", c.course.ListEnrollments)
	}
}

func (a *App) registerCourseRoutes(rg *gin.RouterGroup, c *controllers) {
	courses := rg.Group("/courses")
	{
		courses.GET("", c.course.ListCourses)
		courses.GET("/:id", c.course.GetCourse)
		courses.GET("/:id/materials", c.course.ListMaterials)
		courses.POST("/:id/enroll", c.course.Enroll)
		courses.PUT("/:id/progress", c.course.UpdateProgress)
	}
}

func (a *App) registerManagementRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	// 管理员经 RoleMiddleware 直接放行
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Instructor))
	{
		// 题库维护
		admin.POST("/questions", c.question.CreateQuestion)
		admin.GET("/questions", c.question.ListQuestions)
		admin.GET("/questions/:id", c.question.GetQuestion)
		admin.PUT("/questions/:id", c.question.UpdateQuestion)
		admin.DELETE("/questions/:id", c.question.DeleteQuestion)

		// 课程维护
		admin.POST("/courses", c.course.CreateCourse)
		admin.PUT("/courses/:id", c.course.UpdateCourse)
		admin.DELETE("/courses/:id", c.course.DeleteCourse)
		admin.POST("/courses/:id/materials", c.course.UploadMaterial)
		admin.DELETE("/materials/:id", c.course.DeleteMaterial)
	}
}
