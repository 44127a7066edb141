package app

import (
	"childwell_backend/internal/config"
	"childwell_backend/internal/controller"
	"childwell_backend/internal/insight"
	"childwell_backend/internal/repository"
	"childwell_backend/internal/service"
	"childwell_backend/pkg/configwatcher"
	"childwell_backend/pkg/database"
	"childwell_backend/pkg/logger"
	"childwell_backend/pkg/monitoring"
	"childwell_backend/pkg/security"
	"childwell_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	child      *repository.ChildRepository
	question   *repository.QuestionRepository
	assessment *repository.AssessmentRepository
	education  *repository.EducationRepository
	nutrition  *repository.NutritionRepository
	course     *repository.CourseRepository
}

type services struct {
	storage    *service.StorageService
	auth       *service.AuthService
	user       *service.UserService
	child      *service.ChildService
	question   *service.QuestionService
	dashboard  *service.DashboardService
	assessment *service.AssessmentService
	education  *service.EducationService
	nutrition  *service.NutritionService
	course     *service.CourseService
}

type controllers struct {
	auth       *controller.AuthController
	child      *controller.ChildController
	question   *controller.QuestionController
	assessment *controller.AssessmentController
	education  *controller.EducationController
	nutrition  *controller.NutritionController
	course     *controller.CourseController
	dashboard  *controller.DashboardController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		child:      repository.NewChildRepository(db),
		question:   repository.NewQuestionRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		education:  repository.NewEducationRepository(db),
		nutrition:  repository.NewNutritionRepository(db),
		course:     repository.NewCourseRepository(db),
	}
}

// buildEngine 用配置覆盖内置阈值目录，装配评估引擎
func buildEngine(cfg *config.Config) *insight.Engine {
	catalog := insight.DefaultCatalogWith(
		insight.NormParams{Mean: cfg.Insight.NormMean, StdDev: cfg.Insight.NormStdDev},
		insight.SeverityBands{Borderline: cfg.Insight.TScoreBorderline, Clinical: cfg.Insight.TScoreClinical},
	)
	return insight.NewEngine(catalog, logger.Log)
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.child = service.NewChildService(repos.child)
	s.question = service.NewQuestionService(repos.question)

	s.dashboard = service.NewDashboardService(
		repos.assessment,
		repos.education,
		repos.nutrition,
		rdb,
		time.Duration(cfg.Insight.DashboardTTLMin)*time.Minute,
	)

	s.assessment = service.NewAssessmentService(repos.assessment, repos.question, buildEngine(cfg), s.dashboard)
	s.education = service.NewEducationService(repos.education, s.dashboard)
	s.nutrition = service.NewNutritionService(repos.nutrition, s.dashboard)
	s.course = service.NewCourseService(repos.course, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, s.user),
		child:      controller.NewChildController(s.child),
		question:   controller.NewQuestionController(s.question),
		assessment: controller.NewAssessmentController(s.assessment, s.child),
		education:  controller.NewEducationController(s.education, s.child),
		nutrition:  controller.NewNutritionController(s.nutrition, s.child),
		course:     controller.NewCourseController(s.course, s.child),
		dashboard:  controller.NewDashboardController(s.dashboard, s.child),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchConfig 配置文件热更新：重载后刷新引用并执行注册的回调
func (a *App) watchConfig() {
	go configwatcher.WatchConfig(filepath.Join("configs", "config.yaml"), a.Config, func(raw interface{}) {
		newCfg, ok := raw.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("Config reloaded")
		*a.Config = *newCfg
		for _, cb := range a.configCallbacks {
			cb(a.Config)
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时降级为直读数据库
		logger.Log.Warn("Failed to initialize redis, dashboard cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("childwell-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
