package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learning_pulse_backend/internal/config"
	"learning_pulse_backend/internal/controller"
	"learning_pulse_backend/internal/progress"
	"learning_pulse_backend/internal/repository"
	"learning_pulse_backend/internal/service"
	"learning_pulse_backend/pkg/configwatcher"
	"learning_pulse_backend/pkg/database"
	"learning_pulse_backend/pkg/logger"
	"learning_pulse_backend/pkg/monitoring"
	"learning_pulse_backend/pkg/security"
	"learning_pulse_backend/pkg/tracing"

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
	user         *repository.UserRepository
	course       *repository.CourseRepository
	activity     *repository.ActivityRepository
	assessment   *repository.AssessmentRepository
	learningPath *repository.LearningPathRepository
	progress     *repository.ProgressRepository
	analytics    *repository.AnalyticsRepository
	consent      *repository.ConsentRepository
}

type services struct {
	auth           *service.AuthService
	user           *service.UserService
	storage        *service.StorageService
	content        *service.ContentService
	catalog        *service.CatalogService
	progress       *service.ProgressService
	recommendation *service.RecommendationService
	analytics      *service.AnalyticsService
	consent        *service.ConsentService
	dashboard      *service.DashboardService
	mockData       *service.MockDataService
}

type controllers struct {
	auth           *controller.AuthController
	user           *controller.UserController
	content        *controller.ContentController
	catalog        *controller.CatalogController
	progress       *controller.ProgressController
	recommendation *controller.RecommendationController
	analytics      *controller.AnalyticsController
	consent        *controller.ConsentController
	dashboard      *controller.DashboardController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		course:       repository.NewCourseRepository(db),
		activity:     repository.NewActivityRepository(db),
		assessment:   repository.NewAssessmentRepository(db),
		learningPath: repository.NewLearningPathRepository(db),
		progress:     repository.NewProgressRepository(db),
		analytics:    repository.NewAnalyticsRepository(db),
		consent:      repository.NewConsentRepository(db),
	}
}

// progressConfig merges file/env overrides onto the built-in defaults.
func progressConfig(cfg *config.Config) progress.Config {
	pc := progress.DefaultConfig()
	if cfg.Progress.IntermediatePoints > 0 {
		pc.Skill.Intermediate = cfg.Progress.IntermediatePoints
	}
	if cfg.Progress.AdvancedPoints > 0 {
		pc.Skill.Advanced = cfg.Progress.AdvancedPoints
	}
	if cfg.Progress.ExpertPoints > 0 {
		pc.Skill.Expert = cfg.Progress.ExpertPoints
	}
	if cfg.Progress.RecommendLimit > 0 {
		pc.RecommendLimit = cfg.Progress.RecommendLimit
	}
	return pc
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	pc := progressConfig(cfg)

	s := &services{}
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.content = service.NewContentService(repos.course, s.storage)
	s.catalog = service.NewCatalogService(repos.activity, repos.assessment, repos.learningPath)
	s.progress = service.NewProgressService(
		repos.progress, repos.activity, repos.assessment, repos.learningPath,
		repos.analytics, rdb, pc)
	s.recommendation = service.NewRecommendationService(
		repos.progress, repos.activity, repos.assessment, repos.learningPath,
		repos.consent, rdb, pc)
	s.analytics = service.NewAnalyticsService(
		repos.analytics, repos.consent, repos.progress, repos.assessment, pc)
	s.consent = service.NewConsentService(repos.consent, repos.analytics, repos.progress, repos.user)
	s.dashboard = service.NewDashboardService(repos.progress, repos.analytics, repos.user, s.recommendation, rdb, pc)
	s.mockData = service.NewMockDataService(
		repos.user, repos.course, repos.activity, repos.assessment,
		repos.learningPath, repos.consent, s.progress, s.analytics)
	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		user:           controller.NewUserController(s.user),
		content:        controller.NewContentController(s.content),
		catalog:        controller.NewCatalogController(s.catalog),
		progress:       controller.NewProgressController(s.progress),
		recommendation: controller.NewRecommendationController(s.recommendation),
		analytics:      controller.NewAnalyticsController(s.analytics),
		consent:        controller.NewConsentController(s.consent),
		dashboard:      controller.NewDashboardController(s.dashboard),
		health:         controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("learning-pulse", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	if cfg.SeedDemoData {
		if err := services.mockData.Seed(context.Background()); err != nil {
			logger.Log.Error("demo data seed failed", zap.Error(err))
		}
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		reloaded, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("configuration reloaded")
		for _, cb := range app.configCallbacks {
			cb(reloaded)
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

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
