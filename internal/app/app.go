package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"skilltracker_backend/internal/analytics"
	"skilltracker_backend/internal/config"
	"skilltracker_backend/internal/controller"
	"skilltracker_backend/internal/repository"
	"skilltracker_backend/internal/service"
	"skilltracker_backend/pkg/cache"
	"skilltracker_backend/pkg/configwatcher"
	"skilltracker_backend/pkg/database"
	"skilltracker_backend/pkg/logger"
	"skilltracker_backend/pkg/monitoring"
	"skilltracker_backend/pkg/security"
	"skilltracker_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	ConfigDir string
	Router    *gin.Engine
	DB        *gorm.DB
	Redis     *redis.Client

	current         atomic.Pointer[config.Config]
	assembler       *analytics.Assembler
	reportCache     *cache.ReportCache
	limiter         *security.Limiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	monthlyStat   *repository.MonthlyStatRepository
	streak        *repository.StreakRepository
	skill         *repository.SkillRepository
	course        *repository.CourseRepository
	certification *repository.CertificationRepository
}

type services struct {
	dashboard     *service.DashboardService
	profile       *service.ProfileService
	report        *service.ReportService
	skill         *service.SkillService
	certification *service.CertificationService
}

type controllers struct {
	dashboard     *controller.DashboardController
	profile       *controller.ProfileController
	report        *controller.ReportController
	skill         *controller.SkillController
	certification *controller.CertificationController
	health        *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// CurrentConfig 最近一次加载的配置
func (a *App) CurrentConfig() *config.Config {
	return a.current.Load()
}

// applyConfig 保存新配置并依次执行回调
func (a *App) applyConfig(cfg *config.Config) {
	cfg.ForceMigrate = a.Config.ForceMigrate
	cfg.MigrateOnly = a.Config.MigrateOnly
	a.current.Store(cfg)
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

// AnalyticsSettings 把配置转换为统计参数
func AnalyticsSettings(cfg config.AnalyticsConfig) analytics.Settings {
	return analytics.Settings{
		Location:                cfg.Location(),
		CurrentStreakWindowDays: cfg.CurrentStreakWindowDays,
		DailyActivityDays:       cfg.DailyActivityDays,
		MonthlySeriesLimit:      cfg.MonthlySeriesLimit,
		ExpiringWithinDays:      cfg.ExpiringWithinDays,
		DefaultMonthlyGoals:     cfg.DefaultMonthlyGoals,
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		monthlyStat:   repository.NewMonthlyStatRepository(db),
		streak:        repository.NewStreakRepository(db),
		skill:         repository.NewSkillRepository(db),
		course:        repository.NewCourseRepository(db),
		certification: repository.NewCertificationRepository(db),
	}
}

func (a *App) initServices(repos *repositories) *services {
	return &services{
		dashboard:     service.NewDashboardService(repos.monthlyStat, repos.streak, a.assembler, a.reportCache),
		profile:       service.NewProfileService(repos.user, repos.streak, repos.course, repos.certification, repos.monthlyStat, a.assembler, a.reportCache),
		report:        service.NewReportService(repos.streak, repos.skill, repos.course, repos.certification, a.assembler, a.reportCache),
		skill:         service.NewSkillService(repos.skill, a.assembler, a.reportCache),
		certification: service.NewCertificationService(repos.certification, a.assembler, a.reportCache),
	}
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		dashboard:     controller.NewDashboardController(s.dashboard),
		profile:       controller.NewProfileController(s.profile),
		report:        controller.NewReportController(s.report),
		skill:         controller.NewSkillController(s.skill),
		certification: controller.NewCertificationController(s.certification),
		health:        controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.limiter))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 使用已建立的连接组装应用，rdb 可以为 nil
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config:    cfg,
		ConfigDir: "configs",
		DB:        db,
		Redis:     rdb,
	}
	app.current.Store(cfg)

	app.assembler = analytics.NewAssembler(
		repository.NewMonthlyStatRepository(db),
		analytics.WithLogger(logger.Log.Named("analytics")),
		analytics.WithSettings(AnalyticsSettings(cfg.Analytics)),
	)
	app.reportCache = cache.NewReportCache(rdb, cfg.Analytics.CacheTTL(), logger.Log.Named("cache"))
	app.limiter = security.NewLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())

	app.RegisterConfigCallback(func(c *config.Config) {
		logger.SetLevelForMode(c.Server.Mode)
	})
	app.RegisterConfigCallback(func(c *config.Config) {
		app.limiter.SetLimit(c.RateLimit.MaxRequests, c.RateLimit.Window())
	})
	app.RegisterConfigCallback(func(c *config.Config) {
		app.assembler.UpdateSettings(AnalyticsSettings(c.Analytics))
		app.reportCache.SetTTL(c.Analytics.CacheTTL())
		logger.Log.Info("Analytics settings updated",
			zap.String("timezone", c.Analytics.Timezone),
			zap.Duration("cache_ttl", c.Analytics.CacheTTL()),
		)
	})

	repos := app.initRepositories(db)
	controllers := app.initControllers(app.initServices(repos))

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == gin.ReleaseMode || cfg.Server.Mode == gin.TestMode {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	return app
}

// NewApp 初始化日志、数据库、Redis 与追踪后组装应用
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时降级为直接查询
		logger.Log.Warn("Redis unavailable, report cache disabled", zap.Error(err))
		rdb = nil
	}

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("skilltracker", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.limiter.Run(ctx)

	// 配置热更新
	go func() {
		file := filepath.Join(a.ConfigDir, "config.yaml")
		if err := configwatcher.WatchConfig(ctx, file, a.applyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
