package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindra_backend/internal/config"
	"mindra_backend/internal/controller"
	"mindra_backend/internal/repository"
	"mindra_backend/internal/service"
	"mindra_backend/pkg/logger"
	"mindra_backend/pkg/monitoring"
	"mindra_backend/pkg/security"
	"mindra_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Store           repository.SnapshotStore
	services        *services
	closers         []func() error
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	module    *repository.ModuleRepository
	progress  *repository.ProgressRepository
	analytics *repository.AnalyticsRepository
}

type services struct {
	tokens    *service.TokenService
	auth      *service.AuthService
	learning  *service.LearningService
	analytics *service.AnalyticsService
	dashboard *service.DashboardService
	seed      *service.SeedService
}

type controllers struct {
	auth      *controller.AuthController
	content   *controller.ContentController
	learning  *controller.LearningController
	analytics *controller.AnalyticsController
	dashboard *controller.DashboardController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig hands a reloaded configuration to every registered callback.
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) Seed() *service.SeedService {
	return a.services.seed
}

func (a *App) initRepositories(store repository.SnapshotStore, cfg *config.Config) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(store),
		module:    repository.NewModuleRepository(store, cfg.Catalog.CacheTTL),
		progress:  repository.NewProgressRepository(store),
		analytics: repository.NewAnalyticsRepository(store),
	}
}

func (a *App) initServices(repos *repositories, store repository.SnapshotStore, cfg *config.Config) *services {
	s := &services{}

	s.tokens = service.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpireTime)
	s.auth = service.NewAuthService(repos.user, s.tokens, cfg.Auth.BcryptCost)
	s.learning = service.NewLearningService(store, repos.module, repos.progress, repos.analytics)
	s.analytics = service.NewAnalyticsService(repos.analytics)
	s.dashboard = service.NewDashboardService(repos.module, repos.progress)
	s.seed = service.NewSeedService(repos.user, repos.module, cfg.Auth.BcryptCost)

	return s
}

func (a *App) initControllers(s *services, store repository.SnapshotStore) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		content:   controller.NewContentController(s.learning),
		learning:  controller.NewLearningController(s.learning),
		analytics: controller.NewAnalyticsController(s.analytics),
		dashboard: controller.NewDashboardController(s.dashboard),
		health:    controller.NewHealthController(store),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	if cfg.RateLimit.MaxRequests > 0 && cfg.RateLimit.WindowMinutes > 0 {
		router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))
	}

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp opens the configured store and wires the HTTP application on top of it.
func NewApp(cfg *config.Config) (*App, error) {
	store, closer, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}
	app := NewWithStore(cfg, store)
	app.closers = append(app.closers, closer)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, func() error {
			return tp.Shutdown(context.Background())
		})
	}
	return app, nil
}

// NewWithStore builds the application around an already opened store.
func NewWithStore(cfg *config.Config, store repository.SnapshotStore) *App {
	app := &App{
		Config: cfg,
		Store:  store,
	}

	repos := app.initRepositories(store, cfg)
	services := app.initServices(repos, store, cfg)
	app.services = services
	controllers := app.initControllers(services, store)

	// 监控初始化
	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, services, cfg)

	return app
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Log.Error("Failed to release resource", zap.Error(err))
		}
	}
	a.closers = nil
}

func (a *App) Run() error {
	defer a.Close()

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	logger.Log.Info("Server exiting")
	return nil
}
