package app

import (
	"mindra_backend/docs"
	"mindra_backend/internal/config"
	"mindra_backend/internal/middleware"
	"mindra_backend/pkg/logger"
	"mindra_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/modules", c.content.ListModules)
		public.GET("/modules/:id", c.content.GetModule)
		public.GET("/quiz/:moduleId", c.content.GetQuiz)
	}

	// 2. 可选登录
	optional := router.Group("/api")
	optional.Use(middleware.TryAuthMiddleware(s.tokens))
	{
		optional.GET("/dashboard", c.dashboard.GetDashboard)
	}

	// 3. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(s.tokens))
	{
		authGroup.POST("/submit", c.learning.Submit)
		authGroup.GET("/progress", c.learning.GetProgress)
		authGroup.GET("/profile", c.auth.GetProfile)
	}

	if cfg.Analytics.Public {
		public.GET("/analytics", c.analytics.ListEvents)
	} else {
		logger.Log.Info("Analytics endpoint requires authentication")
		authGroup.GET("/analytics", c.analytics.ListEvents)
	}

	logger.Log.Debug("Routes registered", zap.Int("count", len(router.Routes())))
}
