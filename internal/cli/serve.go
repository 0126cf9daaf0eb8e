package cli

import (
	"context"

	"mindra_backend/internal/app"
	"mindra_backend/internal/config"
	"mindra_backend/pkg/configwatcher"
	"mindra_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewServeCmd builds the subcommand that starts the HTTP server.
func NewServeCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configDir)
		},
	}
}

func runServer(ctx context.Context, configDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	defer logger.Log.Sync()

	gin.SetMode(cfg.Server.Mode)

	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}

	if err := seedFromConfig(ctx, application, cfg); err != nil {
		application.Close()
		return err
	}

	application.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(newCfg)
		logger.Log.Info("Log level updated", zap.String("level", logger.Level().String()))
	})

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := configwatcher.WatchConfig(watchCtx, cfg.File, application.ApplyConfig); err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()

	return application.Run()
}

func seedFromConfig(ctx context.Context, application *app.App, cfg *config.Config) error {
	if cfg.Seed.DemoUsers {
		if _, err := application.Seed().SeedDemoUsers(ctx, cfg.Seed.DemoPassword); err != nil {
			return err
		}
	}
	if cfg.Seed.CatalogFile != "" {
		if _, err := application.Seed().SeedCatalog(ctx, cfg.Seed.CatalogFile); err != nil {
			return err
		}
	}
	return nil
}
