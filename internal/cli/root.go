package cli

import (
	"os"

	"mindra_backend/internal/config"
	"mindra_backend/pkg/logger"

	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "configs"
	}
	var configDir string

	serve := NewServeCmd(&configDir)
	cmd := &cobra.Command{
		Use:          "mindra",
		Short:        "Mindra learning backend",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	cmd.PersistentFlags().StringVar(&configDir, "config", envConfig, "directory containing config.yaml")
	cmd.AddCommand(serve)
	cmd.AddCommand(NewSeedCmd(&configDir))
	cmd.AddCommand(NewMigrateCmd(&configDir))
	return cmd
}

func loadConfig(configDir string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, err
	}
	logger.InitLogger(cfg)
	return cfg, nil
}
