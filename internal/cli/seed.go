package cli

import (
	"context"
	"fmt"

	"mindra_backend/internal/app"
	"mindra_backend/internal/repository"
	"mindra_backend/internal/service"

	"github.com/spf13/cobra"
)

// NewSeedCmd builds the subcommand that loads demo users and the module catalog.
func NewSeedCmd(configDir *string) *cobra.Command {
	var (
		catalogFile string
		skipUsers   bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed demo users and the module catalog into an empty store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			if catalogFile == "" {
				catalogFile = cfg.Seed.CatalogFile
			}

			store, closer, err := app.OpenStore(cfg)
			if err != nil {
				return err
			}
			defer closer()

			seeder := service.NewSeedService(
				repository.NewUserRepository(store),
				repository.NewModuleRepository(store, 0),
				cfg.Auth.BcryptCost,
			)
			return runSeed(cmd.Context(), cmd, seeder, cfg.Seed.DemoPassword, catalogFile, skipUsers)
		},
	}

	cmd.Flags().StringVar(&catalogFile, "catalog", "", "YAML module catalog (defaults to seed.catalog_file)")
	cmd.Flags().BoolVar(&skipUsers, "skip-users", false, "do not create demo users")
	return cmd
}

func runSeed(ctx context.Context, cmd *cobra.Command, seeder *service.SeedService, password, catalogFile string, skipUsers bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if !skipUsers {
		created, err := seeder.SeedDemoUsers(ctx, password)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintln(cmd.OutOrStdout(), "demo users created")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "users already present, skipping demo users")
		}
	}

	if catalogFile != "" {
		imported, err := seeder.SeedCatalog(ctx, catalogFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d modules imported\n", imported)
	}
	return nil
}
