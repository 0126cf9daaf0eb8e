package cli

import (
	"fmt"

	"mindra_backend/internal/util"
	"mindra_backend/pkg/database"

	"github.com/spf13/cobra"
)

// NewMigrateCmd builds the subcommand that creates the snapshot table.
func NewMigrateCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			if cfg.Store.Type != util.StoreDatabase {
				fmt.Fprintf(cmd.OutOrStdout(), "store type %q has no schema, nothing to migrate\n", cfg.Store.Type)
				return nil
			}

			db, err := database.InitDB(&cfg.Database)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err == nil {
				defer sqlDB.Close()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
