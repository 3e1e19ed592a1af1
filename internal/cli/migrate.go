package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"quiz-engine-service/internal/infra/sqlstore"
)

// NewMigrateCmd applies database migrations.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	cfg, log, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if db == nil {
		return fmt.Errorf("no database configured: set postgres.url or sqlite.path")
	}
	defer db.Close()

	return sqlstore.Migrate(ctx, db, log)
}
