package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"quiz-engine-service/internal/fixture"
	"quiz-engine-service/internal/infra/sqlstore"
)

// NewSeedCmd loads quizzes from a YAML fixture into the database.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert quizzes from a YAML fixture (defaults to the bundled sample)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a quizzes YAML file")
	return cmd
}

func runSeed(ctx context.Context, configPath, file string) error {
	cfg, log, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	content := fixture.Sample()
	if file != "" {
		if content, err = fixture.Load(file); err != nil {
			return err
		}
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if db == nil {
		return fmt.Errorf("no database configured: set postgres.url or sqlite.path")
	}
	defer db.Close()

	if err := sqlstore.Migrate(ctx, db, log); err != nil {
		return err
	}
	if err := sqlstore.Seed(ctx, db, content); err != nil {
		return err
	}
	ids := make([]string, 0, len(content))
	for _, c := range content {
		ids = append(ids, c.Quiz.ID)
	}
	forgetCachedKeys(ctx, cfg, ids, log)

	log.Info("quizzes seeded", "count", len(content))
	return nil
}
