package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewClearAttemptsCmd deletes recorded attempts, for one quiz or all of them.
func NewClearAttemptsCmd(configPath *string) *cobra.Command {
	var quizID string
	cmd := &cobra.Command{
		Use:   "clear-attempts",
		Short: "Delete recorded quiz attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClearAttempts(cmd.Context(), *configPath, quizID)
		},
	}
	cmd.Flags().StringVar(&quizID, "quiz", "", "only clear attempts of this quiz")
	return cmd
}

func runClearAttempts(ctx context.Context, configPath, quizID string) error {
	cfg, log, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.attempts.ClearAttempts(ctx, quizID)
	if err != nil {
		return err
	}
	if quizID == "" {
		log.Info("cleared all attempts", "removed", removed)
	} else {
		log.Info("cleared quiz attempts", "quiz_id", quizID, "removed", removed)
	}
	return nil
}
