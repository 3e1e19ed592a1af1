package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"quiz-engine-service/internal/app"
	"quiz-engine-service/internal/auth"
	transport "quiz-engine-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, log, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	keys, statsCache, closeCache := caches(cfg, store.quizzes, log)
	defer closeCache()

	stats := app.NewStatsAggregator(store.attempts, statsCache, log)
	service := app.NewQuizService(
		store.quizzes,
		keys,
		store.attempts,
		app.NewAttemptRecorder(store.attempts, statsCache, log),
		stats,
		app.NewLister(store.catalog, stats, cfg.Listing.DefaultLimit, cfg.Listing.MaxLimit),
		log,
	)

	var authenticator *auth.Authenticator
	if cfg.Auth.JWTSecret != "" {
		authenticator = auth.NewAuthenticator(cfg.Auth.JWTSecret)
	} else {
		log.Warn("auth.jwt_secret not set, every request is anonymous")
	}

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(transport.NewHandler(service, log), authenticator, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting quiz service", "port", finalPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
