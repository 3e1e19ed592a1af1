package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"quiz-engine-service/internal/app"
	"quiz-engine-service/internal/config"
	"quiz-engine-service/internal/fixture"
	"quiz-engine-service/internal/infra/memory"
	"quiz-engine-service/internal/infra/postgres"
	infraredis "quiz-engine-service/internal/infra/redis"
	"quiz-engine-service/internal/infra/sqlstore"
	"quiz-engine-service/internal/lib/slogcustom"
)

type attemptLog interface {
	app.AttemptStore
	ClearAttempts(ctx context.Context, quizID string) (int, error)
}

// backend is the storage selected by config: Postgres, SQLite, or in-memory sample data.
type backend struct {
	quizzes  app.QuizStore
	catalog  app.QuizCatalog
	attempts attemptLog
	closers  []func()
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func loadConfig(path string) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	log := slogcustom.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)
	return cfg, log, nil
}

// openDB returns the configured SQL database, or nil when the service runs in memory.
func openDB(cfg config.Config) (*bun.DB, error) {
	switch {
	case cfg.Postgres.URL != "":
		return sqlstore.OpenPostgres(cfg.Postgres.URL), nil
	case cfg.SQLite.Path != "":
		return sqlstore.OpenSQLite(cfg.SQLite.Path)
	}
	return nil, nil
}

func openBackend(ctx context.Context, cfg config.Config, log *slog.Logger) (*backend, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	if db == nil {
		log.Warn("no database configured, serving bundled sample quizzes from memory")
		quizzes := memory.NewQuizStore(fixture.Sample()...)
		return &backend{quizzes: quizzes, catalog: quizzes, attempts: memory.NewAttemptStore()}, nil
	}

	b := &backend{closers: []func(){func() { _ = db.Close() }}}
	if err := sqlstore.Migrate(ctx, db, log); err != nil {
		b.Close()
		return nil, err
	}

	content := sqlstore.NewQuizStore(db)
	b.quizzes = content
	b.catalog = content
	b.attempts = sqlstore.NewAttemptStore(db)

	if cfg.Postgres.URL != "" {
		pool, err := postgres.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)
		b.quizzes = postgres.NewQuizStore(pool)
	}
	return b, nil
}

// caches builds the answer-key repository and the optional stats cache.
func caches(cfg config.Config, quizzes app.QuizStore, log *slog.Logger) (app.KeyRepository, app.StatsCache, func()) {
	resolver := app.NewKeyResolver(quizzes)

	if cfg.Redis.Addr == "" {
		return memory.NewKeyRepository(resolver, config.TTLDuration(cfg.Quiz.TTL, 0)), nil, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	// redis.ttl applies when quiz.ttl is unset; keys are not cached unless one is set
	keyTTL := config.TTLDuration(cfg.Quiz.TTL, config.TTLDuration(cfg.Redis.TTL, 0))
	keys := infraredis.NewKeyRepository(client, resolver, keyTTL, log)

	var stats app.StatsCache
	if statsTTL := config.TTLDuration(cfg.Stats.CacheTTL, 30*time.Second); statsTTL > 0 {
		stats = infraredis.NewStatsCache(client, statsTTL)
	}
	return keys, stats, func() { _ = client.Close() }
}

// forgetCachedKeys drops Redis answer keys of re-seeded quizzes so edits are served immediately.
func forgetCachedKeys(ctx context.Context, cfg config.Config, quizIDs []string, log *slog.Logger) {
	if cfg.Redis.Addr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer client.Close()

	keys := infraredis.NewKeyRepository(client, nil, 0, log)
	for _, id := range quizIDs {
		if err := keys.Forget(ctx, id); err != nil {
			log.Warn("forget cached answer key", "quiz_id", id, "error", err)
		}
	}
}
