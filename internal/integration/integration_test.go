package integration

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"quiz-engine-service/internal/app"
	"quiz-engine-service/internal/domain"
	"quiz-engine-service/internal/fixture"
	"quiz-engine-service/internal/infra/postgres"
	infraredis "quiz-engine-service/internal/infra/redis"
	"quiz-engine-service/internal/infra/sqlstore"
)

func TestSubmitAndStatsEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	db := sqlstore.OpenPostgres(pgURL)
	defer db.Close()
	if err := sqlstore.Migrate(ctx, db, nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := sqlstore.Seed(ctx, db, fixture.Sample()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	pool, err := postgres.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	attempts := sqlstore.NewAttemptStore(db)
	statsCache := infraredis.NewStatsCache(redisClient, time.Minute)
	content := postgres.NewQuizStore(pool)
	keys := infraredis.NewKeyRepository(redisClient, app.NewKeyResolver(content), 5*time.Minute, nil)
	stats := app.NewStatsAggregator(attempts, statsCache, nil)
	service := app.NewQuizService(
		content,
		keys,
		attempts,
		app.NewAttemptRecorder(attempts, statsCache, nil),
		stats,
		app.NewLister(sqlstore.NewQuizStore(db), stats, 0, 0),
		nil,
	)

	taking, err := service.TakeQuiz(ctx, "quiz-1", "")
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if len(taking.Questions) != 2 || len(taking.Questions[0].Answers) != 3 {
		t.Fatalf("unexpected taking view %+v", taking)
	}

	result, _, err := service.Submit(ctx, "quiz-1", "u1", domain.Submission{
		QuizID: "quiz-1",
		Answers: []domain.SubmittedAnswer{
			{QuestionID: "q1", AnswerID: "q1-a2"},
			{QuestionID: "q2", AnswerID: "q2-a1"},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 10 || result.MaxScore != 20 || result.Percentage != 50 {
		t.Fatalf("unexpected result %+v", result)
	}

	// prime the stats cache, then make sure the next attempt invalidates it
	if _, err := service.QuizStats(ctx, "quiz-1", ""); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if _, _, err := service.Submit(ctx, "quiz-1", "", domain.Submission{QuizID: "quiz-1", Answers: []domain.SubmittedAnswer{}}); err != nil {
		t.Fatalf("anonymous submit: %v", err)
	}

	got, err := service.QuizStats(ctx, "quiz-1", "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if got.CompletionCount != 2 || got.AverageScore != 25 {
		t.Fatalf("expected 2 completions averaging 25, got %+v", got)
	}

	if _, err := service.TakeQuiz(ctx, "quiz-2", "u1"); err != domain.ErrForbidden {
		t.Fatalf("expected forbidden for private quiz, got %v", err)
	}

	page, err := service.ListPublic(ctx, domain.ListRequest{Sort: domain.SortPopular})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.Total != 1 || page.Data[0].Stats.CompletionCount != 2 {
		t.Fatalf("unexpected listing %+v", page)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
