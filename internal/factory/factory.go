package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/jeopardy-go2/internal/config"
	"github.com/mcoot/jeopardy-go2/internal/dependencies/clock"
	"github.com/mcoot/jeopardy-go2/internal/dependencies/random"
	"github.com/mcoot/jeopardy-go2/internal/services/match"
	"github.com/mcoot/jeopardy-go2/internal/services/questionbank"
	"github.com/mcoot/jeopardy-go2/internal/services/scoring"
	"github.com/mcoot/jeopardy-go2/internal/storage"
	"github.com/mcoot/jeopardy-go2/internal/storage/memory"
	"github.com/mcoot/jeopardy-go2/internal/storage/postgres"
	redisstorage "github.com/mcoot/jeopardy-go2/internal/storage/redis"
	"github.com/mcoot/jeopardy-go2/internal/storage/sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	QuestionBank    *questionbank.Service
	ScoringService  *scoring.Service
	MatchController *match.Controller
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	// Use no-op logger if not provided
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	table, err := LoadQuestions(cfg.Questions)
	if err != nil {
		return nil, err
	}

	store, err := NewStorage(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(store, table, clock.New(), random.New(), cfg.Match.MinPlayers, logger)
	logger.Info("application wired",
		slog.String("storage", cfg.Storage.Type),
		slog.Int("questions", app.QuestionBank.Total()),
	)
	return app, nil
}

// LoadQuestions reads the configured question file, or the built-in set
func LoadQuestions(cfg config.QuestionsConfig) (*questionbank.Table, error) {
	if cfg.Path == "" {
		return questionbank.DefaultTable()
	}
	return questionbank.LoadTableFile(cfg.Path)
}

// NewStorage opens the configured storage backend
func NewStorage(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.Type {
	case "", config.StorageMemory:
		return memory.New(), nil
	case config.StorageRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Redis.URL
		if cfg.Redis.PoolSize > 0 {
			redisCfg.PoolSize = cfg.Redis.PoolSize
		}
		if cfg.Redis.MinIdleConns > 0 {
			redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		}
		redisCfg.SaveTTL = config.TTLDuration(cfg.Redis.SaveTTL, redisCfg.SaveTTL)
		return redisstorage.New(redisCfg)
	case config.StoragePostgres:
		if cfg.Postgres.Migrate {
			applied, err := postgres.Migrate(ctx, cfg.Postgres.URL)
			if err != nil {
				return nil, fmt.Errorf("migrate postgres: %w", err)
			}
			if len(applied) > 0 {
				logger.Info("migrations applied", slog.Any("migrations", applied))
			}
		}
		return postgres.New(ctx, cfg.Postgres.URL)
	case config.StorageSQLite:
		return sqlite.New(ctx, cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("invalid storage type %q", cfg.Type)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	table *questionbank.Table,
	clk clock.Clock,
	rnd random.Random,
	minPlayers int,
	logger *slog.Logger,
) *App {
	bank := questionbank.New(table, rnd)
	scoringService := scoring.New(store, logger)
	matchController := match.NewController(store, bank, scoringService, clk, rnd, logger, minPlayers)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		QuestionBank:    bank,
		ScoringService:  scoringService,
		MatchController: matchController,
	}
}
