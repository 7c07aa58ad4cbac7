package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/memorypower/internal/adapter/memstore"
	"github.com/heartmarshall/memorypower/internal/adapter/postgres"
	"github.com/heartmarshall/memorypower/internal/adapter/postgres/audit"
	"github.com/heartmarshall/memorypower/internal/adapter/postgres/points"
	progressrepo "github.com/heartmarshall/memorypower/internal/adapter/postgres/progress"
	"github.com/heartmarshall/memorypower/internal/adapter/postgres/reviewlog"
	"github.com/heartmarshall/memorypower/internal/config"
	"github.com/heartmarshall/memorypower/internal/service/progress"
	"github.com/heartmarshall/memorypower/internal/service/progress/memorypower"
	"github.com/heartmarshall/memorypower/internal/service/progress/scoring"
)

// Container holds the wired services. Close releases storage resources.
type Container struct {
	Progress *progress.Service

	closers []func()
}

// Close releases resources in reverse acquisition order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build wires the progress service for the configured storage backend.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	scheduler, err := NewScheduler(cfg.Engine)
	if err != nil {
		return nil, err
	}

	c := &Container{}

	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		c.closers = append(c.closers, pool.Close)

		c.Progress, err = progress.NewService(
			logger,
			progressrepo.New(pool),
			reviewlog.New(pool),
			points.New(pool),
			audit.New(pool),
			postgres.NewTxManager(pool),
			scheduler,
			ScoringRules(cfg.Scoring),
			ProgressConfig(cfg.Progress),
		)
	case config.StorageMemory:
		c.Progress, err = NewMemoryService(logger, memstore.New(), scheduler, cfg)
	default:
		err = fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("create progress service: %w", err)
	}

	return c, nil
}

// NewMemoryService wires the progress service against an in-memory store.
func NewMemoryService(logger *slog.Logger, store *memstore.Store, scheduler progress.Scheduler, cfg *config.Config) (*progress.Service, error) {
	return progress.NewService(
		logger,
		store.Progress(),
		store.ReviewLogs(),
		store.Points(),
		store.Audit(),
		store.TxManager(),
		scheduler,
		ScoringRules(cfg.Scoring),
		ProgressConfig(cfg.Progress),
	)
}

// NewScheduler returns the scheduling engine selected by the configuration.
func NewScheduler(cfg config.EngineConfig) (progress.Scheduler, error) {
	switch cfg.Strategy {
	case config.StrategyMemoryPower:
		engine, err := memorypower.New(EnginePolicy(cfg))
		if err != nil {
			return nil, fmt.Errorf("memory power engine: %w", err)
		}
		return engine, nil
	default:
		return nil, fmt.Errorf("unsupported strategy %q", cfg.Strategy)
	}
}

// EnginePolicy maps the engine section onto a scheduling policy.
func EnginePolicy(cfg config.EngineConfig) memorypower.Policy {
	return memorypower.Policy{
		LearningSteps:      cfg.LearningSteps,
		GraduationStreak:   cfg.GraduationStreak,
		GraduatingInterval: cfg.GraduatingInterval,
		RelearningInterval: cfg.RelearningInterval,
		LapseThreshold:     cfg.LapseThreshold,
		Growth:             cfg.Growth,
		LapseMultiplier:    cfg.LapseMultiplier,
		MaxInterval:        cfg.MaxInterval,
	}
}

func ScoringRules(cfg config.ScoringConfig) scoring.Rules {
	return scoring.Rules{
		CorrectPoints:  cfg.CorrectPoints,
		FirstTimeBonus: cfg.FirstTimeBonus,
		GoodBonus:      cfg.GoodBonus,
		EasyBonus:      cfg.EasyBonus,
		StreakBonus:    cfg.StreakBonus,
		MaxStreakBonus: cfg.MaxStreakBonus,
	}
}

func ProgressConfig(cfg config.ProgressConfig) progress.Config {
	return progress.Config{
		MaxRetries:      cfg.MaxRetries,
		RetryBackoff:    cfg.RetryBackoff,
		StorageTimeout:  cfg.StorageTimeout,
		DefaultTimezone: cfg.DefaultTimezone,
		DefaultLimit:    cfg.DefaultLimit,
		MaxLimit:        cfg.MaxLimit,
		ScanLimit:       cfg.ScanLimit,
	}
}
