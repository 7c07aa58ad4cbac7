// Package progress orchestrates answer processing: it loads a learner's
// progress state, runs the scheduler and the scoring rules, and persists the
// result together with the review log and the points award.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
	"github.com/heartmarshall/memorypower/internal/service/progress/memorypower"
	"github.com/heartmarshall/memorypower/internal/service/progress/scoring"
)

//go:generate moq -out progress_repo_mock_test.go -pkg progress . progressRepo
//go:generate moq -out review_log_repo_mock_test.go -pkg progress . reviewLogRepo
//go:generate moq -out points_ledger_mock_test.go -pkg progress . pointsLedger
//go:generate moq -out audit_logger_mock_test.go -pkg progress . auditLogger
//go:generate moq -out tx_manager_mock_test.go -pkg progress . txManager

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type progressRepo interface {
	Get(ctx context.Context, userID, itemID uuid.UUID) (*domain.ProgressState, error)
	GetForUpdate(ctx context.Context, userID, itemID uuid.UUID) (*domain.ProgressState, error)
	Save(ctx context.Context, state *domain.ProgressState) (*domain.ProgressState, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter domain.ProgressFilter) ([]domain.ProgressState, error)
	CountByStatus(ctx context.Context, userID uuid.UUID) (domain.StatusCounts, error)
	CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type reviewLogRepo interface {
	Create(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error)
	ListByItem(ctx context.Context, userID, itemID uuid.UUID, limit, offset int) ([]domain.ReviewLog, int, error)
	CountToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)
	GetStreakDays(ctx context.Context, userID uuid.UUID, dayStart time.Time, lastNDays int, timezone string) ([]domain.DayReviewCount, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// pointsLedger is the gamification collaborator.
type pointsLedger interface {
	Award(ctx context.Context, award domain.PointsAward) error
	TotalByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Scheduler computes state transitions and read-only projections. The
// memory power engine is the only implementation.
type Scheduler interface {
	Process(state domain.ProgressState, quality domain.Quality, now time.Time) (memorypower.Outcome, error)
	Project(state domain.ProgressState, at time.Time) domain.Projection
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds the orchestrator's runtime knobs.
type Config struct {
	// MaxRetries bounds how many times a conflicting update is re-run from
	// the read step.
	MaxRetries   int
	RetryBackoff time.Duration
	// StorageTimeout bounds one read-compute-write attempt. Zero disables it.
	StorageTimeout  time.Duration
	DefaultTimezone string
	DefaultLimit    int
	MaxLimit        int
	// ScanLimit caps the rows read when ranking items by memory power.
	ScanLimit int
}

// DefaultConfig returns the values used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		RetryBackoff:    20 * time.Millisecond,
		DefaultTimezone: "UTC",
		DefaultLimit:    20,
		MaxLimit:        200,
		ScanLimit:       5000,
	}
}

// Service implements progress tracking on top of a Scheduler.
type Service struct {
	progress  progressRepo
	reviews   reviewLogRepo
	points    pointsLedger
	audit     auditLogger
	tx        txManager
	scheduler Scheduler
	rules     scoring.Rules
	cfg       Config
	log       *slog.Logger
	clock     func() time.Time
}

// NewService creates a new Progress service.
func NewService(
	log *slog.Logger,
	progress progressRepo,
	reviews reviewLogRepo,
	points pointsLedger,
	audit auditLogger,
	tx txManager,
	scheduler Scheduler,
	rules scoring.Rules,
	cfg Config,
) (*Service, error) {
	if scheduler == nil {
		return nil, fmt.Errorf("scheduler is required")
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring rules: %w", err)
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("max retries must be >= 0 (got %d)", cfg.MaxRetries)
	}

	return &Service{
		progress:  progress,
		reviews:   reviews,
		points:    points,
		audit:     audit,
		tx:        tx,
		scheduler: scheduler,
		rules:     rules,
		cfg:       cfg,
		log:       log.With("service", "progress"),
		clock:     time.Now,
	}, nil
}

// clampLimit applies the default and maximum page sizes.
func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	return limit
}
