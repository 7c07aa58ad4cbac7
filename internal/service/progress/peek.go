package progress

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
)

// Peek returns the memory power projection of one item at the given time.
// It never writes. An item the learner has never answered projects as new
// with zero memory power.
func (s *Service) Peek(ctx context.Context, userID, itemID uuid.UUID, at time.Time) (domain.Projection, error) {
	if err := requireUser(userID); err != nil {
		return domain.Projection{}, err
	}
	if at.IsZero() {
		at = s.clock()
	}

	state, err := s.progress.Get(ctx, userID, itemID)
	if errors.Is(err, domain.ErrNotFound) {
		fresh := domain.NewProgressState(userID, itemID)
		return s.scheduler.Project(fresh, at), nil
	}
	if err != nil {
		return domain.Projection{}, fmt.Errorf("get progress: %w", err)
	}

	return s.scheduler.Project(*state, at), nil
}

// DueQueue returns the learner's items whose next review time is at or
// before now, earliest first.
func (s *Service) DueQueue(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]domain.Projection, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if now.IsZero() {
		now = s.clock()
	}
	limit = s.clampLimit(limit)

	states, err := s.progress.ListByUser(ctx, userID, domain.ProgressFilter{
		DueBefore: &now,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list due progress: %w", err)
	}

	queue := make([]domain.Projection, 0, len(states))
	for _, st := range states {
		if !st.IsDue(now) {
			continue
		}
		queue = append(queue, s.scheduler.Project(st, now))
	}

	slices.SortStableFunc(queue, func(a, b domain.Projection) int {
		return compareReviewTime(a.NextReviewAt, b.NextReviewAt)
	})

	s.log.InfoContext(ctx, "due queue built",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(queue)),
	)

	return queue, nil
}

// WeakestItems returns the learner's items ranked by memory power at the
// given time, weakest first. Ties are broken by item id. Only the first
// Config.ScanLimit rows (by next review time) are ranked; a truncated scan is
// logged as a warning.
func (s *Service) WeakestItems(ctx context.Context, userID uuid.UUID, at time.Time, limit int) ([]domain.Projection, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = s.clock()
	}
	limit = s.clampLimit(limit)

	projections, err := s.projectAll(ctx, userID, at)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(projections, func(a, b domain.Projection) int {
		if c := cmp.Compare(a.MemoryPower, b.MemoryPower); c != 0 {
			return c
		}
		return cmp.Compare(a.ItemID.String(), b.ItemID.String())
	})

	if len(projections) > limit {
		projections = projections[:limit]
	}
	return projections, nil
}

// projectAll projects every stored row of the user, up to Config.ScanLimit.
func (s *Service) projectAll(ctx context.Context, userID uuid.UUID, at time.Time) ([]domain.Projection, error) {
	states, err := s.progress.ListByUser(ctx, userID, domain.ProgressFilter{Limit: s.cfg.ScanLimit})
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	if s.cfg.ScanLimit > 0 && len(states) >= s.cfg.ScanLimit {
		s.log.WarnContext(ctx, "progress scan truncated",
			slog.String("user_id", userID.String()),
			slog.Int("scan_limit", s.cfg.ScanLimit),
		)
	}

	projections := make([]domain.Projection, len(states))
	for i, st := range states {
		projections[i] = s.scheduler.Project(st, at)
	}
	return projections, nil
}

// compareReviewTime orders nil (never reviewed) first.
func compareReviewTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}
