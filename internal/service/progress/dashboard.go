package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
	"golang.org/x/sync/errgroup"
)

const streakLookbackDays = 365

// Dashboard returns aggregated progress statistics for the user. timezone
// decides where "today" starts; empty or unknown falls back to the
// configured default. AvgMemoryPower covers at most Config.ScanLimit rows.
func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID, now time.Time, timezone string) (domain.Dashboard, error) {
	if err := requireUser(userID); err != nil {
		return domain.Dashboard{}, err
	}
	if now.IsZero() {
		now = s.clock()
	}

	tz := ParseTimezone(timezone, ParseTimezone(s.cfg.DefaultTimezone, time.UTC))
	dayStart := DayStart(now, tz)

	var (
		dash        domain.Dashboard
		streakDays  []domain.DayReviewCount
		projections []domain.Projection
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.progress.CountByStatus(gctx, userID)
		if err != nil {
			return fmt.Errorf("count by status: %w", err)
		}
		dash.StatusCounts = counts
		return nil
	})
	g.Go(func() error {
		due, err := s.progress.CountDue(gctx, userID, now)
		if err != nil {
			return fmt.Errorf("count due: %w", err)
		}
		dash.DueCount = due
		return nil
	})
	g.Go(func() error {
		today, err := s.reviews.CountToday(gctx, userID, dayStart)
		if err != nil {
			return fmt.Errorf("count reviewed today: %w", err)
		}
		dash.ReviewedToday = today
		return nil
	})
	g.Go(func() error {
		days, err := s.reviews.GetStreakDays(gctx, userID, dayStart, streakLookbackDays, tz.String())
		if err != nil {
			return fmt.Errorf("get streak days: %w", err)
		}
		streakDays = days
		return nil
	})
	g.Go(func() error {
		total, err := s.points.TotalByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("total points: %w", err)
		}
		dash.TotalPoints = total
		return nil
	})
	g.Go(func() error {
		all, err := s.projectAll(gctx, userID, now)
		if err != nil {
			return err
		}
		projections = all
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.Dashboard{}, err
	}

	nowInTz := now.In(tz)
	today := time.Date(nowInTz.Year(), nowInTz.Month(), nowInTz.Day(), 0, 0, 0, 0, tz)
	dash.Streak = calculateStreak(streakDays, today)
	dash.AvgMemoryPower = averagePower(projections)

	s.log.InfoContext(ctx, "dashboard loaded",
		slog.String("user_id", userID.String()),
		slog.Int("due_count", dash.DueCount),
		slog.Int("streak", dash.Streak),
		slog.Float64("avg_memory_power", dash.AvgMemoryPower),
	)

	return dash, nil
}

// History returns the review logs of one item, newest first.
func (s *Service) History(ctx context.Context, input HistoryInput) (HistoryResult, error) {
	if err := input.Validate(); err != nil {
		return HistoryResult{}, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = 50
	}

	logs, total, err := s.reviews.ListByItem(ctx, input.UserID, input.ItemID, limit, input.Offset)
	if err != nil {
		return HistoryResult{}, fmt.Errorf("list review logs: %w", err)
	}

	return HistoryResult{Logs: logs, Total: total}, nil
}

// calculateStreak calculates the current review streak in days.
// days must be sorted DESC by date (most recent first).
// Returns the number of consecutive days with reviews, starting from today or yesterday.
func calculateStreak(days []domain.DayReviewCount, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	sameDay := func(a, b time.Time) bool {
		return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
	}

	streak := 0
	expected := today

	// No reviews yet today: the streak may still be alive from yesterday.
	if !sameDay(days[0].Date, today) {
		expected = today.AddDate(0, 0, -1)
	}

	for _, d := range days {
		if !sameDay(d.Date, expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

func averagePower(projections []domain.Projection) float64 {
	if len(projections) == 0 {
		return 0
	}
	var sum float64
	for _, p := range projections {
		sum += p.MemoryPower
	}
	return sum / float64(len(projections))
}
