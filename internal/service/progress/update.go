package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
	"github.com/heartmarshall/memorypower/internal/service/progress/scoring"
	"github.com/heartmarshall/memorypower/pkg/ctxutil"
)

// Update processes one answer: it loads (or synthesizes) the progress state,
// runs the scheduler and scoring, and persists the new state, the review log
// and the points award in one transaction.
//
// A storage conflict re-runs the whole read-compute-write cycle up to
// Config.MaxRetries times. Once the transaction starts, caller cancellation
// is ignored so an answer is either fully recorded or not at all.
func (s *Service) Update(ctx context.Context, input UpdateInput) (AnswerResult, error) {
	if err := input.Validate(); err != nil {
		return AnswerResult{}, err
	}

	now := input.Now
	if now.IsZero() {
		now = s.clock()
	}

	storeCtx := context.WithoutCancel(ctx)

	attempt := 0
	operation := func() (AnswerResult, error) {
		attempt++
		res, err := s.applyAnswer(storeCtx, input, now)
		if err != nil && !errors.Is(err, domain.ErrConflict) {
			return AnswerResult{}, backoff.Permanent(err)
		}
		return res, err
	}

	notify := func(err error, wait time.Duration) {
		s.log.WarnContext(ctx, "progress update conflict, retrying",
			slog.String("user_id", input.UserID.String()),
			slog.String("item_id", input.ItemID.String()),
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()),
		)
	}

	result, err := backoff.RetryNotifyWithData(operation, s.retryPolicy(), notify)
	if err != nil {
		return AnswerResult{}, err
	}

	s.log.InfoContext(ctx, "answer processed",
		slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("user_id", input.UserID.String()),
		slog.String("item_id", input.ItemID.String()),
		slog.Int("quality", int(input.Quality)),
		slog.String("new_status", result.NewStatus.String()),
		slog.Float64("memory_power", result.MemoryPower),
		slog.Int("points", result.PointsAwarded),
		slog.Int("attempts", attempt),
	)

	return result, nil
}

// retryPolicy builds a fresh backoff for one Update call.
func (s *Service) retryPolicy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if s.cfg.RetryBackoff > 0 {
		b.InitialInterval = s.cfg.RetryBackoff
	}
	b.MaxElapsedTime = 0
	return backoff.WithMaxRetries(b, uint64(s.cfg.MaxRetries))
}

// applyAnswer runs one read-compute-write attempt.
func (s *Service) applyAnswer(ctx context.Context, input UpdateInput, now time.Time) (AnswerResult, error) {
	if s.cfg.StorageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.StorageTimeout)
		defer cancel()
	}

	var result AnswerResult

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		prev, err := s.loadForUpdate(txCtx, input.UserID, input.ItemID)
		if err != nil {
			return err
		}

		out, err := s.scheduler.Process(*prev, input.Quality, now)
		if err != nil {
			return fmt.Errorf("process answer: %w", err)
		}

		isFirstTime := prev.LastReviewed == nil
		award := scoring.Score(s.rules, input.Quality, isFirstTime, out.State.CorrectStreak)

		saved, err := s.progress.Save(txCtx, &out.State)
		if err != nil {
			return fmt.Errorf("save progress: %w", err)
		}

		_, err = s.reviews.Create(txCtx, &domain.ReviewLog{
			ID:          uuid.New(),
			UserID:      input.UserID,
			ItemID:      input.ItemID,
			Quality:     input.Quality,
			DurationMs:  input.DurationMs,
			Mastery:     saved.Mastery,
			MemoryPower: out.MemoryPower,
			PrevStatus:  prev.Status,
			NewStatus:   saved.Status,
			ReviewedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("create review log: %w", err)
		}

		err = s.points.Award(txCtx, domain.PointsAward{
			ID:        uuid.New(),
			UserID:    input.UserID,
			ItemID:    input.ItemID,
			Points:    award.Points,
			Reason:    award.Reason,
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("award points: %w", err)
		}

		result = AnswerResult{
			NewStatus:     saved.Status,
			NextReviewAt:  saved.NextReviewAt(),
			MemoryPower:   out.MemoryPower,
			Mastery:       saved.Mastery,
			PointsAwarded: award.Points,
			Lapsed:        out.Lapsed,
			Graduated:     out.Graduated,
		}
		return nil
	})
	if err != nil {
		return AnswerResult{}, err
	}

	return result, nil
}

// loadForUpdate locks the row for the key, or returns the default new state
// when the learner has never answered the item.
func (s *Service) loadForUpdate(ctx context.Context, userID, itemID uuid.UUID) (*domain.ProgressState, error) {
	state, err := s.progress.GetForUpdate(ctx, userID, itemID)
	if errors.Is(err, domain.ErrNotFound) {
		fresh := domain.NewProgressState(userID, itemID)
		return &fresh, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return state, nil
}
