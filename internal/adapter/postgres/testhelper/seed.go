package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/memorypower/internal/domain"
)

// SeedProgress inserts a progress row for a fresh (user, item) pair with the
// given status and last review time. Returns the stored state.
func SeedProgress(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, status domain.ProgressStatus, lastReviewed time.Time, intervalMinutes int) domain.ProgressState {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	lastReviewed = lastReviewed.UTC().Truncate(time.Microsecond)

	st := domain.NewProgressState(userID, uuid.New())
	st.Status = status
	st.LastReviewed = &lastReviewed
	st.IntervalMinutes = intervalMinutes
	st.Version = 1
	st.CreatedAt = now
	st.UpdatedAt = now

	_, err := pool.Exec(ctx,
		`INSERT INTO progress_states (user_id, item_id, status, interval_minutes, last_reviewed,
		     next_review_at, easiness_factor, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		st.UserID, st.ItemID, string(st.Status), st.IntervalMinutes, st.LastReviewed,
		st.NextReviewAt(), st.EasinessFactor, st.Version, st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProgress insert: %v", err)
	}

	return st
}

// SeedReviewLog inserts a review log for (user, item) at the given time.
func SeedReviewLog(t *testing.T, pool *pgxpool.Pool, userID, itemID uuid.UUID, quality domain.Quality, reviewedAt time.Time) domain.ReviewLog {
	t.Helper()

	l := domain.ReviewLog{
		ID:          uuid.New(),
		UserID:      userID,
		ItemID:      itemID,
		Quality:     quality,
		Mastery:     0.16,
		MemoryPower: 0.16,
		PrevStatus:  domain.ProgressStatusNew,
		NewStatus:   domain.ProgressStatusLearning,
		ReviewedAt:  reviewedAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO review_logs (id, user_id, item_id, quality, mastery, memory_power, prev_status, new_status, reviewed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.UserID, l.ItemID, int16(l.Quality), l.Mastery, l.MemoryPower,
		string(l.PrevStatus), string(l.NewStatus), l.ReviewedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReviewLog insert: %v", err)
	}

	return l
}
