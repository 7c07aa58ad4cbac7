// Package progress implements the ProgressState repository using PostgreSQL.
// Writers on one (user, item) row are serialized with SELECT ... FOR UPDATE
// and an optimistic version column.
package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/memorypower/internal/adapter/postgres"
	"github.com/heartmarshall/memorypower/internal/domain"
)

// Repo provides progress persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `user_id, item_id, status, mastery, repetitions, interval_minutes,
       correct_streak, incorrect_streak, last_reviewed, easiness_factor,
       version, created_at, updated_at`

var columnList = []string{
	"user_id", "item_id", "status", "mastery", "repetitions", "interval_minutes",
	"correct_streak", "incorrect_streak", "last_reviewed", "easiness_factor",
	"version", "created_at", "updated_at",
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const getSQL = `
SELECT ` + columns + `
FROM progress_states
WHERE user_id = $1 AND item_id = $2`

const getForUpdateSQL = getSQL + `
FOR UPDATE`

const insertSQL = `
INSERT INTO progress_states (
    user_id, item_id, status, mastery, repetitions, interval_minutes,
    correct_streak, incorrect_streak, last_reviewed, next_review_at,
    easiness_factor, version, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, $12, $12)
RETURNING ` + columns

const updateSQL = `
UPDATE progress_states SET
    status = $3, mastery = $4, repetitions = $5, interval_minutes = $6,
    correct_streak = $7, incorrect_streak = $8, last_reviewed = $9,
    next_review_at = $10, easiness_factor = $11,
    version = version + 1, updated_at = $12
WHERE user_id = $1 AND item_id = $2 AND version = $13
RETURNING ` + columns

const countByStatusSQL = `
SELECT status, count(*)
FROM progress_states
WHERE user_id = $1
GROUP BY status`

const countDueSQL = `
SELECT count(*)
FROM progress_states
WHERE user_id = $1 AND (next_review_at IS NULL OR next_review_at <= $2)`

const deleteByUserSQL = `DELETE FROM progress_states WHERE user_id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the state for (user, item) or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, userID, itemID uuid.UUID) (*domain.ProgressState, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	st, err := scanState(q.QueryRow(ctx, getSQL, userID, itemID))
	if err != nil {
		return nil, postgres.MapError(err, "progress", itemID.String())
	}
	return st, nil
}

// GetForUpdate reads the row and locks it until the surrounding transaction
// ends. Without a transaction the lock is released immediately.
func (r *Repo) GetForUpdate(ctx context.Context, userID, itemID uuid.UUID) (*domain.ProgressState, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	st, err := scanState(q.QueryRow(ctx, getForUpdateSQL, userID, itemID))
	if err != nil {
		return nil, postgres.MapError(err, "progress", itemID.String())
	}
	return st, nil
}

// ListByUser returns the user's rows matching filter, ordered by next review
// time (never-reviewed first), then item id.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, filter domain.ProgressFilter) ([]domain.ProgressState, error) {
	query := postgres.Builder().
		Select(columnList...).
		From("progress_states").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("next_review_at ASC NULLS FIRST", "item_id ASC")

	if filter.Status != nil {
		query = query.Where(sq.Eq{"status": string(*filter.Status)})
	}
	if filter.DueBefore != nil {
		query = query.Where(sq.Or{
			sq.Eq{"next_review_at": nil},
			sq.LtOrEq{"next_review_at": *filter.DueBefore},
		})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list progress query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "progress list", userID.String())
	}
	defer rows.Close()

	var states []domain.ProgressState
	for rows.Next() {
		st, err := scanState(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		states = append(states, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "progress list", userID.String())
	}

	return states, nil
}

// CountByStatus returns row counts per status for the user.
func (r *Repo) CountByStatus(ctx context.Context, userID uuid.UUID) (domain.StatusCounts, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, countByStatusSQL, userID)
	if err != nil {
		return domain.StatusCounts{}, postgres.MapError(err, "progress counts", userID.String())
	}
	defer rows.Close()

	var counts domain.StatusCounts
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return domain.StatusCounts{}, fmt.Errorf("scan status count: %w", err)
		}
		switch domain.ProgressStatus(status) {
		case domain.ProgressStatusNew:
			counts.New = n
		case domain.ProgressStatusLearning:
			counts.Learning = n
		case domain.ProgressStatusReviewing:
			counts.Reviewing = n
		}
		counts.Total += n
	}
	if err := rows.Err(); err != nil {
		return domain.StatusCounts{}, postgres.MapError(err, "progress counts", userID.String())
	}

	return counts, nil
}

// CountDue returns the number of the user's rows due at now.
func (r *Repo) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	var count int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, countDueSQL, userID, now).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "progress due count", userID.String())
	}
	return count, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Save inserts the row when state.Version is 0, otherwise updates it only if
// the stored version still equals state.Version. A lost insert race or a
// stale version returns domain.ErrConflict.
func (r *Repo) Save(ctx context.Context, state *domain.ProgressState) (*domain.ProgressState, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	now := time.Now().UTC()

	args := []any{
		state.UserID, state.ItemID, string(state.Status), state.Mastery,
		state.Repetitions, state.IntervalMinutes, state.CorrectStreak,
		state.IncorrectStreak, state.LastReviewed, state.NextReviewAt(),
		state.EasinessFactor, now,
	}

	if state.Version == 0 {
		saved, err := scanState(q.QueryRow(ctx, insertSQL, args...))
		if err != nil {
			return nil, postgres.MapError(err, "progress insert", state.ItemID.String())
		}
		return saved, nil
	}

	saved, err := scanState(q.QueryRow(ctx, updateSQL, append(args, state.Version)...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("progress %s version %d: %w", state.ItemID, state.Version, domain.ErrConflict)
		}
		return nil, postgres.MapError(err, "progress update", state.ItemID.String())
	}
	return saved, nil
}

// DeleteByUser removes every row of the user and returns how many were removed.
func (r *Repo) DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteByUserSQL, userID)
	if err != nil {
		return 0, postgres.MapError(err, "progress delete", userID.String())
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanState(row pgx.Row) (*domain.ProgressState, error) {
	var (
		st     domain.ProgressState
		status string
	)
	err := row.Scan(
		&st.UserID, &st.ItemID, &status, &st.Mastery, &st.Repetitions,
		&st.IntervalMinutes, &st.CorrectStreak, &st.IncorrectStreak,
		&st.LastReviewed, &st.EasinessFactor, &st.Version,
		&st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	st.Status = domain.ProgressStatus(status)
	return &st, nil
}
