// Package reviewlog implements the append-only ReviewLog repository using
// PostgreSQL.
package reviewlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/memorypower/internal/adapter/postgres"
	"github.com/heartmarshall/memorypower/internal/domain"
)

// Repo provides review log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const columns = `id, user_id, item_id, quality, duration_ms, mastery, memory_power,
       prev_status, new_status, reviewed_at`

const createSQL = `
INSERT INTO review_logs (` + columns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + columns

const listByItemSQL = `
SELECT ` + columns + `
FROM review_logs
WHERE user_id = $1 AND item_id = $2
ORDER BY reviewed_at DESC, id
LIMIT $3 OFFSET $4`

const countByItemSQL = `
SELECT count(*) FROM review_logs WHERE user_id = $1 AND item_id = $2`

const countTodaySQL = `
SELECT count(*) FROM review_logs
WHERE user_id = $1 AND reviewed_at >= $2`

const getStreakDaysSQL = `
SELECT
    date_trunc('day', reviewed_at AT TIME ZONE $4)::date AS review_date,
    count(*) AS review_count
FROM review_logs
WHERE user_id = $1 AND reviewed_at >= $2
GROUP BY review_date
ORDER BY review_date DESC
LIMIT $3`

const deleteByUserSQL = `DELETE FROM review_logs WHERE user_id = $1`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new review log and returns the persisted domain.ReviewLog.
func (r *Repo) Create(ctx context.Context, rl *domain.ReviewLog) (*domain.ReviewLog, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	id := rl.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	saved, err := scanLog(q.QueryRow(ctx, createSQL,
		id, rl.UserID, rl.ItemID, int16(rl.Quality), rl.DurationMs, rl.Mastery,
		rl.MemoryPower, string(rl.PrevStatus), string(rl.NewStatus), rl.ReviewedAt,
	))
	if err != nil {
		return nil, postgres.MapError(err, "review_log", id.String())
	}
	return saved, nil
}

// DeleteByUser removes every log of the user and returns how many were removed.
func (r *Repo) DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteByUserSQL, userID)
	if err != nil {
		return 0, postgres.MapError(err, "review_log delete", userID.String())
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByItem returns one page of an item's logs, newest first, plus the
// total count.
func (r *Repo) ListByItem(ctx context.Context, userID, itemID uuid.UUID, limit, offset int) ([]domain.ReviewLog, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var total int
	if err := q.QueryRow(ctx, countByItemSQL, userID, itemID).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "review_log count", itemID.String())
	}

	rows, err := q.Query(ctx, listByItemSQL, userID, itemID, limit, offset)
	if err != nil {
		return nil, 0, postgres.MapError(err, "review_log list", itemID.String())
	}
	defer rows.Close()

	logs := []domain.ReviewLog{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan review_log: %w", err)
		}
		logs = append(logs, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, "review_log list", itemID.String())
	}

	return logs, total, nil
}

// CountToday returns the number of the user's reviews since dayStart.
func (r *Repo) CountToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	var count int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, countTodaySQL, userID, dayStart).Scan(&count); err != nil {
		return 0, postgres.MapError(err, "review_log today", userID.String())
	}
	return count, nil
}

// GetStreakDays returns per-day review counts for the last lastNDays days,
// bucketed by the given timezone, most recent first.
func (r *Repo) GetStreakDays(ctx context.Context, userID uuid.UUID, dayStart time.Time, lastNDays int, timezone string) ([]domain.DayReviewCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	// dayStart is already the start of the first day. We go back lastNDays from dayStart.
	from := dayStart.AddDate(0, 0, -lastNDays)

	rows, err := querier.Query(ctx, getStreakDaysSQL, userID, from, lastNDays+1, timezone)
	if err != nil {
		return nil, postgres.MapError(err, "review_log streak", userID.String())
	}
	defer rows.Close()

	counts := []domain.DayReviewCount{}
	for rows.Next() {
		var dc domain.DayReviewCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan streak day: %w", err)
		}
		counts = append(counts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate streak days: %w", err)
	}

	return counts, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanLog(row pgx.Row) (*domain.ReviewLog, error) {
	var (
		l                     domain.ReviewLog
		quality               int16
		durationMs            *int32
		prevStatus, newStatus string
	)
	err := row.Scan(
		&l.ID, &l.UserID, &l.ItemID, &quality, &durationMs, &l.Mastery,
		&l.MemoryPower, &prevStatus, &newStatus, &l.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Quality = domain.Quality(quality)
	l.PrevStatus = domain.ProgressStatus(prevStatus)
	l.NewStatus = domain.ProgressStatus(newStatus)
	if durationMs != nil {
		d := int(*durationMs)
		l.DurationMs = &d
	}
	return &l, nil
}
