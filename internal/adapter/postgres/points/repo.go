// Package points implements the append-only gamification points ledger
// using PostgreSQL.
package points

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/memorypower/internal/adapter/postgres"
	"github.com/heartmarshall/memorypower/internal/domain"
)

// Repo provides points persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new points ledger.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const awardSQL = `
INSERT INTO points_ledger (id, user_id, item_id, points, reason, created_at)
VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))`

const totalByUserSQL = `
SELECT COALESCE(sum(points), 0) FROM points_ledger WHERE user_id = $1`

// Award appends an award. Zero-point awards are recorded too.
func (r *Repo) Award(ctx context.Context, award domain.PointsAward) error {
	id := award.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	var createdAt any
	if !award.CreatedAt.IsZero() {
		createdAt = award.CreatedAt
	}

	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, awardSQL,
		id, award.UserID, award.ItemID, award.Points, string(award.Reason), createdAt,
	)
	if err != nil {
		return postgres.MapError(err, "points_award", id.String())
	}
	return nil
}

// TotalByUser sums the user's awards.
func (r *Repo) TotalByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, totalByUserSQL, userID).Scan(&total); err != nil {
		return 0, postgres.MapError(err, "points_total", userID.String())
	}
	return total, nil
}
