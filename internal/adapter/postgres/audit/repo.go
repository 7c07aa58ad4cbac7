// Package audit implements the Audit repository using PostgreSQL.
// It provides append-only operations for audit log records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/memorypower/internal/adapter/postgres"
	"github.com/heartmarshall/memorypower/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createSQL = `
INSERT INTO audit_log (id, user_id, entity_type, action, changes, created_at)
VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))
RETURNING created_at`

const listByUserSQL = `
SELECT id, user_id, entity_type, action, changes, created_at
FROM audit_log
WHERE user_id = $1
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new audit record and returns the persisted domain.AuditRecord.
func (r *Repo) Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	changesJSON, err := json.Marshal(record.Changes)
	if err != nil {
		return domain.AuditRecord{}, fmt.Errorf("audit_record marshal changes: %w", err)
	}

	var createdAt any
	if !record.CreatedAt.IsZero() {
		createdAt = record.CreatedAt
	}

	err = q.QueryRow(ctx, createSQL,
		record.ID, record.UserID, string(record.EntityType), string(record.Action), changesJSON, createdAt,
	).Scan(&record.CreatedAt)
	if err != nil {
		return domain.AuditRecord{}, postgres.MapError(err, "audit_record", record.ID.String())
	}

	return record, nil
}

// Log creates an audit record without returning it.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	_, err := r.Create(ctx, record)
	return err
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByUser returns audit records for a user, newest first, with pagination.
func (r *Repo) GetByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.AuditRecord, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByUserSQL, userID, limit, offset)
	if err != nil {
		return nil, postgres.MapError(err, "audit_record list", userID.String())
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var (
			rec            domain.AuditRecord
			entity, action string
			changes        []byte
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &entity, &action, &changes, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit_record: %w", err)
		}
		rec.EntityType = domain.EntityType(entity)
		rec.Action = domain.AuditAction(action)
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &rec.Changes); err != nil {
				return nil, fmt.Errorf("audit_record unmarshal changes: %w", err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "audit_record list", userID.String())
	}

	return records, nil
}
