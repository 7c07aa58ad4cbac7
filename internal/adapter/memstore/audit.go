package memstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
)

// AuditLog records administrative operations.
type AuditLog struct {
	s *Store
}

// Log appends a record.
func (a *AuditLog) Log(ctx context.Context, record domain.AuditRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = a.s.now()
	}

	if t, ok := txFromCtx(ctx); ok {
		t.audit = append(t.audit, record)
		return nil
	}

	a.s.mu.Lock()
	a.s.audit = append(a.s.audit, record)
	a.s.mu.Unlock()
	return nil
}

// ListByUser returns the user's audit records in insertion order.
func (a *AuditLog) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.AuditRecord, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	var out []domain.AuditRecord
	for _, r := range a.s.audit {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
