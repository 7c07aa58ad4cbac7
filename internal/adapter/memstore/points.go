package memstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
)

// PointsLedger is the append-only gamification ledger.
type PointsLedger struct {
	s *Store
}

// Award appends an award, including zero-point ones.
func (l *PointsLedger) Award(ctx context.Context, award domain.PointsAward) error {
	if award.ID == uuid.Nil {
		award.ID = uuid.New()
	}
	if award.CreatedAt.IsZero() {
		award.CreatedAt = l.s.now()
	}

	if t, ok := txFromCtx(ctx); ok {
		t.points = append(t.points, award)
		return nil
	}

	l.s.mu.Lock()
	l.s.points = append(l.s.points, award)
	l.s.mu.Unlock()
	return nil
}

// TotalByUser sums the user's awards.
func (l *PointsLedger) TotalByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	total := 0
	for _, a := range l.s.points {
		if a.UserID == userID {
			total += a.Points
		}
	}
	return total, nil
}

// AwardsByUser returns the user's awards in insertion order.
func (l *PointsLedger) AwardsByUser(ctx context.Context, userID uuid.UUID) ([]domain.PointsAward, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()

	var out []domain.PointsAward
	for _, a := range l.s.points {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}
