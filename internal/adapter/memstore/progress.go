package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
)

// ProgressRepo stores progress states keyed by (user, item).
type ProgressRepo struct {
	s *Store
}

// Get returns the committed state, overlaid with a save staged by the
// current transaction.
func (r *ProgressRepo) Get(ctx context.Context, userID, itemID uuid.UUID) (*domain.ProgressState, error) {
	k := key{userID: userID, itemID: itemID}

	if t, ok := txFromCtx(ctx); ok {
		if st, staged := t.saves[k]; staged {
			return &st, nil
		}
	}

	r.s.mu.RLock()
	st, ok := r.s.progress[k]
	r.s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNotFound
	}
	return &st, nil
}

// GetForUpdate locks the key for the rest of the transaction, then reads it.
// The lock is taken even when the row does not exist yet so that concurrent
// first answers are serialized too. Outside a transaction it behaves like Get.
func (r *ProgressRepo) GetForUpdate(ctx context.Context, userID, itemID uuid.UUID) (*domain.ProgressState, error) {
	if t, ok := txFromCtx(ctx); ok {
		k := key{userID: userID, itemID: itemID}
		if _, held := t.held[k]; !held {
			if err := r.s.lock(ctx, k); err != nil {
				return nil, err
			}
			t.held[k] = struct{}{}
		}
	}
	return r.Get(ctx, userID, itemID)
}

// Save inserts a state with Version 0 or updates one whose Version matches
// the stored row. A mismatch returns ErrConflict.
func (r *ProgressRepo) Save(ctx context.Context, state *domain.ProgressState) (*domain.ProgressState, error) {
	k := key{userID: state.UserID, itemID: state.ItemID}
	now := r.s.now()

	saved := *state
	saved.Version = state.Version + 1
	saved.UpdatedAt = now
	if state.Version == 0 {
		saved.CreatedAt = now
	}

	if t, ok := txFromCtx(ctx); ok {
		if prev, staged := t.saves[k]; staged {
			if prev.Version != state.Version {
				return nil, fmt.Errorf("progress version %d, expected %d: %w", prev.Version, state.Version, domain.ErrConflict)
			}
			saved.CreatedAt = prev.CreatedAt
		} else {
			r.s.mu.RLock()
			err := r.s.checkVersion(k, state.Version)
			if cur, exists := r.s.progress[k]; exists {
				saved.CreatedAt = cur.CreatedAt
			}
			r.s.mu.RUnlock()
			if err != nil {
				return nil, err
			}
			t.base[k] = state.Version
		}
		t.saves[k] = saved
		return &saved, nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.checkVersion(k, state.Version); err != nil {
		return nil, err
	}
	if cur, ok := r.s.progress[k]; ok {
		saved.CreatedAt = cur.CreatedAt
	}
	r.s.progress[k] = saved
	return &saved, nil
}

// ListByUser returns the user's states ordered by next review time, then
// item id.
func (r *ProgressRepo) ListByUser(ctx context.Context, userID uuid.UUID, filter domain.ProgressFilter) ([]domain.ProgressState, error) {
	r.s.mu.RLock()
	var out []domain.ProgressState
	for k, st := range r.s.progress {
		if k.userID != userID {
			continue
		}
		if filter.Status != nil && st.Status != *filter.Status {
			continue
		}
		if filter.DueBefore != nil && !st.IsDue(*filter.DueBefore) {
			continue
		}
		out = append(out, st)
	}
	r.s.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.ProgressState) int {
		if c := compareNext(a.NextReviewAt(), b.NextReviewAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.ItemID.String(), b.ItemID.String())
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// CountByStatus counts the user's rows per status.
func (r *ProgressRepo) CountByStatus(ctx context.Context, userID uuid.UUID) (domain.StatusCounts, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var counts domain.StatusCounts
	for k, st := range r.s.progress {
		if k.userID != userID {
			continue
		}
		switch st.Status {
		case domain.ProgressStatusNew:
			counts.New++
		case domain.ProgressStatusLearning:
			counts.Learning++
		case domain.ProgressStatusReviewing:
			counts.Reviewing++
		}
		counts.Total++
	}
	return counts, nil
}

// CountDue counts the user's rows due at now.
func (r *ProgressRepo) CountDue(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for k, st := range r.s.progress {
		if k.userID == userID && st.IsDue(now) {
			n++
		}
	}
	return n, nil
}

// DeleteByUser removes every row of the user. Inside a transaction the
// delete is applied at commit.
func (r *ProgressRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if t, ok := txFromCtx(ctx); ok {
		r.s.mu.RLock()
		n := 0
		for k := range r.s.progress {
			if k.userID == userID {
				n++
			}
		}
		r.s.mu.RUnlock()
		t.resetUsers = append(t.resetUsers, userID)
		return n, nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.deleteProgressLocked(userID), nil
}

func compareNext(a, b *time.Time) int {
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
