package memstore

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/memorypower/internal/domain"
)

// ReviewLogRepo is the append-only review log.
type ReviewLogRepo struct {
	s *Store
}

// Create appends a log. Inside a transaction it becomes visible at commit.
func (r *ReviewLogRepo) Create(ctx context.Context, log *domain.ReviewLog) (*domain.ReviewLog, error) {
	entry := *log
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	if t, ok := txFromCtx(ctx); ok {
		t.logs = append(t.logs, entry)
		return &entry, nil
	}

	r.s.mu.Lock()
	r.s.logs = append(r.s.logs, entry)
	r.s.mu.Unlock()
	return &entry, nil
}

// ListByItem returns one page of an item's logs, newest first, and the
// total count.
func (r *ReviewLogRepo) ListByItem(ctx context.Context, userID, itemID uuid.UUID, limit, offset int) ([]domain.ReviewLog, int, error) {
	r.s.mu.RLock()
	var matched []domain.ReviewLog
	for _, l := range r.s.logs {
		if l.UserID == userID && l.ItemID == itemID {
			matched = append(matched, l)
		}
	}
	r.s.mu.RUnlock()

	slices.SortStableFunc(matched, func(a, b domain.ReviewLog) int {
		return b.ReviewedAt.Compare(a.ReviewedAt)
	})

	total := len(matched)
	if offset >= total {
		return []domain.ReviewLog{}, total, nil
	}
	end := total
	if limit > 0 {
		end = min(offset+limit, total)
	}
	return matched[offset:end], total, nil
}

// CountToday counts the user's logs reviewed at or after dayStart.
func (r *ReviewLogRepo) CountToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, l := range r.s.logs {
		if l.UserID == userID && !l.ReviewedAt.Before(dayStart) {
			n++
		}
	}
	return n, nil
}

// GetStreakDays returns per-day review counts for the last lastNDays days
// in the given timezone, most recent first. Days without reviews are
// omitted.
func (r *ReviewLogRepo) GetStreakDays(ctx context.Context, userID uuid.UUID, dayStart time.Time, lastNDays int, timezone string) ([]domain.DayReviewCount, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	from := dayStart.In(loc).AddDate(0, 0, -lastNDays)
	to := dayStart.In(loc).AddDate(0, 0, 1)

	counts := make(map[time.Time]int)

	r.s.mu.RLock()
	for _, l := range r.s.logs {
		if l.UserID != userID || l.ReviewedAt.Before(from) || !l.ReviewedAt.Before(to) {
			continue
		}
		local := l.ReviewedAt.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		counts[day]++
	}
	r.s.mu.RUnlock()

	days := make([]domain.DayReviewCount, 0, len(counts))
	for d, c := range counts {
		days = append(days, domain.DayReviewCount{Date: d, Count: c})
	}
	slices.SortFunc(days, func(a, b domain.DayReviewCount) int {
		return b.Date.Compare(a.Date)
	})
	return days, nil
}

// DeleteByUser removes every log of the user.
func (r *ReviewLogRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if t, ok := txFromCtx(ctx); ok {
		r.s.mu.RLock()
		n := 0
		for _, l := range r.s.logs {
			if l.UserID == userID {
				n++
			}
		}
		r.s.mu.RUnlock()
		t.eraseUsers = append(t.eraseUsers, userID)
		return n, nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.deleteLogsLocked(userID), nil
}
