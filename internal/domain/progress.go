package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultEasinessFactor is the easiness factor assigned to freshly created
// progress rows. The memory power engine never reads it; it is kept for
// clients that still schedule with SM-2.
const DefaultEasinessFactor = 2.5

// ProgressState is the learner's current relationship to one learning item.
type ProgressState struct {
	UserID          uuid.UUID
	ItemID          uuid.UUID
	Status          ProgressStatus
	Mastery         float64
	Repetitions     int
	IntervalMinutes int
	CorrectStreak   int
	IncorrectStreak int
	LastReviewed    *time.Time
	EasinessFactor  float64
	// Version is the optimistic-lock counter. Zero means the row has never
	// been persisted.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProgressState returns the default state synthesized on the first
// answer to an item.
func NewProgressState(userID, itemID uuid.UUID) ProgressState {
	return ProgressState{
		UserID:         userID,
		ItemID:         itemID,
		Status:         ProgressStatusNew,
		EasinessFactor: DefaultEasinessFactor,
	}
}

// NextReviewAt returns last_reviewed + interval, or nil for a never-reviewed item.
func (p *ProgressState) NextReviewAt() *time.Time {
	if p.LastReviewed == nil {
		return nil
	}
	t := p.LastReviewed.Add(time.Duration(p.IntervalMinutes) * time.Minute)
	return &t
}

// IsDue reports whether the item should be presented at the given time.
// Never-reviewed items are always due.
func (p *ProgressState) IsDue(now time.Time) bool {
	next := p.NextReviewAt()
	if next == nil {
		return true
	}
	return !next.After(now)
}

// ReviewLog is an immutable record of one processed answer. Mastery and
// MemoryPower are snapshots taken immediately after the update.
type ReviewLog struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ItemID      uuid.UUID
	Quality     Quality
	DurationMs  *int
	Mastery     float64
	MemoryPower float64
	PrevStatus  ProgressStatus
	NewStatus   ProgressStatus
	ReviewedAt  time.Time
}

// Projection is a read-only view of memory power at a point in time.
type Projection struct {
	UserID       uuid.UUID
	ItemID       uuid.UUID
	Status       ProgressStatus
	Mastery      float64
	Retention    float64
	MemoryPower  float64
	NextReviewAt *time.Time
}

// PointsAward is one entry in the gamification points ledger.
type PointsAward struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ItemID    uuid.UUID
	Points    int
	Reason    PointsReason
	CreatedAt time.Time
}

// AuditRecord logs an administrative operation on a user's learning data.
type AuditRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	EntityType EntityType
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}
